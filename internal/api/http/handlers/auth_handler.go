package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mcp-cau/glpi-gateway/internal/api/dto"
	"github.com/mcp-cau/glpi-gateway/internal/service"
)

// AuthHandler owns the credential verification endpoint.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// AuthenticateUser POST /api/authenticate-user.
func (h *AuthHandler) AuthenticateUser(c *fiber.Ctx) error {
	body, err := parseJSONObject(c)
	if err != nil {
		return err
	}

	outcome, err := h.service.Authenticate(c.UserContext(), body)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		Sucesso: true,
		Success: true,
		TraceID: traceID(c),
		Usuario: dto.AuthUser{
			Login:  outcome.Login,
			UserID: outcome.UserID,
			Email:  outcome.Email,
			Name:   outcome.Name,
		},
		Auth: dto.AuthInfo{
			Status:         string(outcome.Status),
			LogoutVerified: outcome.LogoutVerified,
		},
	})
}
