package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mcp-cau/glpi-gateway/internal/api/dto"
	"github.com/mcp-cau/glpi-gateway/internal/service"
	apperrors "github.com/mcp-cau/glpi-gateway/pkg/util"
)

// UsersHandler owns the GLPI user lookup endpoint.
type UsersHandler struct {
	service *service.TicketService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(ticketService *service.TicketService) *UsersHandler {
	return &UsersHandler{service: ticketService}
}

// GlpiUserByEmail GET /api/glpi-user-by-email. The email may arrive under
// any of the aliases older dialogs used.
func (h *UsersHandler) GlpiUserByEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		email = c.Query("e")
	}
	if email == "" {
		email = c.Query("mail")
	}
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return apperrors.NewValidationError("Parâmetro 'email' é obrigatório", nil)
	}

	rec, err := h.service.FindUserByEmail(c.UserContext(), email)
	if err != nil {
		return err
	}

	result := dto.UserLookupResult{
		Found:  rec.Found(),
		UserID: rec.ID,
		Name:   rec.Name,
		Login:  rec.Login,
		Email:  rec.Email,
	}
	if result.Email == "" {
		result.Email = email
	}

	return c.JSON(dto.UserLookupResponse{
		Sucesso:    true,
		Success:    true,
		QueryEmail: email,
		Resultado:  result,
		TraceID:    traceID(c),
	})
}
