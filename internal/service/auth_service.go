package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mcp-cau/glpi-gateway/internal/domain"
	"github.com/mcp-cau/glpi-gateway/internal/glpi"
	"github.com/mcp-cau/glpi-gateway/internal/validation"
	"github.com/mcp-cau/glpi-gateway/pkg/util"
)

// AuthService verifies end-user credentials against GLPI. When only an email
// is supplied the login is resolved first; a lookup miss is a 404, not an
// authentication failure.
type AuthService struct {
	client *glpi.Client
	logger *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(client *glpi.Client, logger *zap.Logger) *AuthService {
	return &AuthService{client: client, logger: logger}
}

// AuthOutcome is the successful verification result returned to the caller.
type AuthOutcome struct {
	Login          string
	UserID         *int
	Name           string
	Email          string
	Status         domain.AuthStatus
	LogoutVerified bool
}

// Authenticate normalizes the body, resolves the login if needed and runs the
// credential check. Unauthorized and TOTP-required outcomes surface as
// structured 401 errors carrying GLPI's reason, never the password.
func (s *AuthService) Authenticate(ctx context.Context, body map[string]any) (*AuthOutcome, error) {
	intake, err := validation.ValidateAuth(body)
	if err != nil {
		return nil, err
	}

	login := intake.Login
	var resolvedID *int
	var resolvedName, resolvedEmail string
	if login == "" {
		rec, err := s.client.FindUser(ctx, "", intake.Email, nil)
		if err != nil {
			return nil, wrapUpstream(err)
		}
		if !rec.Found() {
			return nil, util.NewNotFound("Usuário não encontrado no GLPI pelo e-mail",
				map[string]any{"query_email": intake.Email})
		}
		login = rec.Login
		resolvedID = rec.ID
		resolvedName = rec.Name
		resolvedEmail = rec.Email
	}

	result, err := s.client.AuthenticateUser(ctx, login, intake.Password, intake.TOTPCode)
	if err != nil {
		return nil, wrapUpstream(err)
	}

	switch result.Status {
	case domain.AuthStatusUnauthorized:
		s.logger.Info("credenciais rejeitadas pelo GLPI", zap.String("login", login))
		return nil, util.NewUnauthorized("Login ou senha inválidos",
			map[string]any{"reason": result.Reason})
	case domain.AuthStatusTOTPRequired:
		return nil, util.NewMFARequired("Autenticação requer TOTP (code)",
			map[string]any{"reason": result.Reason})
	}

	outcome := &AuthOutcome{
		Login:          login,
		UserID:         result.UserID,
		Name:           result.Name,
		Email:          result.Email,
		Status:         result.Status,
		LogoutVerified: result.LogoutVerified,
	}
	if outcome.UserID == nil {
		outcome.UserID = resolvedID
	}
	if outcome.Name == "" {
		outcome.Name = resolvedName
	}
	if outcome.Email == "" {
		outcome.Email = resolvedEmail
	}
	return outcome, nil
}
