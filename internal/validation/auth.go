package validation

import (
	"strings"

	"github.com/mcp-cau/glpi-gateway/internal/domain"
	"github.com/mcp-cau/glpi-gateway/pkg/util"
)

// ValidateAuth normalizes an authenticate-user body. Password is mandatory;
// either a login or a plausible email must identify the account. The same
// template-artifact scan as the ticket pipeline runs first so a broken agent
// never submits "{Topic.senha}" as a password.
func ValidateAuth(body map[string]any) (domain.AuthIntake, error) {
	if artifacts := templateArtifacts(body); len(artifacts) > 0 {
		return domain.AuthIntake{}, reject(KindTemplateArtifact,
			"Expressões PowerFx não processadas detectadas",
			map[string]any{"unprocessed_fields": artifacts})
	}

	intake := domain.AuthIntake{
		Email:    strings.TrimSpace(firstString(body, "email", "usuario_email")),
		Login:    cleanLogin(firstString(body, "login", "usuario")),
		Password: strings.TrimSpace(firstString(body, "password", "senha")),
		TOTPCode: strings.TrimSpace(firstString(body, "totp_code", "totp")),
	}

	if intake.Password == "" {
		return domain.AuthIntake{}, util.NewUnprocessable("Campo 'password' é obrigatório")
	}
	if intake.Login == "" && (intake.Email == "" || !strings.Contains(intake.Email, "@")) {
		return domain.AuthIntake{}, util.NewUnprocessable("Informe 'login' ou 'email' válido")
	}

	return intake, nil
}

// cleanLogin keeps only the first token when the user pasted several fields
// into one message ("jsilva, Sala 12" becomes "jsilva").
func cleanLogin(login string) string {
	login = strings.TrimSpace(login)
	if login == "" {
		return ""
	}
	login = strings.Split(login, ",")[0]
	fields := strings.Fields(login)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
