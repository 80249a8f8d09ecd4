package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-cau/glpi-gateway/pkg/util"
)

func validTicketBody() map[string]any {
	return map[string]any{
		"description":   strings.Repeat("X", 60),
		"title":         "T",
		"category":      "SOFTWARE",
		"impact":        "ALTO",
		"location":      "Room 4",
		"contact_phone": "12345678",
	}
}

func TestValidateTicketAcceptsCompleteBody(t *testing.T) {
	intake, err := ValidateTicket(validTicketBody())
	require.NoError(t, err)
	assert.Equal(t, "T", intake.Title)
	assert.Equal(t, "SOFTWARE", intake.Category)
	assert.Equal(t, "ALTO", intake.Impact)
	assert.Equal(t, "Room 4", intake.Location)
	assert.Equal(t, "12345678", intake.ContactPhone)
}

func TestValidateTicketEmptyBody(t *testing.T) {
	_, err := ValidateTicket(map[string]any{})
	require.Error(t, err)
	assert.Equal(t, KindMissingDescription, RejectionKind(err))
}

func TestValidateTicketShortDescription(t *testing.T) {
	_, err := ValidateTicket(map[string]any{"description": "curto"})
	require.Error(t, err)
	assert.Equal(t, KindContentTooShort, RejectionKind(err))
	assert.Equal(t, "Descrição muito curta", util.ToDomainError(err).Message)
}

func TestValidateTicketFirstFailureWins(t *testing.T) {
	// Everything is wrong here, but the short description must be the
	// rejection reported: the gates short-circuit in a fixed order.
	body := map[string]any{
		"description":   "curto",
		"contact_phone": "123",
		"location":      "a",
	}
	_, err := ValidateTicket(body)
	require.Error(t, err)
	assert.Equal(t, KindContentTooShort, RejectionKind(err))
}

func TestValidateTicketVagueDescription(t *testing.T) {
	// Contains a vague word and the aggregate lands between 50 and 100 chars.
	body := validTicketBody()
	body["description"] = "minha impressora não funciona desde ontem quando liguei o computador"
	body["location"] = ""
	body["contact_phone"] = ""
	delete(body, "category")
	_, err := ValidateTicket(body)
	require.Error(t, err)
	assert.Equal(t, KindVagueDescription, RejectionKind(err))
}

func TestValidateTicketVaguenessCompensatedByLength(t *testing.T) {
	body := validTicketBody()
	body["description"] = "não funciona " + strings.Repeat("detalhe ", 20)
	_, err := ValidateTicket(body)
	assert.NoError(t, err)
}

func TestValidateTicketRemainingGates(t *testing.T) {
	cases := []struct {
		name string
		edit func(map[string]any)
		kind string
	}{
		{"short phone", func(b map[string]any) { b["contact_phone"] = "1234" }, KindInvalidPhone},
		{"missing phone", func(b map[string]any) { delete(b, "contact_phone") }, KindInvalidPhone},
		{"missing title", func(b map[string]any) { delete(b, "title") }, KindMissingTitle},
		{"missing category", func(b map[string]any) { delete(b, "category") }, KindMissingCategory},
		{"missing impact", func(b map[string]any) { delete(b, "impact") }, KindMissingImpact},
		{"short location", func(b map[string]any) { b["location"] = "ab" }, KindInvalidLocation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := validTicketBody()
			tc.edit(body)
			_, err := ValidateTicket(body)
			require.Error(t, err)
			assert.Equal(t, tc.kind, RejectionKind(err))
		})
	}
}

func TestValidateTicketPortugueseAliases(t *testing.T) {
	body := map[string]any{
		"descricao":        strings.Repeat("Y", 60),
		"titulo":           "Impressora",
		"categoria":        "HARDWARE_IMPRESSORA",
		"impacto":          "BAIXO",
		"localizacao":      "Sala 12",
		"telefone_contato": "11999990000",
		"usuario_email":    "a@b.com",
	}
	intake, err := ValidateTicket(body)
	require.NoError(t, err)
	assert.Equal(t, "Impressora", intake.Title)
	assert.Equal(t, "HARDWARE_IMPRESSORA", intake.Category)
	assert.Equal(t, "a@b.com", intake.RequesterEmail)
}

func TestValidateTicketEnglishAliasWinsWhenBothPresent(t *testing.T) {
	body := validTicketBody()
	body["titulo"] = "ignorado"
	intake, err := ValidateTicket(body)
	require.NoError(t, err)
	assert.Equal(t, "T", intake.Title)
}

func TestValidateTicketTemplateArtifact(t *testing.T) {
	body := validTicketBody()
	body["description"] = "{Topic.descricao}"
	_, err := ValidateTicket(body)
	require.Error(t, err)
	assert.Equal(t, KindTemplateArtifact, RejectionKind(err))
}

func TestIsTemplateArtifact(t *testing.T) {
	assert.True(t, IsTemplateArtifact("{Topic.descricao}"))
	assert.True(t, IsTemplateArtifact("@{Topic.titulo}"))
	assert.True(t, IsTemplateArtifact("=Topic.impacto"))
	assert.False(t, IsTemplateArtifact("{json: true}"))
	assert.False(t, IsTemplateArtifact("=x+1"))
	assert.False(t, IsTemplateArtifact(42.0))
	assert.False(t, IsTemplateArtifact(nil))
}
