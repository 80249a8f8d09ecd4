package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mcp-cau/glpi-gateway/internal/domain"
	"github.com/mcp-cau/glpi-gateway/pkg/util"
)

// Rejection kinds, one per gate, in the order the gates run. The first
// failing gate wins; there is no multi-error aggregation.
const (
	KindTemplateArtifact   = "template_artifact"
	KindMissingDescription = "missing_description"
	KindContentTooShort    = "content_too_short"
	KindVagueDescription   = "vague_description"
	KindInvalidPhone       = "invalid_phone"
	KindMissingTitle       = "missing_title"
	KindMissingCategory    = "missing_category"
	KindMissingImpact      = "missing_impact"
	KindInvalidLocation    = "invalid_location"
)

// Aggregate content thresholds, in characters after trimming.
const (
	minContentLength   = 50
	vagueContentLength = 100
)

// vagueWords are generic complaint terms that only disqualify a ticket when
// the description is also short on detail.
var vagueWords = []string{
	"problema", "erro", "não funciona", "quebrado", "ruim", "lento", "travando", "bug",
}

// ValidateTicket runs the pure intake pipeline over a raw request body and
// produces a normalized TicketIntake, or the first rejection encountered.
// No network I/O happens here; a rejected body costs GLPI nothing.
func ValidateTicket(body map[string]any) (domain.TicketIntake, error) {
	if artifacts := templateArtifacts(body); len(artifacts) > 0 {
		return domain.TicketIntake{}, reject(KindTemplateArtifact,
			"Expressões PowerFx não processadas detectadas",
			map[string]any{"unprocessed_fields": artifacts})
	}

	intake := domain.TicketIntake{
		Description:    firstString(body, "description", "descricao"),
		Title:          firstString(body, "title", "titulo"),
		Category:       firstString(body, "category", "categoria"),
		Impact:         firstString(body, "impact", "impacto"),
		Urgency:        firstString(body, "urgency", "urgencia"),
		Location:       firstString(body, "location", "localizacao"),
		ContactPhone:   firstString(body, "contact_phone", "telefone_contato", "telefone"),
		RequesterEmail: firstString(body, "requester_email", "email", "usuario_email"),
	}

	if intake.Description == "" {
		return domain.TicketIntake{}, reject(KindMissingDescription,
			"Campo 'description/descricao' é obrigatório", nil)
	}

	content := strings.TrimSpace(intake.ComposedContent())
	contentLength := utf8.RuneCountInString(content)
	if contentLength < minContentLength {
		return domain.TicketIntake{}, reject(KindContentTooShort,
			"Descrição muito curta",
			map[string]any{
				"current_length":  contentLength,
				"required_length": minContentLength,
				"hint":            "O conteúdo total do chamado está curto. Inclua mais detalhes.",
			})
	}

	if words := foundVagueWords(intake.Description); len(words) > 0 && contentLength < vagueContentLength {
		return domain.TicketIntake{}, reject(KindVagueDescription,
			"Descrição muito vaga",
			map[string]any{
				"vague_words": words,
				"hint":        "Por favor, seja mais específico.",
			})
	}

	if utf8.RuneCountInString(strings.TrimSpace(intake.ContactPhone)) < 8 {
		return domain.TicketIntake{}, reject(KindInvalidPhone, "Telefone inválido", nil)
	}
	if intake.Title == "" {
		return domain.TicketIntake{}, reject(KindMissingTitle,
			"Campo 'title/titulo' é obrigatório", nil)
	}
	if intake.Category == "" {
		return domain.TicketIntake{}, reject(KindMissingCategory,
			"Campo 'category/categoria' é obrigatório", nil)
	}
	if intake.Impact == "" {
		return domain.TicketIntake{}, reject(KindMissingImpact,
			"Campo 'impact/impacto' é obrigatório", nil)
	}
	if utf8.RuneCountInString(strings.TrimSpace(intake.Location)) < 3 {
		return domain.TicketIntake{}, reject(KindInvalidLocation, "Localização inválida", nil)
	}

	return intake, nil
}

func foundVagueWords(description string) []string {
	lower := strings.ToLower(description)
	var found []string
	for _, word := range vagueWords {
		if strings.Contains(lower, word) {
			found = append(found, word)
		}
	}
	return found
}

func reject(kind, message string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	details["kind"] = kind
	return util.NewValidationError(message, details)
}

// firstString resolves a logical field from its alias chain: the first
// non-empty value wins, later aliases never override it. Numbers are
// stringified so loosely-typed bodies still normalize.
func firstString(body map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := body[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			if v == float64(int64(v)) {
				return fmt.Sprintf("%d", int64(v))
			}
			return fmt.Sprintf("%v", v)
		case int:
			return fmt.Sprintf("%d", v)
		}
	}
	return ""
}

// RejectionKind extracts the gate that produced a validation error, or "".
func RejectionKind(err error) string {
	domainErr := util.ToDomainError(err)
	if domainErr == nil || domainErr.Details == nil {
		return ""
	}
	kind, _ := domainErr.Details["kind"].(string)
	return kind
}
