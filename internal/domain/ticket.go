package domain

import "strings"

// TicketIntake is the normalized ticket request. Every field may originate
// from either an English or a Portuguese body key; normalization happens once
// in the intake validator and raw maps never travel past it.
type TicketIntake struct {
	Title          string
	Description    string
	Category       string
	Impact         string
	Urgency        string
	Location       string
	ContactPhone   string
	RequesterEmail string
}

// ComposedContent assembles the ticket body sent to GLPI: the description
// followed by the optional Local/Telefone/Categoria blocks. The same text
// feeds the aggregate length gates during validation.
func (t TicketIntake) ComposedContent() string {
	parts := []string{t.Description}
	if t.Location != "" {
		parts = append(parts, "Local: "+t.Location)
	}
	if t.ContactPhone != "" {
		parts = append(parts, "Telefone: "+t.ContactPhone)
	}
	if t.Category != "" {
		parts = append(parts, "Categoria: "+t.Category)
	}
	filtered := parts[:0]
	for _, p := range parts {
		if p != "" {
			filtered = append(filtered, p)
		}
	}
	return strings.Join(filtered, "\n\n")
}
