package domain

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Fixed GLPI codes shared by every mapped ticket.
const (
	TicketTypeIncident = 1
	TicketStatusNew    = 2

	// DefaultCategoryID is the OUTROS bucket unknown categories fall into.
	DefaultCategoryID = 8

	// MediumLevel is the GLPI default for unknown impact/urgency labels.
	MediumLevel = 3
)

// categoryIDs maps upper-cased human category keys to GLPI itilcategories_id
// values. The keys are the vocabulary the Copilot Studio dialogs present.
var categoryIDs = map[string]int{
	"HARDWARE_COMPUTADOR": 1,
	"HARDWARE_IMPRESSORA": 2,
	"HARDWARE_MONITOR":    3,
	"SOFTWARE":            4,
	"CONECTIVIDADE":       5,
	"SEGURANCA":           6,
	"SOLICITACAO":         7,
	"OUTROS":              DefaultCategoryID,
}

// impactLevels and urgencyLevels translate the human labels onto GLPI's 1..5
// scales. Impact labels are masculine, urgency labels feminine.
var impactLevels = map[string]int{
	"BAIXO":      1,
	"MEDIO":      2,
	"ALTO":       3,
	"MUITO_ALTO": 4,
	"CRITICO":    5,
}

var urgencyLevels = map[string]int{
	"BAIXA":      1,
	"MEDIA":      2,
	"ALTA":       3,
	"MUITO_ALTA": 4,
	"CRITICA":    5,
}

// Mapper translates the user-facing vocabulary into GLPI numeric codes.
// It never fails: unknown input degrades to a default and a warning.
type Mapper struct {
	logger *zap.Logger
}

// NewMapper builds a Mapper. A nil logger silences the fallback warnings.
func NewMapper(logger *zap.Logger) *Mapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mapper{logger: logger}
}

// MapCategory resolves a human category into a GLPI category id. Numeric
// input is passed through, unknown or empty input maps to OUTROS.
func (m *Mapper) MapCategory(category any) int {
	switch v := category.(type) {
	case nil:
		return DefaultCategoryID
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		key := strings.ToUpper(strings.TrimSpace(v))
		if key == "" {
			return DefaultCategoryID
		}
		if id, ok := categoryIDs[key]; ok {
			return id
		}
		// Dialogs sometimes send the GLPI id itself instead of the label.
		if id, err := strconv.Atoi(key); err == nil {
			return id
		}
		m.logger.Warn("categoria desconhecida, usando categoria padrao", zap.String("category", v))
		return DefaultCategoryID
	default:
		m.logger.Warn("categoria com tipo inesperado, usando categoria padrao")
		return DefaultCategoryID
	}
}

// MapImpact resolves an impact label onto 1..5, defaulting to medium.
func (m *Mapper) MapImpact(label string) int {
	if level, ok := impactLevels[strings.ToUpper(strings.TrimSpace(label))]; ok {
		return level
	}
	return MediumLevel
}

// MapUrgency resolves an urgency label onto 1..5, defaulting to medium.
func (m *Mapper) MapUrgency(label string) int {
	if level, ok := urgencyLevels[strings.ToUpper(strings.TrimSpace(label))]; ok {
		return level
	}
	return MediumLevel
}

// Priority computes the ticket priority as the greater of impact and urgency.
// Two formulas exist in this system's history; the max-of form is the one the
// surviving GLPI integration uses.
func (m *Mapper) Priority(impact, urgency int) int {
	if urgency > impact {
		return urgency
	}
	return impact
}

// MapTicket resolves every numeric field of an intake at once. When the
// urgency label is absent the impact label stands in for it.
func (m *Mapper) MapTicket(intake TicketIntake) MappedTicket {
	impactLabel := intake.Impact
	if impactLabel == "" {
		impactLabel = "MEDIO"
	}
	urgencyLabel := intake.Urgency
	if urgencyLabel == "" {
		urgencyLabel = impactLabel
	}
	impact := m.MapImpact(impactLabel)
	urgency := m.MapUrgency(urgencyLabel)
	if intake.Urgency == "" {
		// The impact label is masculine and misses the feminine urgency
		// table, so mirror the level directly instead of re-mapping.
		urgency = impact
	}
	return MappedTicket{
		CategoryID: m.MapCategory(intake.Category),
		Impact:     impact,
		Urgency:    urgency,
		Priority:   m.Priority(impact, urgency),
	}
}

// MappedTicket carries the GLPI numeric codes computed for one intake.
type MappedTicket struct {
	CategoryID int
	Impact     int
	Urgency    int
	Priority   int
}
