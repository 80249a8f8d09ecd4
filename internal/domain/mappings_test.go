package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapCategory(t *testing.T) {
	m := NewMapper(nil)

	assert.Equal(t, 4, m.MapCategory("SOFTWARE"))
	assert.Equal(t, 4, m.MapCategory(" software "))
	assert.Equal(t, 2, m.MapCategory("HARDWARE_IMPRESSORA"))
	assert.Equal(t, DefaultCategoryID, m.MapCategory("OUTROS"))

	// Never fails: unknown, empty and odd-typed input fall back to OUTROS.
	assert.Equal(t, DefaultCategoryID, m.MapCategory("JARDINAGEM"))
	assert.Equal(t, DefaultCategoryID, m.MapCategory(""))
	assert.Equal(t, DefaultCategoryID, m.MapCategory(nil))
	assert.Equal(t, DefaultCategoryID, m.MapCategory(true))

	// Numeric ids pass through, including digit strings from JSON bodies.
	assert.Equal(t, 6, m.MapCategory(6))
	assert.Equal(t, 6, m.MapCategory(6.0))
	assert.Equal(t, 6, m.MapCategory("6"))
}

func TestMapImpactAndUrgency(t *testing.T) {
	m := NewMapper(nil)

	assert.Equal(t, 1, m.MapImpact("BAIXO"))
	assert.Equal(t, 3, m.MapImpact("alto"))
	assert.Equal(t, 5, m.MapImpact("CRITICO"))
	assert.Equal(t, MediumLevel, m.MapImpact("DESCONHECIDO"))
	assert.Equal(t, MediumLevel, m.MapImpact(""))

	assert.Equal(t, 1, m.MapUrgency("BAIXA"))
	assert.Equal(t, 5, m.MapUrgency("CRITICA"))
	assert.Equal(t, MediumLevel, m.MapUrgency("ALTO")) // masculine label misses the feminine table
}

func TestPriorityIsMaxOfImpactAndUrgency(t *testing.T) {
	m := NewMapper(nil)

	assert.Equal(t, 4, m.Priority(4, 2))
	assert.Equal(t, 4, m.Priority(2, 4))
	assert.Equal(t, 3, m.Priority(3, 3))
}

func TestMapTicket(t *testing.T) {
	m := NewMapper(nil)

	mapped := m.MapTicket(TicketIntake{Category: "SOFTWARE", Impact: "ALTO"})
	assert.Equal(t, 4, mapped.CategoryID)
	assert.Equal(t, 3, mapped.Impact)
	// Urgency was absent, so it mirrors the impact level.
	assert.Equal(t, 3, mapped.Urgency)
	assert.Equal(t, 3, mapped.Priority)

	mapped = m.MapTicket(TicketIntake{Category: "SEGURANCA", Impact: "CRITICO"})
	assert.Equal(t, 5, mapped.Urgency)
	assert.Equal(t, 5, mapped.Priority)

	mapped = m.MapTicket(TicketIntake{Impact: "BAIXO", Urgency: "CRITICA"})
	assert.Equal(t, 1, mapped.Impact)
	assert.Equal(t, 5, mapped.Urgency)
	assert.Equal(t, 5, mapped.Priority)

	// No impact at all degrades to the GLPI medium defaults.
	mapped = m.MapTicket(TicketIntake{})
	assert.Equal(t, 2, mapped.Impact)
	assert.Equal(t, 2, mapped.Urgency)
}
