package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mcp-cau/glpi-gateway/internal/config"
	"github.com/mcp-cau/glpi-gateway/internal/service"
)

// HealthHandler reports service status and GLPI reachability.
type HealthHandler struct {
	serviceName string
	version     string
	glpiCfg     config.GLPIConfig
	service     *service.TicketService
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, glpiCfg config.GLPIConfig, ticketService *service.TicketService) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, glpiCfg: glpiCfg, service: ticketService}
}

// Health GET /api/health. Missing settings degrade to "error" without a
// probe; with settings present a live session round trip decides between
// "ok" and "warning". Always a 200: the dialog inspects the body.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	configured := h.glpiCfg.Configured()
	status := fiber.Map{
		"service":         h.serviceName,
		"version":         h.version,
		"glpi_configured": configured,
	}

	if !configured {
		status["status"] = "error"
		return c.JSON(status)
	}

	if err := h.service.CheckGLPI(c.UserContext()); err != nil {
		status["status"] = "warning"
		status["glpi_connection"] = "error"
		status["glpi_error"] = err.Error()
	} else {
		status["status"] = "ok"
		status["glpi_connection"] = "ok"
	}
	return c.JSON(status)
}
