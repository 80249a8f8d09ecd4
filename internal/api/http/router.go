package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mcp-cau/glpi-gateway/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Users   *handlers.UsersHandler
	Tickets *handlers.TicketsHandler
	Auth    *handlers.AuthHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")
	api.Get("/health", cfg.Health.Health)
	api.Get("/glpi-user-by-email", cfg.Users.GlpiUserByEmail)
	api.Post("/create-ticket-complete", cfg.Tickets.CreateTicketComplete)
	api.Post("/authenticate-user", cfg.Auth.AuthenticateUser)
}
