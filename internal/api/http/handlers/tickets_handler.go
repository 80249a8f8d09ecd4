package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/mcp-cau/glpi-gateway/internal/api/dto"
	"github.com/mcp-cau/glpi-gateway/internal/service"
)

// TicketsHandler owns the ticket intake endpoint.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicketComplete POST /api/create-ticket-complete.
func (h *TicketsHandler) CreateTicketComplete(c *fiber.Ctx) error {
	body, err := parseJSONObject(c)
	if err != nil {
		return err
	}

	result, err := h.service.CreateTicket(c.UserContext(), body)
	if err != nil {
		return err
	}

	var requester *dto.RequesterDetails
	if result.Requester != nil {
		requester = &dto.RequesterDetails{
			Found:  result.Requester.Found(),
			UserID: result.Requester.ID,
			Name:   result.Requester.Name,
			Login:  result.Requester.Login,
		}
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateTicketResponse{
		Sucesso:   true,
		Success:   true,
		Message:   fmt.Sprintf("Chamado #%d criado com sucesso!", result.TicketID),
		TicketID:  result.TicketID,
		TraceID:   traceID(c),
		Categoria: result.Intake.Category,
		Details: dto.TicketDetails{
			Title:          result.Intake.Title,
			Category:       result.Intake.Category,
			Impact:         result.Intake.Impact,
			Location:       result.Intake.Location,
			RequesterEmail: result.Intake.RequesterEmail,
			Requester:      requester,
		},
	})
}
