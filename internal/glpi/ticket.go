package glpi

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/mcp-cau/glpi-gateway/internal/domain"
	"github.com/mcp-cau/glpi-gateway/pkg/util"
)

// defaultTicketTitle is used when the dialog produced no title.
const defaultTicketTitle = "Chamado via Copilot Studio"

// CreateTicket posts a Ticket to GLPI and returns its id. When a requester
// was resolved, the payload sets both users_id_recipient and the
// underscore-prefixed requester actor; because some GLPI versions reject one
// or the other, an ordered list of payload variants is tried and the first
// 2xx wins. A success without an id in the body is fatal.
func (c *Client) CreateTicket(ctx context.Context, intake domain.TicketIntake, mapped domain.MappedTicket, requester domain.UserRecord, headers SessionHeaders) (int, error) {
	base := ticketInput{
		Name:             intake.Title,
		Content:          intake.ComposedContent(),
		ITILCategoriesID: mapped.CategoryID,
		Type:             domain.TicketTypeIncident,
		Urgency:          mapped.Urgency,
		Impact:           mapped.Impact,
		Priority:         mapped.Priority,
		Status:           domain.TicketStatusNew,
		EntitiesID:       c.cfg.EntityID,
	}
	if base.Name == "" {
		base.Name = defaultTicketTitle
	}

	var lastErr error
	for _, input := range ticketVariants(base, requester) {
		opCtx, cancel := context.WithTimeout(ctx, createTicketTimeout)
		resp, err := headers.apply(c.http.R().SetContext(opCtx)).
			SetHeader("Content-Type", contentTypeWithCharset).
			SetBody(glpiInput[ticketInput]{Input: input}).
			Post("/Ticket")
		cancel()
		if err != nil {
			c.metrics.RecordUpstream("createTicket", false)
			return 0, util.NewUpstreamError("Erro ao criar chamado no GLPI: "+err.Error(), err)
		}
		if !resp.IsSuccess() {
			c.metrics.RecordUpstream("createTicket", false)
			glpiErr := &GlpiError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
			lastErr = util.NewUpstreamError(glpiErr.Error(), glpiErr)
			c.logger.Warn("variante de payload rejeitada pelo GLPI",
				zap.Int("status", resp.StatusCode()))
			continue
		}

		var created createTicketResponse
		if err := json.Unmarshal(resp.Body(), &created); err != nil || created.ID == 0 {
			c.metrics.RecordUpstream("createTicket", false)
			return 0, util.NewUpstreamError("ID do ticket não retornado pelo GLPI", err)
		}
		c.metrics.RecordUpstream("createTicket", true)
		c.logger.Info("chamado criado no GLPI", zap.Int("ticket_id", created.ID))
		return created.ID, nil
	}
	return 0, lastErr
}

// ticketVariants orders the payload shapes to attempt: both actor fields,
// recipient only, then no actor at all. Without a resolved requester only the
// bare shape applies.
func ticketVariants(base ticketInput, requester domain.UserRecord) []ticketInput {
	if !requester.Found() {
		return []ticketInput{base}
	}
	full := base
	full.UsersIDRecipient = requester.UserID()
	full.UsersIDRequester = requester.UserID()

	recipientOnly := base
	recipientOnly.UsersIDRecipient = requester.UserID()

	return []ticketInput{full, recipientOnly, base}
}
