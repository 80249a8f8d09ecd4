package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/mcp-cau/glpi-gateway/internal/domain"
	"github.com/mcp-cau/glpi-gateway/internal/glpi"
	"github.com/mcp-cau/glpi-gateway/internal/validation"
	"github.com/mcp-cau/glpi-gateway/pkg/util"
)

// TicketService runs the ticket intake flow: validate, map, resolve the
// requester, create. Validation rejects before any network call is made.
type TicketService struct {
	client *glpi.Client
	mapper *domain.Mapper
	logger *zap.Logger
}

// NewTicketService builds the service.
func NewTicketService(client *glpi.Client, mapper *domain.Mapper, logger *zap.Logger) *TicketService {
	return &TicketService{client: client, mapper: mapper, logger: logger}
}

// CreateTicketResult reports a created ticket and what was resolved on the way.
type CreateTicketResult struct {
	TicketID  int
	Intake    domain.TicketIntake
	Mapped    domain.MappedTicket
	Requester *domain.UserRecord
}

// CreateTicket validates the raw body and, if it passes, opens one service
// session for the whole request: requester lookup and ticket creation share
// it, and it is torn down before returning.
func (s *TicketService) CreateTicket(ctx context.Context, body map[string]any) (*CreateTicketResult, error) {
	intake, err := validation.ValidateTicket(body)
	if err != nil {
		return nil, err
	}
	mapped := s.mapper.MapTicket(intake)

	headers, err := s.client.OpenServiceSession(ctx)
	if err != nil {
		return nil, wrapUpstream(err)
	}
	defer s.client.CloseSession(ctx, headers)

	var requester *domain.UserRecord
	if intake.RequesterEmail != "" {
		// The lookup is best-effort: a miss or a failure only means the
		// ticket carries no requester actor.
		if rec, err := s.client.FindUser(ctx, "", intake.RequesterEmail, &headers); err == nil {
			requester = &rec
		} else {
			s.logger.Warn("busca do solicitante falhou", zap.Error(err))
		}
	}

	actor := domain.UserRecord{}
	if requester != nil {
		actor = *requester
	}
	ticketID, err := s.client.CreateTicket(ctx, intake, mapped, actor, headers)
	if err != nil {
		return nil, wrapUpstream(err)
	}

	return &CreateTicketResult{
		TicketID:  ticketID,
		Intake:    intake,
		Mapped:    mapped,
		Requester: requester,
	}, nil
}

// FindUserByEmail resolves an email into a GLPI user record using a session
// scoped to this call.
func (s *TicketService) FindUserByEmail(ctx context.Context, email string) (domain.UserRecord, error) {
	rec, err := s.client.FindUser(ctx, "", strings.TrimSpace(email), nil)
	if err != nil {
		return domain.UserRecord{}, wrapUpstream(err)
	}
	return rec, nil
}

// CheckGLPI proves GLPI connectivity for the health probe.
func (s *TicketService) CheckGLPI(ctx context.Context) error {
	return s.client.CheckConnection(ctx)
}

// wrapUpstream keeps structured domain errors intact and promotes raw GLPI
// client errors to UPSTREAM_ERROR so their text reaches the operator.
func wrapUpstream(err error) error {
	if err == nil {
		return nil
	}
	var domainErr *util.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return util.NewUpstreamError(err.Error(), err)
}
