package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/researchnotes/portal-api/internal/core/domain"
	"github.com/researchnotes/portal-api/internal/core/ports"
)

const defaultAuditLimit = 50

// AuditService persists audit events drained from the dispatcher and serves
// the admin trail listing.
type AuditService struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, logger zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

func (s *AuditService) Process(ctx context.Context, input ports.AuditEventInput) error {
	event := &domain.AuditEvent{
		Actor:     input.Actor,
		Action:    input.Action,
		Detail:    input.Detail,
		Timestamp: time.Unix(input.Timestamp, 0).UTC(),
	}
	if err := s.repo.Create(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("actor", input.Actor).Str("action", input.Action).Msg("failed to persist audit event")
		return err
	}
	return nil
}

func (s *AuditService) RecentEvents(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
