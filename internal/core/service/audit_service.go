package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists one audit event, assigning an id when it has none.
func (s *auditService) Record(ctx context.Context, ev domain.AuditEvent) error {
	if ev.ID == "" {
		ev.ID = newID()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = now()
	}
	if err := s.repo.Insert(ctx, &ev); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	s.log.Debug().
		Str("actor_id", ev.ActorID).
		Str("action", ev.Action).
		Str("decision", ev.Decision).
		Msg("audit event recorded")
	return nil
}
