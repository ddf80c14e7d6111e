package ports

import (
	"context"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
)

// AuditService persists audit events dequeued by the audit dispatcher.
type AuditService interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}
