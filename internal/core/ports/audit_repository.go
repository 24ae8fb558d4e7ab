package ports

import (
	"context"

	"github.com/researchnotes/portal-api/internal/core/domain"
)

// AuditEventInput is the payload enqueued by services for asynchronous
// recording. The timestamp is assigned by the caller at the moment the
// action happened, not when the worker drains it.
type AuditEventInput struct {
	Actor     string
	Action    string
	Detail    string
	Timestamp int64
}

// AuditRepository persists audit events. ListRecent returns newest-first,
// capped at limit.
type AuditRepository interface {
	Create(ctx context.Context, event *domain.AuditEvent) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error)
}

// AuditService processes a single audit event input. Implemented by the core
// service, consumed by the queue dispatcher workers.
type AuditService interface {
	Process(ctx context.Context, input AuditEventInput) error
	RecentEvents(ctx context.Context, limit int) ([]domain.AuditEvent, error)
}

// AuditRecorder is the fire-and-forget side used by the account and content
// services. The queue dispatcher satisfies it.
type AuditRecorder interface {
	Enqueue(event AuditEventInput)
}
