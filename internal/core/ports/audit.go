package ports

import (
	"context"

	"github.com/markaai/booking-gateway/internal/core/domain"
)

// AuditRecorder persists session audit events. Recording is best-effort:
// failures are logged by callers, never propagated to the request path.
type AuditRecorder interface {
	Record(ctx context.Context, event *domain.AuditEvent) error
}

// AuditSink accepts audit events for asynchronous recording.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}
