package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/markaai/booking-gateway/internal/core/domain"
	"github.com/markaai/booking-gateway/internal/core/ports"
)

// LogRecorder writes audit events to the structured log. It backs the
// dispatcher when no document store is connected, so the trail survives in
// log aggregation instead of a collection.
type LogRecorder struct {
	log zerolog.Logger
}

func NewLogRecorder(log zerolog.Logger) ports.AuditRecorder {
	return &LogRecorder{log: log}
}

func (r *LogRecorder) Record(ctx context.Context, event *domain.AuditEvent) error {
	if event == nil {
		return nil
	}
	r.log.Info().
		Str("session_id", event.SessionID).
		Str("action", string(event.Action)).
		Str("role", string(event.Role)).
		Str("workspace_id", event.WorkspaceID).
		Str("path", event.Path).
		Time("timestamp", event.Timestamp).
		Msg("audit event")
	return nil
}
