package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/markaai/booking-gateway/internal/core/domain"
	"github.com/markaai/booking-gateway/internal/core/ports"
)

const auditCollection = "session_events"

// AuditRepository implements ports.AuditRecorder using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.AuditRecorder {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// Record persists a session audit event to the session_events collection.
func (r *AuditRepository) Record(ctx context.Context, event *domain.AuditEvent) error {
	doc := bson.M{
		"session_id":  event.SessionID,
		"action":      string(event.Action),
		"timestamp":   event.Timestamp.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.IdentityID != "" {
		doc["identity_id"] = event.IdentityID
	}
	if event.Role != "" {
		doc["role"] = string(event.Role)
	}
	if event.WorkspaceID != "" {
		doc["workspace_id"] = event.WorkspaceID
	}
	if event.Path != "" {
		doc["path"] = event.Path
	}

	_, err := r.coll.InsertOne(ctx, doc)
	return err
}
