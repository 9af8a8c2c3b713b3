package upstream

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/markaai/booking-gateway/internal/core/domain"
)

// DirectoryClient implements ports.WorkspaceDirectory against the upstream
// workspaces API.
type DirectoryClient struct {
	client
}

func NewDirectoryClient(cfg Config) *DirectoryClient {
	return &DirectoryClient{client: newClient(cfg)}
}

type workspacePayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Segment     string `json:"segment"`
	City        string `json:"city,omitempty"`
	OwnerID     string `json:"ownerId"`
	PlanID      string `json:"planId"`
	CreatedAt   string `json:"createdAt"`
}

// List fetches the workspaces the credential may act within. A failed fetch
// is reported as ErrDirectoryUnavailable so callers can distinguish it from
// an empty membership list.
func (d *DirectoryClient) List(ctx context.Context, credential string) ([]domain.Workspace, error) {
	var payload []workspacePayload
	status, err := d.do(ctx, http.MethodGet, "/api/workspaces", credential, nil, &payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return nil, domain.ErrCredentialRejected
	case status < 200 || status >= 300:
		return nil, fmt.Errorf("%w: list returned %d", domain.ErrDirectoryUnavailable, status)
	}

	workspaces := make([]domain.Workspace, 0, len(payload))
	for _, p := range payload {
		createdAt, _ := time.Parse(time.RFC3339, p.CreatedAt)
		workspaces = append(workspaces, domain.Workspace{
			ID:          p.ID,
			Name:        p.Name,
			Slug:        p.Slug,
			Description: p.Description,
			Segment:     p.Segment,
			City:        p.City,
			OwnerID:     p.OwnerID,
			PlanID:      p.PlanID,
			CreatedAt:   createdAt,
		})
	}
	return workspaces, nil
}
