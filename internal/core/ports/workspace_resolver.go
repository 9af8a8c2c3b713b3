package ports

import (
	"context"

	"github.com/markaai/booking-gateway/internal/core/domain"
)

// TenantView is the resolver's answer for one session: the full membership
// list and the single active workspace, or nil when the list is empty.
type TenantView struct {
	Workspaces []domain.Workspace
	Active     *domain.Workspace
}

// WorkspaceResolver owns the workspace list and active-workspace selection
// for each session.
//
// Load replaces any previously loaded list and applies the selection policy:
// a persisted active id still present in the new list is kept; otherwise the
// first entry is selected and persisted; an empty list clears the persisted
// reference. SetActive only accepts members of the currently loaded list.
type WorkspaceResolver interface {
	Load(ctx context.Context, sessionID, credential string) (*TenantView, error)
	Refresh(ctx context.Context, sessionID, credential string) (*TenantView, error)
	SetActive(ctx context.Context, sessionID, workspaceID string) (*domain.Workspace, error)
	Active(ctx context.Context, sessionID string) (*domain.Workspace, error)
	Forget(ctx context.Context, sessionID string) error
}
