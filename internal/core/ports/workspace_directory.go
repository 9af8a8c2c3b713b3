package ports

import (
	"context"

	"github.com/markaai/booking-gateway/internal/core/domain"
)

// WorkspaceDirectory is the upstream service that resolves which workspaces a
// credential may act within. The gateway receives the full list; it does not
// compute membership.
type WorkspaceDirectory interface {
	List(ctx context.Context, credential string) ([]domain.Workspace, error)
}
