package domain

import (
	"errors"
	"time"
)

// Workspace is a tenant (business) in the platform. The gateway receives the
// resolved membership list from the workspace directory; it never computes
// membership itself.
type Workspace struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Segment     string    `json:"segment"`
	City        string    `json:"city,omitempty"`
	OwnerID     string    `json:"owner_id"`
	PlanID      string    `json:"plan_id"`
	CreatedAt   time.Time `json:"created_at"`
}

var (
	// ErrWorkspaceNotMember is returned when a caller selects a workspace
	// that is not present in the currently loaded membership list.
	ErrWorkspaceNotMember = errors.New("workspace not in membership list")
	// ErrDirectoryUnavailable marks a failed membership load. Callers must
	// distinguish it from an empty list, which is a valid state.
	ErrDirectoryUnavailable = errors.New("workspace directory unavailable")
)
