package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/markaai/booking-gateway/internal/core/domain"
	"github.com/markaai/booking-gateway/internal/core/ports"
)

func workspaceKey(sessionID string) string {
	return "workspace:" + sessionID
}

// tenantState is the per-session view of the workspace membership list and
// the active selection. seq is a monotonic guard: a Load commits its result
// only if no newer Load or SetActive has been issued since it started.
type tenantState struct {
	workspaces []domain.Workspace
	activeID   string
	seq        uint64
}

func (t *tenantState) find(workspaceID string) *domain.Workspace {
	for i := range t.workspaces {
		if t.workspaces[i].ID == workspaceID {
			return &t.workspaces[i]
		}
	}
	return nil
}

// WorkspaceResolver implements ports.WorkspaceResolver.
type WorkspaceResolver struct {
	directory ports.WorkspaceDirectory
	storage   ports.Storage
	audit     ports.AuditSink
	log       zerolog.Logger

	mu    sync.Mutex
	views map[string]*tenantState
}

func NewWorkspaceResolver(directory ports.WorkspaceDirectory, storage ports.Storage, audit ports.AuditSink, log zerolog.Logger) *WorkspaceResolver {
	return &WorkspaceResolver{
		directory: directory,
		storage:   storage,
		audit:     audit,
		log:       log,
		views:     make(map[string]*tenantState),
	}
}

// Load fetches the full workspace list for the session's credential,
// replacing any previously loaded list, and applies the selection policy:
// a persisted active id still present in the new list is kept; otherwise the
// first entry is selected and persisted; an empty list clears the persisted
// reference.
func (r *WorkspaceResolver) Load(ctx context.Context, sessionID, credential string) (*ports.TenantView, error) {
	seq := r.begin(sessionID)

	workspaces, err := r.directory.List(ctx, credential)
	if err != nil {
		return nil, err
	}

	// A storage failure here must not be mistaken for "nothing persisted":
	// defaulting would overwrite the user's durable selection on the next
	// line. Surface the failure and leave all state untouched.
	persisted, _, err := r.storage.Get(ctx, workspaceKey(sessionID))
	if err != nil {
		r.log.Warn().Err(err).Str("session_id", sessionID).Msg("persisted workspace lookup failed")
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	view := r.views[sessionID]
	if view == nil || view.seq != seq {
		// A newer Load or SetActive superseded this one; discard the
		// fetched result and answer with the current state.
		r.log.Debug().Str("session_id", sessionID).Msg("superseded workspace load discarded")
		return r.snapshotLocked(sessionID), nil
	}

	view.workspaces = workspaces

	switch {
	case persisted != "" && view.find(persisted) != nil:
		view.activeID = persisted
	case len(workspaces) > 0:
		view.activeID = workspaces[0].ID
		if err := r.storage.Set(ctx, workspaceKey(sessionID), view.activeID); err != nil {
			return nil, err
		}
	default:
		view.activeID = ""
		if err := r.storage.Remove(ctx, workspaceKey(sessionID)); err != nil {
			return nil, err
		}
	}

	return r.snapshotLocked(sessionID), nil
}

// Refresh re-runs Load; used after mutations that change membership, such as
// onboarding creating the first workspace.
func (r *WorkspaceResolver) Refresh(ctx context.Context, sessionID, credential string) (*ports.TenantView, error) {
	return r.Load(ctx, sessionID, credential)
}

// SetActive selects a workspace from the currently loaded list, or clears the
// selection when workspaceID is empty. Ids outside the loaded list are
// rejected and leave all state unchanged.
func (r *WorkspaceResolver) SetActive(ctx context.Context, sessionID, workspaceID string) (*domain.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	view := r.views[sessionID]

	if workspaceID == "" {
		if err := r.storage.Remove(ctx, workspaceKey(sessionID)); err != nil {
			return nil, err
		}
		if view != nil {
			view.activeID = ""
			view.seq++
		}
		return nil, nil
	}

	if view == nil {
		return nil, domain.ErrWorkspaceNotMember
	}
	selected := view.find(workspaceID)
	if selected == nil {
		return nil, domain.ErrWorkspaceNotMember
	}

	if err := r.storage.Set(ctx, workspaceKey(sessionID), workspaceID); err != nil {
		return nil, err
	}
	view.activeID = workspaceID
	view.seq++

	if r.audit != nil {
		r.audit.Enqueue(domain.AuditEvent{
			SessionID:   sessionID,
			Action:      domain.AuditWorkspaceSwitch,
			WorkspaceID: workspaceID,
			Timestamp:   time.Now().UTC(),
		})
	}

	selectedCopy := *selected
	return &selectedCopy, nil
}

// Active returns the session's active workspace. Before the first Load of
// this process only the persisted id is known; the returned value then
// carries the id alone until the next Load rehydrates the full record.
func (r *WorkspaceResolver) Active(ctx context.Context, sessionID string) (*domain.Workspace, error) {
	r.mu.Lock()
	if view := r.views[sessionID]; view != nil {
		defer r.mu.Unlock()
		if view.activeID == "" {
			return nil, nil
		}
		if w := view.find(view.activeID); w != nil {
			wCopy := *w
			return &wCopy, nil
		}
		return nil, nil
	}
	r.mu.Unlock()

	persisted, ok, err := r.storage.Get(ctx, workspaceKey(sessionID))
	if err != nil {
		return nil, err
	}
	if !ok || persisted == "" {
		return nil, nil
	}
	return &domain.Workspace{ID: persisted}, nil
}

// Forget drops the session's in-memory view and its persisted selection.
// Called on logout and on credential-resolution failure.
func (r *WorkspaceResolver) Forget(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.views, sessionID)
	r.mu.Unlock()
	return r.storage.Remove(ctx, workspaceKey(sessionID))
}

// begin registers a new load attempt and returns its sequence number.
func (r *WorkspaceResolver) begin(sessionID string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	view := r.views[sessionID]
	if view == nil {
		view = &tenantState{}
		r.views[sessionID] = view
	}
	view.seq++
	return view.seq
}

// snapshotLocked builds an immutable view of the session's tenant state.
// Caller must hold r.mu.
func (r *WorkspaceResolver) snapshotLocked(sessionID string) *ports.TenantView {
	view := r.views[sessionID]
	if view == nil {
		return &ports.TenantView{}
	}

	out := &ports.TenantView{Workspaces: make([]domain.Workspace, len(view.workspaces))}
	copy(out.Workspaces, view.workspaces)
	if view.activeID != "" {
		if w := view.find(view.activeID); w != nil {
			wCopy := *w
			out.Active = &wCopy
		}
	}
	return out
}
