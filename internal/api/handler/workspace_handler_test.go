package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/markaai/booking-gateway/internal/core/domain"
	"github.com/markaai/booking-gateway/internal/core/ports"
)

type stubResolver struct {
	loadFn      func(ctx context.Context, sessionID, credential string) (*ports.TenantView, error)
	setActiveFn func(ctx context.Context, sessionID, workspaceID string) (*domain.Workspace, error)
	activeFn    func(ctx context.Context, sessionID string) (*domain.Workspace, error)
}

func (s *stubResolver) Load(ctx context.Context, sessionID, credential string) (*ports.TenantView, error) {
	return s.loadFn(ctx, sessionID, credential)
}

func (s *stubResolver) Refresh(ctx context.Context, sessionID, credential string) (*ports.TenantView, error) {
	return s.loadFn(ctx, sessionID, credential)
}

func (s *stubResolver) SetActive(ctx context.Context, sessionID, workspaceID string) (*domain.Workspace, error) {
	return s.setActiveFn(ctx, sessionID, workspaceID)
}

func (s *stubResolver) Active(ctx context.Context, sessionID string) (*domain.Workspace, error) {
	return s.activeFn(ctx, sessionID)
}

func (s *stubResolver) Forget(ctx context.Context, sessionID string) error {
	return nil
}

func withSession(c echo.Context) echo.Context {
	c.Set("session_id", "s-1")
	c.Set("credential", "upstream-cred")
	c.Set("role", string(domain.RoleOwner))
	return c
}

func TestWorkspaceHandler_List(t *testing.T) {
	salon := domain.Workspace{ID: "w-1", Name: "Studio Norte", Slug: "studio-norte"}
	stub := &stubResolver{
		loadFn: func(ctx context.Context, sessionID, credential string) (*ports.TenantView, error) {
			if sessionID != "s-1" || credential != "upstream-cred" {
				t.Fatalf("unexpected args: %s %s", sessionID, credential)
			}
			return &ports.TenantView{Workspaces: []domain.Workspace{salon}, Active: &salon}, nil
		},
	}
	handler := NewWorkspaceHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/workspaces", "")
	withSession(c)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	active, ok := resp["active"].(map[string]any)
	if !ok || active["id"] != "w-1" {
		t.Fatalf("unexpected active payload: %+v", resp["active"])
	}
}

func TestWorkspaceHandler_List_EmptyIsNotAnError(t *testing.T) {
	stub := &stubResolver{
		loadFn: func(ctx context.Context, sessionID, credential string) (*ports.TenantView, error) {
			return &ports.TenantView{}, nil
		},
	}
	handler := NewWorkspaceHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/workspaces", "")
	withSession(c)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	workspaces, ok := resp["workspaces"].([]any)
	if !ok || len(workspaces) != 0 {
		t.Fatalf("expected empty workspace list, got %+v", resp["workspaces"])
	}
}

func TestWorkspaceHandler_List_DirectoryFailure(t *testing.T) {
	stub := &stubResolver{
		loadFn: func(ctx context.Context, sessionID, credential string) (*ports.TenantView, error) {
			return nil, domain.ErrDirectoryUnavailable
		},
	}
	handler := NewWorkspaceHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/workspaces", "")
	withSession(c)

	err := handler.List(c)
	if !errors.Is(err, domain.ErrDirectoryUnavailable) {
		t.Fatalf("expected ErrDirectoryUnavailable, got %v", err)
	}
}

func TestWorkspaceHandler_List_NoCredential(t *testing.T) {
	handler := NewWorkspaceHandler(&stubResolver{})

	c, _ := newTestContext(t, http.MethodGet, "/workspaces", "")
	c.Set("session_id", "s-1")

	err := handler.List(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestWorkspaceHandler_SetActive(t *testing.T) {
	stub := &stubResolver{
		setActiveFn: func(ctx context.Context, sessionID, workspaceID string) (*domain.Workspace, error) {
			if workspaceID != "w-2" {
				t.Fatalf("unexpected workspace id %q", workspaceID)
			}
			return &domain.Workspace{ID: "w-2", Name: "Studio Sur"}, nil
		},
	}
	handler := NewWorkspaceHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/workspaces/active", `{"workspace_id":"w-2"}`)
	withSession(c)

	if err := handler.SetActive(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestWorkspaceHandler_SetActive_NonMember(t *testing.T) {
	stub := &stubResolver{
		setActiveFn: func(ctx context.Context, sessionID, workspaceID string) (*domain.Workspace, error) {
			return nil, domain.ErrWorkspaceNotMember
		},
	}
	handler := NewWorkspaceHandler(stub)

	c, _ := newTestContext(t, http.MethodPut, "/workspaces/active", `{"workspace_id":"w-9"}`)
	withSession(c)

	err := handler.SetActive(c)
	if !errors.Is(err, domain.ErrWorkspaceNotMember) {
		t.Fatalf("expected ErrWorkspaceNotMember, got %v", err)
	}
}

func TestWorkspaceHandler_SetActive_EmptyClears(t *testing.T) {
	stub := &stubResolver{
		setActiveFn: func(ctx context.Context, sessionID, workspaceID string) (*domain.Workspace, error) {
			if workspaceID != "" {
				t.Fatalf("expected empty workspace id, got %q", workspaceID)
			}
			return nil, nil
		},
	}
	handler := NewWorkspaceHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/workspaces/active", `{"workspace_id":""}`)
	withSession(c)

	if err := handler.SetActive(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestWorkspaceHandler_Active_None(t *testing.T) {
	stub := &stubResolver{
		activeFn: func(ctx context.Context, sessionID string) (*domain.Workspace, error) {
			return nil, nil
		},
	}
	handler := NewWorkspaceHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/workspaces/active", "")
	withSession(c)

	if err := handler.Active(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
