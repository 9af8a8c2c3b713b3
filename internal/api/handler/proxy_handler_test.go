package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/markaai/booking-gateway/internal/core/domain"
	"github.com/markaai/booking-gateway/internal/infrastructure/upstream"
)

func TestProxyHandler_ForwardsWithCredentialAndWorkspace(t *testing.T) {
	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(r.Context())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"appointments":[]}`))
	}))
	defer server.Close()

	resolver := &stubResolver{
		activeFn: func(ctx context.Context, sessionID string) (*domain.Workspace, error) {
			return &domain.Workspace{ID: "w-1"}, nil
		},
	}
	handler := NewProxyHandler(upstream.Config{BaseURL: server.URL}, resolver)

	c, rec := newTestContext(t, http.MethodGet, "/appointments?status=pending", "")
	c.Request().Header.Set("Authorization", "Bearer gateway-token")
	withSession(c)

	if err := handler.Forward(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.URL.Path != "/api/appointments" {
		t.Fatalf("unexpected upstream path %q", got.URL.Path)
	}
	if got.URL.RawQuery != "status=pending" {
		t.Fatalf("query not forwarded: %q", got.URL.RawQuery)
	}
	if got.Header.Get("Authorization") != "Bearer upstream-cred" {
		t.Fatalf("gateway token leaked upstream: %q", got.Header.Get("Authorization"))
	}
	if got.Header.Get("X-Workspace-Id") != "w-1" {
		t.Fatalf("workspace scope missing: %q", got.Header.Get("X-Workspace-Id"))
	}

	body, _ := io.ReadAll(rec.Body)
	if string(body) != `{"appointments":[]}` {
		t.Fatalf("body not relayed: %s", body)
	}
}

func TestProxyHandler_StripsWorkspacePrefix(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resolver := &stubResolver{
		activeFn: func(ctx context.Context, sessionID string) (*domain.Workspace, error) {
			return &domain.Workspace{ID: "w-1"}, nil
		},
	}
	handler := NewProxyHandler(upstream.Config{BaseURL: server.URL}, resolver)

	c, rec := newTestContext(t, http.MethodGet, "/app/w-1/services", "")
	c.SetPath("/app/:workspace_id/services")
	c.SetParamNames("workspace_id")
	c.SetParamValues("w-1")
	withSession(c)

	if err := handler.Forward(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotPath != "/api/services" {
		t.Fatalf("tenant segment must not reach upstream, got %q", gotPath)
	}
}

func TestProxyHandler_NoActiveWorkspace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Workspace-Id") != "" {
			t.Errorf("unexpected workspace header %q", r.Header.Get("X-Workspace-Id"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resolver := &stubResolver{
		activeFn: func(ctx context.Context, sessionID string) (*domain.Workspace, error) {
			return nil, nil
		},
	}
	handler := NewProxyHandler(upstream.Config{BaseURL: server.URL}, resolver)

	c, rec := newTestContext(t, http.MethodGet, "/services", "")
	withSession(c)

	if err := handler.Forward(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProxyHandler_UpstreamStatusPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not yours", http.StatusForbidden)
	}))
	defer server.Close()

	resolver := &stubResolver{
		activeFn: func(ctx context.Context, sessionID string) (*domain.Workspace, error) {
			return &domain.Workspace{ID: "w-1"}, nil
		},
	}
	handler := NewProxyHandler(upstream.Config{BaseURL: server.URL}, resolver)

	c, rec := newTestContext(t, http.MethodGet, "/billing", "")
	withSession(c)

	if err := handler.Forward(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestProxyHandler_UpstreamDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	resolver := &stubResolver{
		activeFn: func(ctx context.Context, sessionID string) (*domain.Workspace, error) {
			return nil, nil
		},
	}
	handler := NewProxyHandler(upstream.Config{BaseURL: server.URL}, resolver)

	c, _ := newTestContext(t, http.MethodGet, "/services", "")
	withSession(c)

	err := handler.Forward(c)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
