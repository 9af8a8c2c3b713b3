package handler

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/markaai/booking-gateway/internal/api/metrics"
	"github.com/markaai/booking-gateway/internal/core/domain"
	"github.com/markaai/booking-gateway/internal/core/ports"
	"github.com/markaai/booking-gateway/internal/infrastructure/upstream"
)

// hopHeaders are stripped in both directions, per RFC 7230 section 6.1.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// ProxyHandler forwards guarded tenant routes to the upstream API. The
// caller's gateway token never leaves the gateway: the stored upstream
// credential replaces it, and the active workspace travels in X-Workspace-Id
// so the upstream can scope the request.
type ProxyHandler struct {
	baseURL string
	client  *http.Client
	tenants ports.WorkspaceResolver
}

func NewProxyHandler(cfg upstream.Config, tenants ports.WorkspaceResolver) *ProxyHandler {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ProxyHandler{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		tenants: tenants,
	}
}

// upstreamPath maps a gateway route onto the upstream API path. Workspace
// routes carry the tenant in the path segment ("/app/<id>/services"); the
// upstream scopes by header instead, so the prefix is dropped here.
func upstreamPath(c echo.Context) string {
	path := c.Request().URL.Path
	if wsID := c.Param("workspace_id"); wsID != "" {
		path = strings.TrimPrefix(path, "/app/"+wsID)
	}
	return path
}

// Forward relays the request as-is, swapping credentials and attaching the
// tenant scope.
func (h *ProxyHandler) Forward(c echo.Context) error {
	sessionID, credential, err := ctxSession(c)
	if err != nil {
		return err
	}

	route := c.Path()
	start := time.Now()
	defer func() {
		metrics.UpstreamForwardDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}()

	req := c.Request()
	target := h.baseURL + "/api" + upstreamPath(c)
	if req.URL.RawQuery != "" {
		target += "?" + req.URL.RawQuery
	}

	out, err := http.NewRequestWithContext(req.Context(), req.Method, target, req.Body)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}
	out.Header = req.Header.Clone()
	for _, name := range hopHeaders {
		out.Header.Del(name)
	}
	out.Header.Set("Authorization", "Bearer "+credential)

	ws, err := h.tenants.Active(req.Context(), sessionID)
	if err != nil {
		return err
	}
	if ws != nil {
		out.Header.Set("X-Workspace-Id", ws.ID)
	}

	resp, err := h.client.Do(out)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrUpstream, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	header := c.Response().Header()
	for name, values := range resp.Header {
		for _, v := range values {
			header.Add(name, v)
		}
	}
	for _, name := range hopHeaders {
		header.Del(name)
	}

	c.Response().WriteHeader(resp.StatusCode)
	_, err = io.Copy(c.Response(), resp.Body)
	return err
}
