// Package upstream holds the REST clients for the scheduling platform's
// backend API: the authentication service and the workspace directory. All
// payload shapes are owned by that API; this package only maps them onto the
// gateway's domain types.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/markaai/booking-gateway/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for reaching the upstream API.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

type client struct {
	baseURL string
	http    *http.Client
}

func newClient(cfg Config) client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// do issues a JSON request and decodes the response body into out when the
// status is 2xx. The HTTP status is returned in every case so callers can map
// failures onto domain errors.
func (c client) do(ctx context.Context, method, path, bearer string, body, out any) (int, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("%w: encode request: %v", domain.ErrUpstream, err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %s: %v", domain.ErrUpstream, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: decode response: %v", domain.ErrUpstream, err)
		}
	}
	return resp.StatusCode, nil
}

// userPayload is the upstream wire shape of an identity.
type userPayload struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

func (u userPayload) toDomain() (*domain.Identity, error) {
	role, err := domain.ParseRole(u.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: upstream sent role %q", err, u.Role)
	}
	return &domain.Identity{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   role,
		Avatar: u.Avatar,
	}, nil
}
