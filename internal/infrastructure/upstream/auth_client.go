package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/markaai/booking-gateway/internal/core/domain"
	"github.com/markaai/booking-gateway/internal/core/ports"
)

// AuthClient implements ports.AuthProvider against the upstream auth API.
type AuthClient struct {
	client
}

func NewAuthClient(cfg Config) *AuthClient {
	return &AuthClient{client: newClient(cfg)}
}

type authResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func (a *AuthClient) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	body := map[string]string{"email": email, "password": password}

	var resp authResponse
	status, err := a.do(ctx, http.MethodPost, "/api/auth/login", "", body, &resp)
	if err != nil {
		return "", nil, err
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusBadRequest:
		return "", nil, domain.ErrInvalidCredentials
	case status == http.StatusNotFound:
		return "", nil, domain.ErrIdentityNotFound
	case status < 200 || status >= 300:
		return "", nil, fmt.Errorf("%w: login returned %d", domain.ErrUpstream, status)
	}

	identity, err := resp.User.toDomain()
	if err != nil {
		return "", nil, err
	}
	return resp.Token, identity, nil
}

func (a *AuthClient) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.Identity, error) {
	body := map[string]string{
		"name":     in.Name,
		"email":    in.Email,
		"password": in.Password,
		"role":     string(in.Role),
	}

	var resp authResponse
	status, err := a.do(ctx, http.MethodPost, "/api/auth/register", "", body, &resp)
	if err != nil {
		return "", nil, err
	}

	switch {
	case status == http.StatusConflict:
		return "", nil, domain.ErrIdentityExists
	case status == http.StatusBadRequest:
		return "", nil, domain.ErrInvalidCredentials
	case status < 200 || status >= 300:
		return "", nil, fmt.Errorf("%w: register returned %d", domain.ErrUpstream, status)
	}

	identity, err := resp.User.toDomain()
	if err != nil {
		return "", nil, err
	}
	return resp.Token, identity, nil
}

func (a *AuthClient) ResolveIdentity(ctx context.Context, credential string) (*domain.Identity, error) {
	var user userPayload
	status, err := a.do(ctx, http.MethodGet, "/api/auth/me", credential, nil, &user)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return nil, domain.ErrCredentialRejected
	case status < 200 || status >= 300:
		return nil, fmt.Errorf("%w: identity resolution returned %d", domain.ErrUpstream, status)
	}

	return user.toDomain()
}
