package ports

import (
	"context"

	"github.com/markaai/booking-gateway/internal/core/domain"
)

// RegisterInput carries the profile for a new account. Role is fixed at
// creation time and immutable afterwards; only owner and client accounts may
// self-register.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AuthProvider is the upstream authentication service. The credential it
// returns is an opaque bearer token; the gateway stores it but never
// interprets it.
type AuthProvider interface {
	Login(ctx context.Context, email, password string) (credential string, identity *domain.Identity, err error)
	Register(ctx context.Context, in RegisterInput) (credential string, identity *domain.Identity, err error)
	ResolveIdentity(ctx context.Context, credential string) (*domain.Identity, error)
}
