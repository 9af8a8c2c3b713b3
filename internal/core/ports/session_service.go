package ports

import (
	"context"

	"github.com/markaai/booking-gateway/internal/core/domain"
)

// SessionService owns identities, credentials and their persistence.
//
// Resume is the startup resolution step: given a session id, it attempts to
// resolve the identity behind the persisted credential. A rejected or missing
// credential yields an anonymous session with the credential removed from
// storage; Resume never leaves a credential behind without a resolvable
// identity.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, in RegisterInput) (*domain.Session, error)
	Resume(ctx context.Context, sessionID string) (*domain.Session, error)
	Logout(ctx context.Context, sessionID string) error

	// Credential returns the stored upstream credential for an
	// authenticated session, for threading into tenant-scoped calls.
	Credential(ctx context.Context, sessionID string) (string, error)
}
