package service

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/markaai/booking-gateway/internal/core/domain"
	"github.com/markaai/booking-gateway/internal/core/ports"
)

func credentialKey(sessionID string) string {
	return "credential:" + sessionID
}

// SessionService implements ports.SessionService. It owns the pairing of
// identity and upstream credential: both are created together at login or
// registration and destroyed together at logout or resolution failure.
type SessionService struct {
	auth      ports.AuthProvider
	storage   ports.Storage
	tenants   ports.WorkspaceResolver
	audit     ports.AuditSink
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger

	mu     sync.Mutex
	states map[string]domain.SessionState
}

func NewSessionService(
	auth ports.AuthProvider,
	storage ports.Storage,
	tenants ports.WorkspaceResolver,
	audit ports.AuditSink,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *SessionService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &SessionService{
		auth:      auth,
		storage:   storage,
		tenants:   tenants,
		audit:     audit,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		states:    make(map[string]domain.SessionState),
	}
}

// Login exchanges email/password for an authenticated session. On upstream
// rejection nothing is persisted.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	credential, identity, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return s.establish(ctx, credential, identity, domain.AuditLogin)
}

// Register creates a new account upstream and establishes a session for it.
// Role is fixed at creation; only owner and client accounts self-register.
func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Session, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if in.Role != domain.RoleOwner && in.Role != domain.RoleClient {
		return nil, domain.ErrUnknownRole
	}

	credential, identity, err := s.auth.Register(ctx, in)
	if err != nil {
		return nil, err
	}

	return s.establish(ctx, credential, identity, domain.AuditRegister)
}

func (s *SessionService) establish(ctx context.Context, credential string, identity *domain.Identity, action domain.AuditAction) (*domain.Session, error) {
	sessionID := uuid.NewString()

	if err := s.storage.Set(ctx, credentialKey(sessionID), credential); err != nil {
		return nil, err
	}

	expiresAt := time.Now().UTC().Add(s.tokenTTL)
	token, err := s.mintToken(sessionID, identity.Role, expiresAt)
	if err != nil {
		// Roll back the persisted credential so no orphan survives.
		_ = s.storage.Remove(ctx, credentialKey(sessionID))
		return nil, err
	}

	s.setState(sessionID, domain.StateAuthenticated)
	s.emit(domain.AuditEvent{
		SessionID:  sessionID,
		IdentityID: identity.ID,
		Role:       identity.Role,
		Action:     action,
	})

	return &domain.Session{
		ID:        sessionID,
		Token:     token,
		State:     domain.StateAuthenticated,
		Identity:  identity,
		ExpiresAt: expiresAt,
	}, nil
}

// Resume resolves the identity behind a session's persisted credential. Any
// failure — missing credential, upstream rejection, storage or network error —
// ends in an anonymous session with the credential removed; Resume itself
// never returns an error for those cases.
func (s *SessionService) Resume(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return &domain.Session{State: domain.StateAnonymous}, nil
	}

	switch s.state(sessionID) {
	case domain.StateAnonymous:
		// A session that already failed resolution or logged out stays
		// anonymous; there is no silent re-authentication.
		return &domain.Session{ID: sessionID, State: domain.StateAnonymous}, nil
	case domain.StateAuthenticated:
		// A fresh page load re-runs startup resolution for a live
		// session; restart the lifecycle for this attempt.
		s.forceState(sessionID, domain.StateUninitialized)
	}

	s.setState(sessionID, domain.StateResolving)

	credential, ok, err := s.storage.Get(ctx, credentialKey(sessionID))
	if err != nil || !ok {
		if err != nil {
			s.log.Warn().Err(err).Str("session_id", sessionID).Msg("credential lookup failed, treating as anonymous")
		}
		return s.abandon(ctx, sessionID), nil
	}

	identity, err := s.auth.ResolveIdentity(ctx, credential)
	if err != nil {
		s.log.Info().Err(err).Str("session_id", sessionID).Msg("credential resolution failed, clearing session")
		s.emit(domain.AuditEvent{SessionID: sessionID, Action: domain.AuditResumeFailed})
		return s.abandon(ctx, sessionID), nil
	}

	s.setState(sessionID, domain.StateAuthenticated)
	return &domain.Session{
		ID:       sessionID,
		State:    domain.StateAuthenticated,
		Identity: identity,
	}, nil
}

// Logout destroys the session: the persisted credential and the persisted
// active-workspace reference are removed together.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrSessionNotFound
	}

	if err := s.storage.Remove(ctx, credentialKey(sessionID)); err != nil {
		return err
	}
	if err := s.tenants.Forget(ctx, sessionID); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to clear workspace selection")
	}

	// With the credential gone, storage enforces anonymity; no in-memory
	// marker needs to outlive the session.
	s.clearState(sessionID)
	s.emit(domain.AuditEvent{SessionID: sessionID, Action: domain.AuditLogout})
	return nil
}

// Credential returns the stored upstream credential of an authenticated
// session.
func (s *SessionService) Credential(ctx context.Context, sessionID string) (string, error) {
	credential, ok, err := s.storage.Get(ctx, credentialKey(sessionID))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	return credential, nil
}

// abandon clears all persisted traces of a session and marks it anonymous.
// Once the credential is removed the in-memory entry is evicted too; the
// anonymous marker is kept only while a stale credential might linger, so a
// later Resume cannot silently re-resolve it.
func (s *SessionService) abandon(ctx context.Context, sessionID string) *domain.Session {
	removed := true
	if err := s.storage.Remove(ctx, credentialKey(sessionID)); err != nil {
		removed = false
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to remove stale credential")
	}
	if err := s.tenants.Forget(ctx, sessionID); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to clear workspace selection")
	}
	if removed {
		s.clearState(sessionID)
	} else {
		s.setState(sessionID, domain.StateAnonymous)
	}
	return &domain.Session{ID: sessionID, State: domain.StateAnonymous}
}

func (s *SessionService) mintToken(sessionID string, role domain.Role, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid":  sessionID,
		"role": string(role),
		"exp":  expiresAt.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *SessionService) state(sessionID string) domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[sessionID]; ok {
		return st
	}
	return domain.StateUninitialized
}

func (s *SessionService) setState(sessionID string, next domain.SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.states[sessionID]
	if !ok {
		current = domain.StateUninitialized
	}
	if current != next && !current.CanTransitionTo(next) {
		// Login minting a fresh id lands here with an unused id, which is
		// uninitialized; any other mismatch indicates a caller bug.
		if !(current == domain.StateUninitialized && next == domain.StateAuthenticated) {
			s.log.Debug().
				Str("session_id", sessionID).
				Str("from", string(current)).
				Str("to", string(next)).
				Msg("unexpected session state transition")
		}
	}
	s.states[sessionID] = next
}

func (s *SessionService) forceState(sessionID string, state domain.SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[sessionID] = state
}

func (s *SessionService) clearState(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sessionID)
}

func (s *SessionService) emit(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.audit.Enqueue(event)
}
