package domain

import (
	"errors"
	"time"
)

// SessionState represents the lifecycle state of a gateway session.
type SessionState string

const (
	StateUninitialized SessionState = "uninitialized"
	StateResolving     SessionState = "resolving"
	StateAuthenticated SessionState = "authenticated"
	StateAnonymous     SessionState = "anonymous"
)

// validTransitions defines the allowed session state machine transitions.
// An authenticated session becomes anonymous only through explicit logout or
// a credential-resolution failure; there is no path back without a fresh login.
var validTransitions = map[SessionState][]SessionState{
	StateUninitialized: {StateResolving},
	StateResolving:     {StateAuthenticated, StateAnonymous},
	StateAuthenticated: {StateAnonymous},
}

var ErrInvalidSessionTransition = errors.New("invalid session state transition")

// CanTransitionTo reports whether a transition from s to next is valid.
func (s SessionState) CanTransitionTo(next SessionState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Session is an authenticated gateway session. The upstream credential is
// never embedded here; it lives sealed in durable storage keyed by the
// session id.
type Session struct {
	ID        string       `json:"id"`
	Token     string       `json:"token,omitempty"`
	State     SessionState `json:"state"`
	Identity  *Identity    `json:"identity,omitempty"`
	ExpiresAt time.Time    `json:"expires_at"`
}
