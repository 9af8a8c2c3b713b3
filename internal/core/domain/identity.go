package domain

import "errors"

// Role is the closed set of actor roles in the platform. Authorization
// decisions switch exhaustively over this type; an unknown value is never
// treated as any role.
type Role string

const (
	RoleOwner        Role = "owner"
	RoleProfessional Role = "professional"
	RoleClient       Role = "client"
)

// ParseRole converts a wire-level role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleProfessional, RoleClient:
		return Role(s), nil
	default:
		return "", ErrUnknownRole
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleProfessional, RoleClient:
		return true
	}
	return false
}

// Identity is the authenticated user record as resolved by the upstream
// authentication service. The gateway never mutates it.
type Identity struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

var (
	ErrUnknownRole        = errors.New("unknown role")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCredentialRejected = errors.New("credential rejected by upstream")
	ErrIdentityExists     = errors.New("identity already exists")
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrUpstream           = errors.New("upstream request failed")
)
