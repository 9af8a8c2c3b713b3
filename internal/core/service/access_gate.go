package service

import "github.com/markaai/booking-gateway/internal/core/domain"

// Redirect targets for denied access. An unauthenticated caller goes to the
// login entry point; an authenticated caller with the wrong role goes to the
// authenticated landing page, never back to login.
const (
	LoginPath   = "/login"
	AppRootPath = "/app"
)

// AccessDecision is the gate's verdict for one navigation target. When Allow
// is false, Redirect names the path the caller is sent to instead.
type AccessDecision struct {
	Allow    bool
	Redirect string
}

// DecideAccess is the access gate: pure and synchronous, it maps the current
// identity snapshot and a route's required roles to allow-or-redirect. It
// performs no I/O; callers re-invoke it whenever the identity changes.
func DecideAccess(identity *domain.Identity, required []domain.Role) AccessDecision {
	if identity == nil {
		return AccessDecision{Redirect: LoginPath}
	}

	// A corrupt or unknown role never passes a gate. Redirecting to login
	// forces re-authentication rather than granting a default role.
	switch identity.Role {
	case domain.RoleOwner, domain.RoleProfessional, domain.RoleClient:
	default:
		return AccessDecision{Redirect: LoginPath}
	}

	if len(required) == 0 {
		return AccessDecision{Allow: true}
	}

	for _, role := range required {
		if identity.Role == role {
			return AccessDecision{Allow: true}
		}
	}

	// Authorization failure, not authentication failure: the caller is
	// authenticated, so send them to neutral ground.
	return AccessDecision{Redirect: AppRootPath}
}
