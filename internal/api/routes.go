package api

import (
	"github.com/markaai/booking-gateway/internal/core/domain"
)

// RouteEntry is one guarded application route: the path the SPA navigates to
// and the roles allowed to enter it. An empty Roles slice means any
// authenticated identity may pass.
type RouteEntry struct {
	Path  string
	Roles []domain.Role
}

// GuardedRoutes is the static route table. The table is data, not code: the
// access gate receives each entry's role set and decides per request. Paths
// use Echo parameter syntax.
var GuardedRoutes = []RouteEntry{
	{Path: "/app", Roles: nil},
	{Path: "/app/:workspace_id/dashboard", Roles: []domain.Role{domain.RoleOwner, domain.RoleProfessional}},
	{Path: "/app/:workspace_id/professionals", Roles: []domain.Role{domain.RoleOwner}},
	{Path: "/app/:workspace_id/services", Roles: []domain.Role{domain.RoleOwner}},
	{Path: "/app/:workspace_id/appointments", Roles: []domain.Role{domain.RoleOwner, domain.RoleProfessional}},
	{Path: "/app/:workspace_id/billing", Roles: []domain.Role{domain.RoleOwner}},
	{Path: "/app/:workspace_id/settings", Roles: []domain.Role{domain.RoleOwner}},
	{Path: "/app/explore", Roles: []domain.Role{domain.RoleClient}},
	{Path: "/app/my-appointments", Roles: []domain.Role{domain.RoleClient}},
	{Path: "/onboarding/workspace", Roles: []domain.Role{domain.RoleOwner}},
	{Path: "/onboarding/plan", Roles: []domain.Role{domain.RoleOwner}},
}
