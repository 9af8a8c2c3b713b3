package api

import (
	"testing"

	"github.com/markaai/booking-gateway/internal/core/domain"
)

func routeByPath(t *testing.T, path string) RouteEntry {
	t.Helper()
	for _, route := range GuardedRoutes {
		if route.Path == path {
			return route
		}
	}
	t.Fatalf("no route table entry for %s", path)
	return RouteEntry{}
}

func hasRole(roles []domain.Role, role domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func TestGuardedRoutes_WorkspaceRoutesAreNested(t *testing.T) {
	// Workspace management lives under the tenant segment, not at top level.
	ownerOnly := []string{
		"/app/:workspace_id/professionals",
		"/app/:workspace_id/services",
		"/app/:workspace_id/billing",
		"/app/:workspace_id/settings",
	}
	for _, path := range ownerOnly {
		route := routeByPath(t, path)
		if len(route.Roles) != 1 || route.Roles[0] != domain.RoleOwner {
			t.Fatalf("%s must be owner-only, got %v", path, route.Roles)
		}
	}

	for _, path := range []string{"/app/:workspace_id/dashboard", "/app/:workspace_id/appointments"} {
		route := routeByPath(t, path)
		if !hasRole(route.Roles, domain.RoleOwner) || !hasRole(route.Roles, domain.RoleProfessional) {
			t.Fatalf("%s must admit owner and professional, got %v", path, route.Roles)
		}
		if hasRole(route.Roles, domain.RoleClient) {
			t.Fatalf("%s must not admit clients", path)
		}
	}

	for _, route := range GuardedRoutes {
		switch route.Path {
		case "/professionals", "/services", "/appointments", "/billing", "/settings":
			t.Fatalf("workspace route %s must be nested under /app/:workspace_id", route.Path)
		}
	}
}

func TestGuardedRoutes_ClientRoutes(t *testing.T) {
	for _, path := range []string{"/app/explore", "/app/my-appointments"} {
		route := routeByPath(t, path)
		if len(route.Roles) != 1 || route.Roles[0] != domain.RoleClient {
			t.Fatalf("%s must be client-only, got %v", path, route.Roles)
		}
	}
}

func TestGuardedRoutes_AppRootIsOpenToAnyAuthenticated(t *testing.T) {
	route := routeByPath(t, "/app")
	if len(route.Roles) != 0 {
		t.Fatalf("/app must admit any authenticated identity, got %v", route.Roles)
	}
}
