package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/markaai/booking-gateway/internal/api/metrics"
	"github.com/markaai/booking-gateway/internal/core/domain"
	"github.com/markaai/booking-gateway/internal/core/ports"
	"github.com/markaai/booking-gateway/internal/core/service"
)

// Gate enforces the access gate on a guarded route. The decision itself is
// pure (service.DecideAccess); this middleware only feeds it the identity
// snapshot from the request context and turns the verdict into a redirect.
func Gate(audit ports.AuditSink, required ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := identityFromContext(c)

			decision := service.DecideAccess(identity, required)
			if decision.Allow {
				metrics.GateDecisionsTotal.WithLabelValues("allow").Inc()
				return next(c)
			}

			if decision.Redirect == service.LoginPath {
				metrics.GateDecisionsTotal.WithLabelValues("redirect_login").Inc()
			} else {
				metrics.GateDecisionsTotal.WithLabelValues("redirect_app").Inc()
				if audit != nil && identity != nil {
					sessionID, _ := c.Get("session_id").(string)
					audit.Enqueue(domain.AuditEvent{
						SessionID: sessionID,
						Role:      identity.Role,
						Action:    domain.AuditGateDenied,
						Path:      c.Path(),
						Timestamp: time.Now().UTC(),
					})
				}
			}

			return c.Redirect(http.StatusFound, decision.Redirect)
		}
	}
}

// identityFromContext rebuilds the identity snapshot attached by the Session
// middleware. Only the role matters to the gate; a request without a live
// session yields nil.
func identityFromContext(c echo.Context) *domain.Identity {
	sessionID, _ := c.Get("session_id").(string)
	role, _ := c.Get("role").(string)
	if sessionID == "" || role == "" {
		return nil
	}
	return &domain.Identity{Role: domain.Role(role)}
}
