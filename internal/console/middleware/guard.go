package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vendorsync/procurement-console/internal/console/metrics"
	"github.com/vendorsync/procurement-console/internal/core/access"
	"github.com/vendorsync/procurement-console/internal/core/ports"
)

// identityKey is where the guard stashes the current identity for handlers.
const identityKey = "identity"

// Guard gates a view behind a required capability. The decision is
// recomputed from a fresh session snapshot on every navigation:
// RedirectToLogin becomes a 302 to /login, RedirectToUnauthorized a 302 to
// /unauthorized. Public views pass access.CapNone and always proceed, but
// still receive the identity when one exists.
func Guard(sessions ports.SessionManager, required access.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := sessions.Snapshot()
			decision := access.Evaluate(snap, required)
			metrics.GuardDecisionsTotal.WithLabelValues(decision.String(), capabilityLabel(required)).Inc()

			switch decision {
			case access.RedirectToLogin:
				return c.Redirect(http.StatusFound, "/login")
			case access.RedirectToUnauthorized:
				return c.Redirect(http.StatusFound, "/unauthorized")
			}

			if snap.IsAuthenticated() {
				c.Set(identityKey, snap.Identity)
			}
			return next(c)
		}
	}
}

func capabilityLabel(required access.Capability) string {
	if required == access.CapNone {
		return "none"
	}
	return string(required)
}
