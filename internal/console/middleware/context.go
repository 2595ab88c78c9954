package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/vendorsync/procurement-console/internal/core/domain"
)

// CurrentIdentity returns the identity the guard injected for this request,
// or nil on public views visited anonymously.
func CurrentIdentity(c echo.Context) *domain.Identity {
	identity, _ := c.Get(identityKey).(*domain.Identity)
	return identity
}
