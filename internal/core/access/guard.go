package access

import "github.com/vendorsync/procurement-console/internal/core/domain"

// Decision is the route guard's verdict for one navigation attempt.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	RedirectToUnauthorized
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToUnauthorized:
		return "redirect_unauthorized"
	}
	return "unknown"
}

// Evaluate decides whether a navigation may proceed given the current session
// snapshot and the target view's required capability (CapNone for public
// views). It never fails: an indeterminate session is treated as anonymous
// (fail closed). The decision is recomputed on every navigation; nothing is
// cached.
func Evaluate(session domain.Session, required Capability) Decision {
	if required == CapNone {
		return Allow
	}
	if !session.IsAuthenticated() {
		return RedirectToLogin
	}
	if CapabilitiesFor(session.Identity.Role).Has(required) {
		return Allow
	}
	return RedirectToUnauthorized
}
