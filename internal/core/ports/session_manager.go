package ports

import (
	"context"

	"github.com/vendorsync/procurement-console/internal/core/domain"
)

// SessionManager owns the current identity and its lifecycle. Views and the
// route guard consume it through this interface; the concrete manager is
// constructor-injected, never reached through package-level state.
type SessionManager interface {
	Login(ctx context.Context, email, password string) (*domain.Identity, error)
	Register(ctx context.Context, input RegisterInput) (*domain.Identity, error)
	Logout(ctx context.Context)
	Restore(ctx context.Context) domain.Session
	Snapshot() domain.Session
	IsAuthenticated() bool
}
