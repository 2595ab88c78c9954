package ports

import (
	"context"

	"github.com/vendorsync/procurement-console/internal/core/domain"
)

// RegisterInput is the profile submitted to the remote authentication
// service when creating an account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.Role
}

// AuthGateway is the consumer-side contract of the remote Authentication
// Service. Implementations classify failures into the domain error taxonomy:
// ErrInvalidCredentials, ErrValidation, ErrNetwork, ErrServer.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*domain.Identity, error)
	Register(ctx context.Context, input RegisterInput) (*domain.Identity, error)
}
