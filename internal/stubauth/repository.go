package stubauth

import "context"

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
