// Package stubauth is a local stand-in for the VendorSync authentication
// backend. It serves the same /login and /register contract the console's
// authapi adapter consumes, so the client can be developed and demoed
// without the production API. It is not the production service.
package stubauth

import (
	"errors"
	"time"
)

// User is an account held by the stub.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid registration input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)
