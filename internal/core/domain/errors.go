package domain

import "errors"

// Authentication failures are returned as values, never panics, and are
// classified so callers can decide what to show: invalid credentials and
// validation errors are user-correctable, network errors invite a manual
// retry, server errors get a generic message. Nothing is retried
// automatically.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("invalid request")
	ErrNetwork            = errors.New("network unreachable")
	ErrServer             = errors.New("server error")

	// ErrAttemptSuperseded is returned to the caller of an authentication
	// attempt that was replaced by a newer one (or by a logout) before its
	// response arrived. The late response is discarded, never applied.
	ErrAttemptSuperseded = errors.New("authentication attempt superseded")
)
