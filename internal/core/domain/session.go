package domain

// SessionState is the session manager's externally observable state.
type SessionState string

const (
	StateUnauthenticated SessionState = "unauthenticated"
	StateAuthenticating  SessionState = "authenticating"
	StateAuthenticated   SessionState = "authenticated"
	StateError           SessionState = "error"
)

// Session is a point-in-time snapshot of the current session: the state, the
// identity when authenticated, and the last authentication error when one
// occurred. Err is transient UI feedback and is never persisted.
type Session struct {
	State    SessionState
	Identity *Identity
	Err      error
}

// IsAuthenticated reports whether the snapshot holds a complete identity.
// A session in any other state, or in StateAuthenticated with a broken
// identity, counts as not authenticated.
func (s Session) IsAuthenticated() bool {
	return s.State == StateAuthenticated && s.Identity.Complete()
}
