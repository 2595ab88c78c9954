package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vendorsync/procurement-console/internal/core/domain"
	"github.com/vendorsync/procurement-console/internal/core/ports"
)

// SessionManager implements the session state machine:
//
//	Unauthenticated → Login/Register → Authenticating → Authenticated | Error
//	Authenticated   → Logout         → Unauthenticated
//	(startup)       → Restore        → Authenticated | Unauthenticated
//
// A successful login persists the identity to the credential store before the
// in-memory state flips, so no consumer can observe an authenticated session
// backed by an empty store. A failed login while already authenticated
// reinstates the prior identity untouched.
//
// Only one authentication attempt is applied at a time: a newer Login,
// Register, or Logout supersedes any attempt still in flight, and the
// superseded attempt's response is discarded when it eventually arrives.
type SessionManager struct {
	gateway ports.AuthGateway
	store   ports.CredentialStore
	log     zerolog.Logger

	mu       sync.Mutex
	state    domain.SessionState
	identity *domain.Identity
	lastErr  error
	attempt  uint64
}

var _ ports.SessionManager = (*SessionManager)(nil)

func NewSessionManager(gateway ports.AuthGateway, store ports.CredentialStore, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		gateway: gateway,
		store:   store,
		log:     log,
		state:   domain.StateUnauthenticated,
	}
}

// Login authenticates against the remote service. On success the returned
// identity becomes the current session and is persisted. On failure the
// classified error is returned as a value and the prior session, if any,
// is left untouched. Retries are always caller-driven.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	if email == "" || password == "" {
		return nil, domain.ErrValidation
	}

	attempt, prev := m.beginAttempt()
	identity, err := m.gateway.Login(ctx, email, password)
	return m.finishAttempt(ctx, attempt, prev, identity, err)
}

// Register creates an account and, on success, logs the new identity straight
// in — auto-login avoids a second round trip. Failure semantics match Login.
func (m *SessionManager) Register(ctx context.Context, input ports.RegisterInput) (*domain.Identity, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrValidation
	}

	attempt, prev := m.beginAttempt()
	identity, err := m.gateway.Register(ctx, input)
	return m.finishAttempt(ctx, attempt, prev, identity, err)
}

// Logout clears the in-memory session and the credential store. It always
// succeeds and is idempotent: a second call, or a call on an anonymous
// session, does nothing. Any in-flight authentication attempt is invalidated
// so its late response cannot resurrect the session.
func (m *SessionManager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.attempt++
	wasAnonymous := m.state == domain.StateUnauthenticated && m.identity == nil
	m.state = domain.StateUnauthenticated
	m.identity = nil
	m.lastErr = nil
	m.mu.Unlock()

	if wasAnonymous {
		return
	}
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn().Err(err).Msg("credential store clear failed")
	}
}

// Restore rehydrates the session from the credential store at process start.
// No network call is made: a well-formed stored identity is trusted until the
// server rejects its token. Corrupt or absent storage yields Unauthenticated.
func (m *SessionManager) Restore(ctx context.Context) domain.Session {
	identity, err := m.store.Load(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("credential store read failed, treating as absent")
		identity = nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if identity.Complete() {
		m.state = domain.StateAuthenticated
		m.identity = identity
	} else {
		m.state = domain.StateUnauthenticated
		m.identity = nil
	}
	m.lastErr = nil
	return m.snapshotLocked()
}

// Snapshot returns the current session state for guards and views.
func (m *SessionManager) Snapshot() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// IsAuthenticated is the derived predicate over Snapshot.
func (m *SessionManager) IsAuthenticated() bool {
	return m.Snapshot().IsAuthenticated()
}

// beginAttempt claims a new attempt id, records the identity to reinstate on
// failure, and moves the session to Authenticating.
func (m *SessionManager) beginAttempt() (uint64, *domain.Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempt++
	prev := m.identity
	m.state = domain.StateAuthenticating
	m.lastErr = nil
	return m.attempt, prev
}

// finishAttempt applies the gateway response, unless the attempt was
// superseded while in flight.
func (m *SessionManager) finishAttempt(ctx context.Context, attempt uint64, prev *domain.Identity, identity *domain.Identity, err error) (*domain.Identity, error) {
	if err == nil && !identity.Complete() {
		// A 2xx with a broken payload is a server fault, not a session.
		err = domain.ErrServer
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if attempt != m.attempt {
		// Superseded while in flight: the late response is discarded in
		// full — no state change and no credential write.
		m.log.Debug().Uint64("attempt", attempt).Msg("discarding superseded authentication response")
		return nil, domain.ErrAttemptSuperseded
	}

	if err != nil {
		if prev.Complete() {
			m.state = domain.StateAuthenticated
			m.identity = prev
		} else {
			m.state = domain.StateError
			m.identity = nil
		}
		m.lastErr = err
		return nil, err
	}

	// Persist before the in-memory state flips, so no consumer sees an
	// authenticated session backed by an empty store. A write failure only
	// degrades restore-after-restart, so it logs rather than failing the
	// login.
	if saveErr := m.store.Save(ctx, *identity); saveErr != nil {
		m.log.Warn().Err(saveErr).Msg("credential store write failed, session will not survive restart")
	}

	m.state = domain.StateAuthenticated
	m.identity = identity
	m.lastErr = nil

	out := *identity
	return &out, nil
}

func (m *SessionManager) snapshotLocked() domain.Session {
	s := domain.Session{State: m.state, Err: m.lastErr}
	if m.identity != nil {
		id := *m.identity
		s.Identity = &id
	}
	return s
}
