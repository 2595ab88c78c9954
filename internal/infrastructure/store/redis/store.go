// Package redis is the shared-workstation credential store backend: the same
// contract as the file store, held in a Redis instance so a kiosk fleet can
// be wiped centrally.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/vendorsync/procurement-console/internal/core/domain"
	"github.com/vendorsync/procurement-console/internal/core/ports"
)

// Fixed key names for the two halves of the durable record.
const (
	tokenKey = "vendorsync:credential:token"
	userKey  = "vendorsync:credential:user"
)

const defaultDialTimeout = 5 * time.Second

// Config locates the Redis instance holding the credential record.
type Config struct {
	Addr        string
	DB          int
	DialTimeout time.Duration
}

// Open dials Redis, verifies connectivity with a ping, and returns a store
// bound to that connection. The caller owns the store and releases the
// connection with Close. A default dial timeout is applied when none is
// provided.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*Store, error) {
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("credential store dial %s: %w", cfg.Addr, err)
	}

	return NewStore(client, log), nil
}

type Store struct {
	client *redis.Client
	log    zerolog.Logger
}

var _ ports.CredentialStore = (*Store)(nil)

func NewStore(client *redis.Client, log zerolog.Logger) *Store {
	return &Store{client: client, log: log}
}

// Close releases the underlying Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

type userRecord struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// Save writes both keys in one transaction so a concurrent Load never sees a
// token without its user half.
func (s *Store) Save(ctx context.Context, identity domain.Identity) error {
	user, err := json.Marshal(userRecord{
		ID:        identity.UserID,
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Role:      string(identity.Role),
	})
	if err != nil {
		return fmt.Errorf("marshal user record: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, tokenKey, identity.Token, 0)
	pipe.Set(ctx, userKey, user, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// Load reads both keys. Either key missing, or an unparseable user record,
// reads as absent rather than failing.
func (s *Store) Load(ctx context.Context) (*domain.Identity, error) {
	token, err := s.client.Get(ctx, tokenKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}

	raw, err := s.client.Get(ctx, userKey).Result()
	if errors.Is(err, redis.Nil) {
		s.log.Warn().Msg("credential token present without user record, treating as absent")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user record: %w", err)
	}

	var rec userRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		s.log.Warn().Err(err).Msg("corrupt credential record, treating as absent")
		return nil, nil
	}

	identity := &domain.Identity{
		Token:     token,
		UserID:    rec.ID,
		Email:     rec.Email,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Role:      domain.Role(rec.Role),
	}
	if !identity.Complete() {
		s.log.Warn().Msg("incomplete credential record, treating as absent")
		return nil, nil
	}
	return identity, nil
}

// Clear deletes both keys; deleting absent keys is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, tokenKey, userKey).Err(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}
