// Package file is the default credential store: a single JSON document on
// disk, the desktop equivalent of the browser's localStorage.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/vendorsync/procurement-console/internal/core/domain"
	"github.com/vendorsync/procurement-console/internal/core/ports"
)

type Store struct {
	path string
	log  zerolog.Logger
}

var _ ports.CredentialStore = (*Store)(nil)

func New(path string, log zerolog.Logger) *Store {
	return &Store{path: path, log: log}
}

// record is the on-disk shape: the fixed "token" and "user" keys mirror the
// storage layout of the original client.
type record struct {
	Token string `json:"token"`
	User  struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Role      string `json:"role"`
	} `json:"user"`
}

// Save writes the identity atomically: marshal, write a sibling temp file
// with 0600, rename over the target. A reader never observes a partial write.
func (s *Store) Save(_ context.Context, identity domain.Identity) error {
	var rec record
	rec.Token = identity.Token
	rec.User.ID = identity.UserID
	rec.User.Email = identity.Email
	rec.User.FirstName = identity.FirstName
	rec.User.LastName = identity.LastName
	rec.User.Role = string(identity.Role)

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("commit credentials: %w", err)
	}
	return nil
}

// Load reads the stored identity. Missing file, unreadable JSON, and records
// that fail the wholly-present invariant all come back as (nil, nil):
// indistinguishable from never having logged in.
func (s *Store) Load(_ context.Context) (*domain.Identity, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("corrupt credential file, treating as absent")
		return nil, nil
	}

	identity := &domain.Identity{
		Token:     rec.Token,
		UserID:    rec.User.ID,
		Email:     rec.User.Email,
		FirstName: rec.User.FirstName,
		LastName:  rec.User.LastName,
		Role:      domain.Role(rec.User.Role),
	}
	if !identity.Complete() {
		s.log.Warn().Str("path", s.path).Msg("incomplete credential record, treating as absent")
		return nil, nil
	}
	return identity, nil
}

// Clear erases the stored identity. Clearing an empty store is a no-op.
func (s *Store) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}
