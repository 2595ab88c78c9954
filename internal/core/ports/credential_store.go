package ports

import (
	"context"

	"github.com/vendorsync/procurement-console/internal/core/domain"
)

// CredentialStore is durable key/value persistence for the current identity,
// surviving process restart. Load returns (nil, nil) both when nothing was
// ever saved and when the stored payload is malformed; corrupt storage is
// indistinguishable from "never logged in" and is never fatal.
type CredentialStore interface {
	Save(ctx context.Context, identity domain.Identity) error
	Load(ctx context.Context) (*domain.Identity, error)
	Clear(ctx context.Context) error
}
