package outbound

import (
	"context"

	"github.com/verdemed/verdemed/domain/entity"
)

// IdentityRepository is the identity store's own persistence surface, used
// only by the IdentityProvider implementation. Create must fail with
// ErrEmailAlreadyRegistered on a duplicate email; the unique index is the
// serialization point for concurrent registrations.
type IdentityRepository interface {
	Create(ctx context.Context, identity *entity.Identity, passwordHash string) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Identity, error)
	FindByEmail(ctx context.Context, email string) (*entity.Identity, string, error)
}
