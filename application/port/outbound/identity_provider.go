package outbound

import (
	"context"
	"errors"

	"github.com/verdemed/verdemed/domain/entity"
	"github.com/verdemed/verdemed/domain/valueobject"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email is already registered")
	ErrIdentityNotFound       = errors.New("identity not found")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidToken           = errors.New("invalid or expired token")
)

// IdentityProvider is the capability surface of the hosted identity store.
// It is the single source of truth for email uniqueness: two concurrent
// CreateUser calls with the same email race here, and at most one wins.
type IdentityProvider interface {
	// CreateUser provisions an auto-confirmed identity. Returns
	// ErrEmailAlreadyRegistered when the email is taken.
	CreateUser(ctx context.Context, email, password string) (*entity.Identity, error)
	DeleteUser(ctx context.Context, id string) error
	GetUserByID(ctx context.Context, id string) (*entity.Identity, error)
	// SignInWithPassword issues a session for valid credentials.
	SignInWithPassword(ctx context.Context, email, password string) (*valueobject.Session, error)
	// VerifyToken resolves a bearer access token to its identity.
	VerifyToken(ctx context.Context, accessToken string) (*entity.Identity, error)
}
