package outbound

import (
	"context"
	"time"
)

// TokenService mints and validates the identity store's access tokens.
type TokenService interface {
	GenerateAccessToken(identityID, email string) (string, error)
	GenerateRefreshToken() (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

type TokenClaims struct {
	IdentityID string
	Email      string
}

// PasswordService hashes and verifies identity passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) (bool, error)
}

// RateLimitService is the redis-backed request throttle used by the HTTP
// layer. Implemented by infrastructure/service/ratelimit.
type RateLimitService interface {
	CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Increment(ctx context.Context, key string, window time.Duration) error
	IsBlocked(ctx context.Context, key string) (bool, error)
	Block(ctx context.Context, key string, duration time.Duration, reason string) error
}

// ReconciliationRepository surfaces rows the registration saga can leave
// behind when it crashes between a write and its compensation.
type ReconciliationRepository interface {
	ProfileIDsMissingRoleRecord(ctx context.Context, limit int) ([]string, error)
	ProfileIDsMissingIdentity(ctx context.Context, limit int) ([]string, error)
}
