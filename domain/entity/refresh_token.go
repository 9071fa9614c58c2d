package entity

import (
	"time"
)

// RefreshToken rows store only a salted hash of the opaque token value.
type RefreshToken struct {
	ID         string     `json:"id"`
	IdentityID string     `json:"identity_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
}

func NewRefreshToken(id, identityID, tokenHash string, expiresAt time.Time) *RefreshToken {
	return &RefreshToken{
		ID:         id,
		IdentityID: identityID,
		TokenHash:  tokenHash,
		ExpiresAt:  expiresAt,
		CreatedAt:  time.Now().UTC(),
	}
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) Revoke() {
	now := time.Now().UTC()
	rt.RevokedAt = &now
}
