package entity

import (
	"time"
)

// Identity is the authentication account held by the identity store. It is
// created and deleted only through the IdentityProvider port and anchors the
// Profile and role record that share its ID.
type Identity struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	EmailConfirmed bool      `json:"email_confirmed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
