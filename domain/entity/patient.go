package entity

import (
	"time"
)

// Address is stored as jsonb on the patients row; all parts optional.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	ZipCode    string `json:"zipCode,omitempty"`
	Complement string `json:"complement,omitempty"`
}

type Patient struct {
	ID        string    `json:"id"`
	Address   *Address  `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewPatient(id string) *Patient {
	now := time.Now().UTC()
	return &Patient{
		ID:        id,
		Address:   nil,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
