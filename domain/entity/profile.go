package entity

import (
	"time"
)

type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
	RoleAdmin   Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// Profile is the per-identity base record. Role is immutable after creation;
// exactly one role-specific record (Patient or Doctor) matches it, ADMIN has
// none.
type Profile struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	FullName  string    `json:"fullName"`
	Phone     *string   `json:"phone"`
	Birthdate *string   `json:"birthdate"`
	CPF       *string   `json:"cpf"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewProfile(id string, role Role, fullName, phone, birthdate, cpf string) *Profile {
	now := time.Now().UTC()
	return &Profile{
		ID:        id,
		Role:      role,
		FullName:  fullName,
		Phone:     optional(phone),
		Birthdate: optional(birthdate),
		CPF:       optional(cpf),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
