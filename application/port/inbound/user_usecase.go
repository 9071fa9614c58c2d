package inbound

import (
	"context"
	"time"

	"github.com/verdemed/verdemed/domain/entity"
	"github.com/verdemed/verdemed/domain/valueobject"
)

// RegisterPatientRequest carries an already schema-validated registration
// payload plus the request metadata used for audit logging.
type RegisterPatientRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	Birthdate string `json:"birthdate"`
	CPF       string `json:"cpf"`

	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type RegisteredUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type RegisterPatientResponse struct {
	User    RegisteredUser       `json:"user"`
	Session *valueobject.Session `json:"session"`
	Profile *UserProfile         `json:"profile"`
}

// UserProfile is the assembled read model: the base profile flattened,
// email recovered from the identity store, and the role record nested when
// present.
type UserProfile struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Role      entity.Role     `json:"role"`
	FullName  string          `json:"fullName"`
	Phone     *string         `json:"phone"`
	Birthdate *string         `json:"birthdate"`
	CPF       *string         `json:"cpf"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Patient   *entity.Patient `json:"patient,omitempty"`
	Doctor    *entity.Doctor  `json:"doctor,omitempty"`
}

type UserUseCase interface {
	RegisterPatient(ctx context.Context, req RegisterPatientRequest) (*RegisterPatientResponse, error)
	GetUserProfile(ctx context.Context, identityID string) (*UserProfile, error)
}
