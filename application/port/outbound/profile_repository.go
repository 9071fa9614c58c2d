package outbound

import (
	"context"
	"errors"

	"github.com/verdemed/verdemed/domain/entity"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrPatientNotFound = errors.New("patient not found")
	ErrDoctorNotFound  = errors.New("doctor not found")
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	FindByID(ctx context.Context, id string) (*entity.Profile, error)
	FindRoleByID(ctx context.Context, id string) (entity.Role, error)
	Delete(ctx context.Context, id string) error
}

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, id string) (*entity.Patient, error)
	Delete(ctx context.Context, id string) error
}

type DoctorRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Doctor, error)
}
