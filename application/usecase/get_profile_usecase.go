package usecase

import (
	"context"
	"errors"

	"github.com/verdemed/verdemed/application/port/inbound"
	"github.com/verdemed/verdemed/application/port/outbound"
	"github.com/verdemed/verdemed/domain/entity"
	"github.com/verdemed/verdemed/pkg/apperror"
)

// GetUserProfile loads the base profile, recovers the email from the identity
// store, and joins the role record. The join is lenient: a missing or failing
// role-record lookup degrades to a profile without the nested record instead
// of a hard error, unlike the strict write path.
func (uc *UserUseCase) GetUserProfile(ctx context.Context, identityID string) (*inbound.UserProfile, error) {
	profile, err := uc.profiles.FindByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, outbound.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("User profile not found")
		}
		return nil, err
	}

	identity, err := uc.identities.GetUserByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, outbound.ErrIdentityNotFound) {
			return nil, apperror.NewNotFound("User not found")
		}
		return nil, err
	}

	result := &inbound.UserProfile{
		ID:        profile.ID,
		Email:     identity.Email,
		Role:      profile.Role,
		FullName:  profile.FullName,
		Phone:     profile.Phone,
		Birthdate: profile.Birthdate,
		CPF:       profile.CPF,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}

	switch profile.Role {
	case entity.RolePatient:
		patient, err := uc.patients.FindByID(ctx, identityID)
		if err != nil {
			uc.logger.Warn(ctx, "Patient record missing for profile", map[string]interface{}{
				"identity_id": identityID,
				"error":       err.Error(),
			})
		} else {
			result.Patient = patient
		}
	case entity.RoleDoctor:
		doctor, err := uc.doctors.FindByID(ctx, identityID)
		if err != nil {
			uc.logger.Warn(ctx, "Doctor record missing for profile", map[string]interface{}{
				"identity_id": identityID,
				"error":       err.Error(),
			})
		} else {
			result.Doctor = doctor
		}
	}

	return result, nil
}
