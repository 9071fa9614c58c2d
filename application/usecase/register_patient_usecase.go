package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/verdemed/verdemed/application/port/inbound"
	"github.com/verdemed/verdemed/application/port/outbound"
	"github.com/verdemed/verdemed/domain/entity"
	"github.com/verdemed/verdemed/domain/valueobject"
	"github.com/verdemed/verdemed/infrastructure/service/logger"
	"github.com/verdemed/verdemed/pkg/apperror"
	"github.com/verdemed/verdemed/pkg/saga"
)

// UserUseCase owns the multi-entity registration sequence and the profile
// read path. It is the only writer of Identity+Profile+Patient as a unit.
type UserUseCase struct {
	identities outbound.IdentityProvider
	profiles   outbound.ProfileRepository
	patients   outbound.PatientRepository
	doctors    outbound.DoctorRepository
	audit      inbound.AuditUseCase
	logger     logger.Logger
}

func NewUserUseCase(
	identities outbound.IdentityProvider,
	profiles outbound.ProfileRepository,
	patients outbound.PatientRepository,
	doctors outbound.DoctorRepository,
	audit inbound.AuditUseCase,
	log logger.Logger,
) inbound.UserUseCase {
	return &UserUseCase{
		identities: identities,
		profiles:   profiles,
		patients:   patients,
		doctors:    doctors,
		audit:      audit,
		logger:     log,
	}
}

// RegisterPatient creates the identity, profile and patient record as one
// logical operation. The backing store has no cross-entity transaction, so
// the sequence runs as a best-effort saga: each successful write arms a
// compensating delete, and any later failure unwinds the stack before the
// original error propagates. A crash mid-sequence can still leave orphans;
// the reconcile worker sweeps those up.
func (uc *UserUseCase) RegisterPatient(ctx context.Context, req inbound.RegisterPatientRequest) (*inbound.RegisterPatientResponse, error) {
	var (
		identity *entity.Identity
		profile  *entity.Profile
		patient  *entity.Patient
		session  *valueobject.Session
	)

	registration := saga.New(
		saga.Step{
			Name: "create-identity",
			Run: func(ctx context.Context) error {
				created, err := uc.identities.CreateUser(ctx, req.Email, req.Password)
				if err != nil {
					return err
				}
				identity = created
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return uc.identities.DeleteUser(ctx, identity.ID)
			},
		},
		saga.Step{
			Name: "create-profile",
			Run: func(ctx context.Context) error {
				profile = entity.NewProfile(identity.ID, entity.RolePatient, req.FullName, req.Phone, req.Birthdate, req.CPF)
				return uc.profiles.Create(ctx, profile)
			},
			Compensate: func(ctx context.Context) error {
				return uc.profiles.Delete(ctx, identity.ID)
			},
		},
		saga.Step{
			Name: "create-patient",
			Run: func(ctx context.Context) error {
				patient = entity.NewPatient(identity.ID)
				return uc.patients.Create(ctx, patient)
			},
			Compensate: func(ctx context.Context) error {
				return uc.patients.Delete(ctx, identity.ID)
			},
		},
		saga.Step{
			Name:       "audit-register",
			BestEffort: true,
			Run: func(ctx context.Context) error {
				_, err := uc.audit.Record(ctx, inbound.RecordAuditRequest{
					ActorUserID: identity.ID,
					Action:      "REGISTER",
					EntityType:  "USER",
					EntityID:    identity.ID,
					IPAddress:   req.IPAddress,
					UserAgent:   req.UserAgent,
				})
				return err
			},
		},
		saga.Step{
			Name:       "sign-in",
			BestEffort: true,
			Run: func(ctx context.Context) error {
				issued, err := uc.identities.SignInWithPassword(ctx, req.Email, req.Password)
				if err != nil {
					return err
				}
				session = issued
				return nil
			},
		},
	)
	registration.OnStepError = func(stepName string, err error) {
		uc.logger.Warn(ctx, "Registration step failed without aborting", map[string]interface{}{
			"step":  stepName,
			"error": err.Error(),
		})
	}

	if err := registration.Execute(ctx); err != nil {
		if errors.Is(err, outbound.ErrEmailAlreadyRegistered) {
			return nil, apperror.NewConflict("Email is already registered")
		}
		uc.logger.Error(ctx, "Patient registration failed", err, map[string]interface{}{
			"email": req.Email,
		})
		return nil, fmt.Errorf("failed to register patient: %w", err)
	}

	if session == nil {
		// Identity, profile and patient all exist; a failed sign-in is not
		// grounds to undo them. The caller signs in explicitly later.
		session = valueobject.EmptySession()
	}

	logger.LogAuthEvent(ctx, uc.logger, "register", identity.ID, req.IPAddress, true, map[string]interface{}{
		"email": identity.Email,
	})

	return &inbound.RegisterPatientResponse{
		User: inbound.RegisteredUser{
			ID:    identity.ID,
			Email: identity.Email,
		},
		Session: session,
		Profile: &inbound.UserProfile{
			ID:        profile.ID,
			Email:     identity.Email,
			Role:      profile.Role,
			FullName:  profile.FullName,
			Phone:     profile.Phone,
			Birthdate: profile.Birthdate,
			CPF:       profile.CPF,
			CreatedAt: profile.CreatedAt,
			UpdatedAt: profile.UpdatedAt,
			// The patient row was just written with known values; no
			// re-read round-trip.
			Patient: patient,
		},
	}, nil
}
