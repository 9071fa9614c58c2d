package usecase

import (
	"context"
	"errors"

	"github.com/verdemed/verdemed/application/port/inbound"
	"github.com/verdemed/verdemed/application/port/outbound"
	"github.com/verdemed/verdemed/domain/valueobject"
	"github.com/verdemed/verdemed/infrastructure/service/logger"
	"github.com/verdemed/verdemed/pkg/apperror"
)

type AuthUseCase struct {
	identities outbound.IdentityProvider
	audit      inbound.AuditUseCase
	logger     logger.Logger
}

func NewAuthUseCase(identities outbound.IdentityProvider, audit inbound.AuditUseCase, log logger.Logger) inbound.AuthUseCase {
	return &AuthUseCase{identities: identities, audit: audit, logger: log}
}

// Login delegates credential checking to the identity store. The audit append
// is best-effort, matching the registration saga's policy.
func (uc *AuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*valueobject.Session, error) {
	session, err := uc.identities.SignInWithPassword(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, outbound.ErrInvalidCredentials) {
			logger.LogAuthEvent(ctx, uc.logger, "login", "", req.IPAddress, false, map[string]interface{}{
				"email": req.Email,
			})
			return nil, apperror.NewAuthentication("Invalid email or password")
		}
		return nil, err
	}

	if _, err := uc.audit.Record(ctx, inbound.RecordAuditRequest{
		Action:     "LOGIN",
		EntityType: "USER",
		IPAddress:  req.IPAddress,
		UserAgent:  req.UserAgent,
	}); err != nil {
		uc.logger.Warn(ctx, "Login audit append failed", map[string]interface{}{
			"email": req.Email,
		})
	}

	logger.LogAuthEvent(ctx, uc.logger, "login", "", req.IPAddress, true, map[string]interface{}{
		"email": req.Email,
	})

	return session, nil
}
