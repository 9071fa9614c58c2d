package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/verdemed/verdemed/application/port/outbound"
	"github.com/verdemed/verdemed/domain/entity"
	"github.com/verdemed/verdemed/domain/valueobject"
	"github.com/verdemed/verdemed/infrastructure/service/logger"
)

// Provider implements the IdentityProvider capability surface over the local
// identity tables. It owns password hashing, session issuance and bearer
// token verification; callers never touch auth rows directly.
type Provider struct {
	identities    outbound.IdentityRepository
	refreshTokens outbound.RefreshTokenRepository
	tokens        outbound.TokenService
	passwords     outbound.PasswordService
	logger        logger.Logger

	refreshTokenSalt string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

func NewProvider(
	identities outbound.IdentityRepository,
	refreshTokens outbound.RefreshTokenRepository,
	tokens outbound.TokenService,
	passwords outbound.PasswordService,
	log logger.Logger,
	refreshTokenSalt string,
	accessTokenTTL time.Duration,
	refreshTokenTTL time.Duration,
) outbound.IdentityProvider {
	return &Provider{
		identities:       identities,
		refreshTokens:    refreshTokens,
		tokens:           tokens,
		passwords:        passwords,
		logger:           log,
		refreshTokenSalt: refreshTokenSalt,
		accessTokenTTL:   accessTokenTTL,
		refreshTokenTTL:  refreshTokenTTL,
	}
}

// CreateUser provisions an auto-confirmed identity. Email confirmation flows
// are not part of this deployment, so accounts are usable immediately.
func (p *Provider) CreateUser(ctx context.Context, email, password string) (*entity.Identity, error) {
	hash, err := p.passwords.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	identity := &entity.Identity{
		ID:             uuid.NewString(),
		Email:          email,
		EmailConfirmed: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := p.identities.Create(ctx, identity, hash); err != nil {
		if errors.Is(err, outbound.ErrEmailAlreadyRegistered) {
			return nil, outbound.ErrEmailAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	return identity, nil
}

func (p *Provider) DeleteUser(ctx context.Context, id string) error {
	if err := p.refreshTokens.RevokeByIdentityID(ctx, id); err != nil {
		p.logger.Warn(ctx, "Failed to revoke refresh tokens before identity deletion", map[string]interface{}{
			"identity_id": id,
			"error":       err.Error(),
		})
	}
	return p.identities.Delete(ctx, id)
}

func (p *Provider) GetUserByID(ctx context.Context, id string) (*entity.Identity, error) {
	return p.identities.FindByID(ctx, id)
}

func (p *Provider) SignInWithPassword(ctx context.Context, email, password string) (*valueobject.Session, error) {
	identity, hash, err := p.identities.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, outbound.ErrIdentityNotFound) {
			return nil, outbound.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up identity: %w", err)
	}

	ok, err := p.passwords.VerifyPassword(password, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, outbound.ErrInvalidCredentials
	}

	accessToken, err := p.tokens.GenerateAccessToken(identity.ID, identity.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := p.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	record := entity.NewRefreshToken(
		uuid.NewString(),
		identity.ID,
		p.hashToken(refreshToken),
		time.Now().UTC().Add(p.refreshTokenTTL),
	)
	if err := p.refreshTokens.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return valueobject.NewSession(accessToken, refreshToken, int(p.accessTokenTTL.Seconds())), nil
}

func (p *Provider) VerifyToken(ctx context.Context, accessToken string) (*entity.Identity, error) {
	claims, err := p.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, outbound.ErrInvalidToken
	}

	identity, err := p.identities.FindByID(ctx, claims.IdentityID)
	if err != nil {
		if errors.Is(err, outbound.ErrIdentityNotFound) {
			// Token outlived its identity; treat as a credential problem.
			return nil, outbound.ErrInvalidToken
		}
		return nil, err
	}
	return identity, nil
}

// hashToken stores refresh tokens salted and hashed so a leaked table does
// not yield usable credentials.
func (p *Provider) hashToken(token string) string {
	sum := sha256.Sum256([]byte(p.refreshTokenSalt + token))
	return hex.EncodeToString(sum[:])
}
