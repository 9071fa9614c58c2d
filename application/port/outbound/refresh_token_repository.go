package outbound

import (
	"context"
	"errors"

	"github.com/verdemed/verdemed/domain/entity"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *entity.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeByIdentityID(ctx context.Context, identityID string) error
}
