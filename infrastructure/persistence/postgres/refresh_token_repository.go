package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verdemed/verdemed/application/port/outbound"
	"github.com/verdemed/verdemed/domain/entity"
)

type refreshTokenRepository struct {
	db *sql.DB
}

func NewRefreshTokenRepository(db *sql.DB) outbound.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	query := `
		INSERT INTO auth_refresh_tokens (id, identity_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		token.ID,
		token.IdentityID,
		token.TokenHash,
		token.ExpiresAt,
		token.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}

	return nil
}

func (r *refreshTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	query := `
		SELECT id, identity_id, token_hash, expires_at, created_at, revoked_at
		FROM auth_refresh_tokens
		WHERE token_hash = $1
	`

	var token entity.RefreshToken
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.IdentityID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.CreatedAt,
		&token.RevokedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrRefreshTokenNotFound
		}
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}

	return &token, nil
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	query := `
		UPDATE auth_refresh_tokens
		SET revoked_at = CURRENT_TIMESTAMP
		WHERE token_hash = $1 AND revoked_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return outbound.ErrRefreshTokenNotFound
	}

	return nil
}

func (r *refreshTokenRepository) RevokeByIdentityID(ctx context.Context, identityID string) error {
	query := `
		UPDATE auth_refresh_tokens
		SET revoked_at = CURRENT_TIMESTAMP
		WHERE identity_id = $1 AND revoked_at IS NULL
	`

	_, err := r.db.ExecContext(ctx, query, identityID)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh tokens for identity: %w", err)
	}

	return nil
}
