package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/verdemed/verdemed/application/port/outbound"
	"github.com/verdemed/verdemed/domain/entity"
)

const uniqueViolationCode = "23505"

type identityRepository struct {
	db *sql.DB
}

func NewIdentityRepository(db *sql.DB) outbound.IdentityRepository {
	return &identityRepository{db: db}
}

func (r *identityRepository) Create(ctx context.Context, identity *entity.Identity, passwordHash string) error {
	query := `
		INSERT INTO auth_users (id, email, password_hash, email_confirmed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		identity.ID,
		identity.Email,
		passwordHash,
		identity.EmailConfirmed,
		identity.CreatedAt,
		identity.UpdatedAt,
	)

	if err != nil {
		// The unique index on email is the only serialization point for
		// concurrent registrations of the same address.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return outbound.ErrEmailAlreadyRegistered
		}
		return fmt.Errorf("failed to create identity: %w", err)
	}

	return nil
}

func (r *identityRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM auth_users WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete identity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return outbound.ErrIdentityNotFound
	}

	return nil
}

func (r *identityRepository) FindByID(ctx context.Context, id string) (*entity.Identity, error) {
	query := `
		SELECT id, email, email_confirmed, created_at, updated_at
		FROM auth_users
		WHERE id = $1
	`

	var identity entity.Identity
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&identity.ID,
		&identity.Email,
		&identity.EmailConfirmed,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("failed to find identity by ID: %w", err)
	}

	return &identity, nil
}

func (r *identityRepository) FindByEmail(ctx context.Context, email string) (*entity.Identity, string, error) {
	query := `
		SELECT id, email, password_hash, email_confirmed, created_at, updated_at
		FROM auth_users
		WHERE email = $1
	`

	var identity entity.Identity
	var passwordHash string
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&identity.ID,
		&identity.Email,
		&passwordHash,
		&identity.EmailConfirmed,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", outbound.ErrIdentityNotFound
		}
		return nil, "", fmt.Errorf("failed to find identity by email: %w", err)
	}

	return &identity, passwordHash, nil
}
