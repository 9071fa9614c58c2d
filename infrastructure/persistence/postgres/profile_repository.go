package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verdemed/verdemed/application/port/outbound"
	"github.com/verdemed/verdemed/domain/entity"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) outbound.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, role, full_name, phone, birthdate, cpf, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.Role,
		profile.FullName,
		profile.Phone,
		profile.Birthdate,
		profile.CPF,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

func (r *profileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	query := `
		SELECT id, role, full_name, phone, birthdate, cpf, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var profile entity.Profile
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID,
		&profile.Role,
		&profile.FullName,
		&profile.Phone,
		&profile.Birthdate,
		&profile.CPF,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile by ID: %w", err)
	}

	return &profile, nil
}

func (r *profileRepository) FindRoleByID(ctx context.Context, id string) (entity.Role, error) {
	query := `SELECT role FROM profiles WHERE id = $1`

	var role entity.Role
	err := r.db.QueryRowContext(ctx, query, id).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", outbound.ErrProfileNotFound
		}
		return "", fmt.Errorf("failed to find profile role: %w", err)
	}

	return role, nil
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM profiles WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return outbound.ErrProfileNotFound
	}

	return nil
}
