package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verdemed/verdemed/application/port/outbound"
	"github.com/verdemed/verdemed/domain/entity"
)

type doctorRepository struct {
	db *sql.DB
}

func NewDoctorRepository(db *sql.DB) outbound.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) FindByID(ctx context.Context, id string) (*entity.Doctor, error) {
	query := `
		SELECT id, crm_number, crm_state, specialty, bio, created_at, updated_at
		FROM doctors
		WHERE id = $1
	`

	var doctor entity.Doctor
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&doctor.ID,
		&doctor.CRMNumber,
		&doctor.CRMState,
		&doctor.Specialty,
		&doctor.Bio,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to find doctor by ID: %w", err)
	}

	return &doctor, nil
}
