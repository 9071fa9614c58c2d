package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/verdemed/verdemed/application/port/outbound"
	"github.com/verdemed/verdemed/domain/entity"
)

type patientRepository struct {
	db *sql.DB
}

func NewPatientRepository(db *sql.DB) outbound.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	query := `
		INSERT INTO patients (id, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	address, err := marshalAddress(patient.Address)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		patient.ID,
		address,
		patient.CreatedAt,
		patient.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}

	return nil
}

func (r *patientRepository) FindByID(ctx context.Context, id string) (*entity.Patient, error) {
	query := `
		SELECT id, address, created_at, updated_at
		FROM patients
		WHERE id = $1
	`

	var patient entity.Patient
	var address []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&patient.ID,
		&address,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to find patient by ID: %w", err)
	}

	if len(address) > 0 {
		patient.Address = &entity.Address{}
		if err := json.Unmarshal(address, patient.Address); err != nil {
			return nil, fmt.Errorf("failed to decode patient address: %w", err)
		}
	}

	return &patient, nil
}

func (r *patientRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM patients WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return outbound.ErrPatientNotFound
	}

	return nil
}

// marshalAddress renders the address as jsonb, keeping NULL for absent values
// so the column stays queryable with IS NULL.
func marshalAddress(address *entity.Address) (interface{}, error) {
	if address == nil {
		return nil, nil
	}

	encoded, err := json.Marshal(address)
	if err != nil {
		return nil, fmt.Errorf("failed to encode patient address: %w", err)
	}

	return encoded, nil
}
