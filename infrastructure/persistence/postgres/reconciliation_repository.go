package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/verdemed/verdemed/application/port/outbound"
)

type reconciliationRepository struct {
	db *sql.DB
}

func NewReconciliationRepository(db *sql.DB) outbound.ReconciliationRepository {
	return &reconciliationRepository{db: db}
}

// ProfileIDsMissingRoleRecord finds PATIENT profiles whose role record was
// never written, which can happen when a registration crashes between the
// profile insert and the patient insert.
func (r *reconciliationRepository) ProfileIDsMissingRoleRecord(ctx context.Context, limit int) ([]string, error) {
	query := `
		SELECT p.id
		FROM profiles p
		LEFT JOIN patients pt ON pt.id = p.id
		WHERE p.role = 'PATIENT' AND pt.id IS NULL
		ORDER BY p.created_at
		LIMIT $1
	`

	return r.queryIDs(ctx, query, limit)
}

// ProfileIDsMissingIdentity finds profiles whose auth identity is gone, left
// behind when compensation deleted the identity but the profile delete failed.
func (r *reconciliationRepository) ProfileIDsMissingIdentity(ctx context.Context, limit int) ([]string, error) {
	query := `
		SELECT p.id
		FROM profiles p
		LEFT JOIN auth_users u ON u.id = p.id
		WHERE u.id IS NULL
		ORDER BY p.created_at
		LIMIT $1
	`

	return r.queryIDs(ctx, query, limit)
}

func (r *reconciliationRepository) queryIDs(ctx context.Context, query string, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query orphaned profiles: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan profile ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orphaned profiles: %w", err)
	}

	return ids, nil
}
