package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Insert writes the record if the (organization, year, type) slot is free.
// Replays hit the unique constraint and report inserted=false without error.
func (r *PGRepo) Insert(ctx context.Context, record Record) (bool, error) {
	const query = `
INSERT INTO analysis_results (id, organization_id, period_year, review_type, result, model_used, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (organization_id, period_year, review_type) DO NOTHING`
	payload, err := json.Marshal(record.Result)
	if err != nil {
		return false, fmt.Errorf("marshal result: %w", err)
	}
	res, err := r.DB.ExecContext(ctx, query,
		record.ID,
		record.OrganizationID,
		record.PeriodYear,
		record.ReviewType,
		payload,
		record.ModelUsed,
		record.CreatedBy,
		record.CreatedAt,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// FindByOrgAndYear returns the stored record for a review type.
func (r *PGRepo) FindByOrgAndYear(ctx context.Context, orgID string, year int, reviewType string) (Record, error) {
	const query = `
SELECT id, organization_id, period_year, review_type, result, model_used, created_by, created_at
FROM analysis_results
WHERE organization_id = $1 AND period_year = $2 AND review_type = $3
LIMIT 1`
	var record Record
	var payload []byte
	err := r.DB.QueryRowContext(ctx, query, orgID, year, reviewType).Scan(
		&record.ID,
		&record.OrganizationID,
		&record.PeriodYear,
		&record.ReviewType,
		&payload,
		&record.ModelUsed,
		&record.CreatedBy,
		&record.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal(payload, &record.Result); err != nil {
		return Record{}, fmt.Errorf("unmarshal stored result: %w", err)
	}
	return record, nil
}
