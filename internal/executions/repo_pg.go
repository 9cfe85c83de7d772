package executions

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// InsertBatch stores all records in one transaction so a partial seed never
// survives a failure.
func (r *PGRepo) InsertBatch(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const query = `
INSERT INTO execution_records (id, organization_id, plan_year, activity, planned_period, planned_month, executed, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, record := range records {
		if _, err := tx.ExecContext(ctx, query,
			record.ID,
			record.OrganizationID,
			record.PlanYear,
			record.Activity,
			record.PlannedPeriod,
			record.PlannedMonth,
			record.Executed,
			record.CreatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListByOrgAndYear returns records for a plan year.
func (r *PGRepo) ListByOrgAndYear(ctx context.Context, orgID string, year int) ([]Record, error) {
	const query = `
SELECT id, organization_id, plan_year, activity, planned_period, planned_month, executed, executed_by, executed_at, created_at
FROM execution_records
WHERE organization_id = $1 AND plan_year = $2
ORDER BY planned_month, activity`
	rows, err := r.DB.QueryContext(ctx, query, orgID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// SetExecuted marks or clears the executed state of one record.
func (r *PGRepo) SetExecuted(ctx context.Context, orgID, recordID string, executed bool, executedBy string, executedAt time.Time) (Record, error) {
	const query = `
UPDATE execution_records
SET executed = $3,
    executed_by = CASE WHEN $3 THEN $4 ELSE NULL END,
    executed_at = CASE WHEN $3 THEN $5 ELSE NULL END
WHERE organization_id = $1 AND id = $2
RETURNING id, organization_id, plan_year, activity, planned_period, planned_month, executed, executed_by, executed_at, created_at`
	row := r.DB.QueryRowContext(ctx, query, orgID, recordID, executed, executedBy, executedAt)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return record, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var record Record
	var executedBy sql.NullString
	var executedAt sql.NullTime
	err := row.Scan(
		&record.ID,
		&record.OrganizationID,
		&record.PlanYear,
		&record.Activity,
		&record.PlannedPeriod,
		&record.PlannedMonth,
		&record.Executed,
		&executedBy,
		&executedAt,
		&record.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}
	if executedBy.Valid {
		record.ExecutedBy = &executedBy.String
	}
	if executedAt.Valid {
		record.ExecutedAt = &executedAt.Time
	}
	return record, nil
}
