package executions

import (
	"context"
	"time"
)

// Repo defines persistence operations for execution records.
type Repo interface {
	// InsertBatch stores all records in one transaction.
	InsertBatch(ctx context.Context, records []Record) error
	// ListByOrgAndYear returns records for a plan year ordered by
	// planned month, then activity.
	ListByOrgAndYear(ctx context.Context, orgID string, year int) ([]Record, error)
	// SetExecuted marks or clears the executed state of one record scoped
	// to the organization.
	SetExecuted(ctx context.Context, orgID, recordID string, executed bool, executedBy string, executedAt time.Time) (Record, error)
}
