package analyses

import "context"

// Repo defines persistence operations for analysis results.
type Repo interface {
	// Insert stores a record unless one already exists for the same
	// organization, period year and review type. The bool reports whether
	// this call created the row.
	Insert(ctx context.Context, record Record) (bool, error)
	// FindByOrgAndYear returns the stored record for a review type,
	// or ErrNotFound.
	FindByOrgAndYear(ctx context.Context, orgID string, year int, reviewType string) (Record, error)
}
