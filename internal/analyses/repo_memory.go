package analyses

import (
	"context"
	"fmt"
	"sync"
)

// MemoryRepo stores analysis records in memory and is safe for concurrent
// use. It enforces the same one-per-slot rule as the Postgres repo.
type MemoryRepo struct {
	mu     sync.RWMutex
	bySlot map[string]Record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{bySlot: make(map[string]Record)}
}

func slotKey(orgID string, year int, reviewType string) string {
	return fmt.Sprintf("%s/%d/%s", orgID, year, reviewType)
}

// Insert stores the record unless its slot is already taken.
func (r *MemoryRepo) Insert(ctx context.Context, record Record) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := slotKey(record.OrganizationID, record.PeriodYear, record.ReviewType)
	if _, exists := r.bySlot[key]; exists {
		return false, nil
	}
	r.bySlot[key] = record
	return true, nil
}

// FindByOrgAndYear returns the stored record for a review type.
func (r *MemoryRepo) FindByOrgAndYear(ctx context.Context, orgID string, year int, reviewType string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.bySlot[slotKey(orgID, year, reviewType)]
	if !ok {
		return Record{}, ErrNotFound
	}
	return record, nil
}
