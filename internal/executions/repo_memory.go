package executions

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores execution records in memory and is safe for concurrent
// use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Record)}
}

// InsertBatch stores all records.
func (r *MemoryRepo) InsertBatch(ctx context.Context, records []Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range records {
		r.byID[record.ID] = record
	}
	return nil
}

// ListByOrgAndYear returns records for a plan year ordered by planned month,
// then activity.
func (r *MemoryRepo) ListByOrgAndYear(ctx context.Context, orgID string, year int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var records []Record
	for _, record := range r.byID {
		if record.OrganizationID == orgID && record.PlanYear == year {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].PlannedMonth != records[j].PlannedMonth {
			return records[i].PlannedMonth < records[j].PlannedMonth
		}
		return records[i].Activity < records[j].Activity
	})
	return records, nil
}

// SetExecuted marks or clears the executed state of one record.
func (r *MemoryRepo) SetExecuted(ctx context.Context, orgID, recordID string, executed bool, executedBy string, executedAt time.Time) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.byID[recordID]
	if !ok || record.OrganizationID != orgID {
		return Record{}, ErrNotFound
	}
	record.Executed = executed
	if executed {
		record.ExecutedBy = &executedBy
		at := executedAt
		record.ExecutedAt = &at
	} else {
		record.ExecutedBy = nil
		record.ExecutedAt = nil
	}
	r.byID[recordID] = record
	return record, nil
}
