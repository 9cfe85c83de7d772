package analyses

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/executions"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/metrics"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/telemetry"
)

// Seeder derives execution records from an analyzed plan so every planned
// activity can later be marked as carried out.
type Seeder struct {
	Repo  executions.Repo
	Now   func() time.Time
	NewID func() string
}

// NewSeeder constructs a Seeder.
func NewSeeder(repo executions.Repo) *Seeder {
	return &Seeder{
		Repo:  repo,
		Now:   time.Now,
		NewID: func() string { return uuid.NewString() },
	}
}

// Seed writes one execution record per (item, month) pair. An item without
// any recognizable month is scheduled for January so it still appears in the
// tracking view. Returns the number of records written.
func (s *Seeder) Seed(ctx context.Context, orgID string, year int, items []PlanItem) (int, error) {
	records := s.buildRecords(orgID, year, items)
	if len(records) == 0 {
		telemetry.Warn("executions.seed.empty", map[string]any{
			"org_id": orgID,
			"year":   year,
		})
		return 0, nil
	}
	if err := s.Repo.InsertBatch(ctx, records); err != nil {
		return 0, err
	}
	metrics.AddRecordsSeeded(len(records))
	telemetry.Info("executions.seeded", map[string]any{
		"org_id": orgID,
		"year":   year,
		"count":  len(records),
	})
	return len(records), nil
}

func (s *Seeder) buildRecords(orgID string, year int, items []PlanItem) []executions.Record {
	now := s.Now().UTC()
	var records []executions.Record
	for _, item := range items {
		months := item.Months
		if len(months) == 0 {
			telemetry.Warn("executions.seed.month_defaulted", map[string]any{
				"org_id":   orgID,
				"activity": item.Activity,
			})
			months = []string{"January"}
		}
		for _, month := range months {
			plannedMonth := resolveMonth(month)
			if plannedMonth == 0 {
				telemetry.Warn("executions.seed.month_unresolved", map[string]any{
					"org_id":   orgID,
					"activity": item.Activity,
					"month":    month,
				})
				plannedMonth = 1
			}
			records = append(records, executions.Record{
				ID:             s.NewID(),
				OrganizationID: orgID,
				PlanYear:       year,
				Activity:       item.Activity,
				PlannedPeriod:  item.Period,
				PlannedMonth:   plannedMonth,
				Executed:       false,
				CreatedAt:      now,
			})
		}
	}
	return records
}
