package analyses

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/executions"
)

func newTestSeeder(repo executions.Repo) *Seeder {
	s := NewSeeder(repo)
	s.Now = func() time.Time { return time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC) }
	counter := 0
	s.NewID = func() string { counter++; return fmt.Sprintf("exec-%d", counter) }
	return s
}

func TestSeedCreatesOneRecordPerItemMonth(t *testing.T) {
	repo := executions.NewMemoryRepo()
	seeder := newTestSeeder(repo)

	count, err := seeder.Seed(context.Background(), "org-1", 2026, []PlanItem{
		{Activity: "Branch audit", Period: "Q1", Months: []string{"January", "February"}},
		{Activity: "IT audit", Months: []string{"March"}},
	})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 records, got %d", count)
	}

	records, err := repo.ListByOrgAndYear(context.Background(), "org-1", 2026)
	if err != nil {
		t.Fatalf("ListByOrgAndYear: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 stored records, got %d", len(records))
	}
	if records[0].PlannedMonth != 1 || records[0].Activity != "Branch audit" {
		t.Fatalf("unexpected first record %#v", records[0])
	}
	if records[0].Executed {
		t.Fatalf("seeded records must start unexecuted")
	}
	if records[0].PlannedPeriod != "Q1" {
		t.Fatalf("expected planned period carried over, got %q", records[0].PlannedPeriod)
	}
}

func TestSeedDefaultsMissingMonthsToJanuary(t *testing.T) {
	repo := executions.NewMemoryRepo()
	seeder := newTestSeeder(repo)

	count, err := seeder.Seed(context.Background(), "org-1", 2026, []PlanItem{
		{Activity: "Continuous monitoring"},
	})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}
	records, _ := repo.ListByOrgAndYear(context.Background(), "org-1", 2026)
	if records[0].PlannedMonth != 1 {
		t.Fatalf("expected January default, got month %d", records[0].PlannedMonth)
	}
}

func TestSeedMapsUnknownMonthNamesToJanuary(t *testing.T) {
	repo := executions.NewMemoryRepo()
	seeder := newTestSeeder(repo)

	_, err := seeder.Seed(context.Background(), "org-1", 2026, []PlanItem{
		{Activity: "Ongoing review", Months: []string{"CONTINUOUS"}},
	})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	records, _ := repo.ListByOrgAndYear(context.Background(), "org-1", 2026)
	if len(records) != 1 || records[0].PlannedMonth != 1 {
		t.Fatalf("expected unresolvable month mapped to 1, got %#v", records)
	}
}

func TestSeedEmptyItemsIsNoOp(t *testing.T) {
	repo := executions.NewMemoryRepo()
	seeder := newTestSeeder(repo)

	count, err := seeder.Seed(context.Background(), "org-1", 2026, nil)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no records, got %d", count)
	}
}

func TestSeedMonthNamesAreCaseInsensitive(t *testing.T) {
	repo := executions.NewMemoryRepo()
	seeder := newTestSeeder(repo)

	_, err := seeder.Seed(context.Background(), "org-1", 2026, []PlanItem{
		{Activity: "Branch audit", Months: []string{"september", " OCTOBER "}},
	})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	records, _ := repo.ListByOrgAndYear(context.Background(), "org-1", 2026)
	if len(records) != 2 || records[0].PlannedMonth != 9 || records[1].PlannedMonth != 10 {
		t.Fatalf("unexpected months %#v", records)
	}
}
