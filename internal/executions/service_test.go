package executions

import (
	"context"
	"testing"
	"time"
)

func seedTestRepo(t *testing.T) *MemoryRepo {
	t.Helper()
	repo := NewMemoryRepo()
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	err := repo.InsertBatch(context.Background(), []Record{
		{ID: "e-1", OrganizationID: "org-1", PlanYear: 2026, Activity: "Branch audit", PlannedMonth: 1, CreatedAt: now},
		{ID: "e-2", OrganizationID: "org-1", PlanYear: 2026, Activity: "IT audit", PlannedMonth: 3, CreatedAt: now},
		{ID: "e-3", OrganizationID: "org-2", PlanYear: 2026, Activity: "Other org audit", PlannedMonth: 2, CreatedAt: now},
	})
	if err != nil {
		t.Fatalf("InsertBatch: %v", err)
	}
	return repo
}

func TestListScopesToOrganization(t *testing.T) {
	svc := NewService(seedTestRepo(t))

	records, err := svc.List(context.Background(), "org-1", 2026)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records for org-1, got %d", len(records))
	}
	if records[0].PlannedMonth > records[1].PlannedMonth {
		t.Fatalf("expected month ordering, got %#v", records)
	}
}

func TestListEmptyYearReturnsEmptySlice(t *testing.T) {
	svc := NewService(seedTestRepo(t))

	records, err := svc.List(context.Background(), "org-1", 2030)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", records)
	}
}

func TestMarkAndUndoExecuted(t *testing.T) {
	svc := NewService(seedTestRepo(t))
	svc.Now = func() time.Time { return time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC) }

	record, err := svc.MarkExecuted(context.Background(), "org-1", "e-1", "member-1")
	if err != nil {
		t.Fatalf("MarkExecuted: %v", err)
	}
	if !record.Executed || record.ExecutedBy == nil || *record.ExecutedBy != "member-1" {
		t.Fatalf("unexpected record %#v", record)
	}
	if record.ExecutedAt == nil || !record.ExecutedAt.Equal(time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected executedAt %v", record.ExecutedAt)
	}

	record, err = svc.UndoExecuted(context.Background(), "org-1", "e-1")
	if err != nil {
		t.Fatalf("UndoExecuted: %v", err)
	}
	if record.Executed || record.ExecutedBy != nil || record.ExecutedAt != nil {
		t.Fatalf("expected cleared state, got %#v", record)
	}
}

func TestMarkExecutedRejectsForeignOrganization(t *testing.T) {
	svc := NewService(seedTestRepo(t))

	if _, err := svc.MarkExecuted(context.Background(), "org-1", "e-3", "member-1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign record, got %v", err)
	}
}
