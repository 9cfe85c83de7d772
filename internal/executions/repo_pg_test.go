package executions

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoInsertBatchUsesOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{ID: "e-1", OrganizationID: "org-1", PlanYear: 2026, Activity: "Branch audit", PlannedMonth: 1, CreatedAt: now},
		{ID: "e-2", OrganizationID: "org-1", PlanYear: 2026, Activity: "IT audit", PlannedMonth: 3, CreatedAt: now},
	}

	mock.ExpectBegin()
	for _, record := range records {
		mock.ExpectExec("INSERT INTO execution_records").
			WithArgs(record.ID, record.OrganizationID, record.PlanYear, record.Activity,
				record.PlannedPeriod, record.PlannedMonth, record.Executed, record.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	repo := &PGRepo{DB: db}
	if err := repo.InsertBatch(context.Background(), records); err != nil {
		t.Fatalf("InsertBatch: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoInsertBatchEmptyIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	if err := repo.InsertBatch(context.Background(), nil); err != nil {
		t.Fatalf("InsertBatch: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSetExecutedReturnsUpdatedRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "organization_id", "plan_year", "activity", "planned_period",
		"planned_month", "executed", "executed_by", "executed_at", "created_at",
	}).AddRow("e-1", "org-1", 2026, "Branch audit", "Q1", 1, true, "member-1", now, now)

	mock.ExpectQuery("UPDATE execution_records").
		WithArgs("org-1", "e-1", true, "member-1", now).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	record, err := repo.SetExecuted(context.Background(), "org-1", "e-1", true, "member-1", now)
	if err != nil {
		t.Fatalf("SetExecuted: %v", err)
	}
	if !record.Executed || record.ExecutedBy == nil || *record.ExecutedBy != "member-1" {
		t.Fatalf("unexpected record %#v", record)
	}
}

func TestPGRepoSetExecutedMissingReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("UPDATE execution_records").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "organization_id", "plan_year", "activity", "planned_period",
			"planned_month", "executed", "executed_by", "executed_at", "created_at",
		}))

	repo := &PGRepo{DB: db}
	if _, err := repo.SetExecuted(context.Background(), "org-1", "missing", false, "", time.Time{}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
