package analyses

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func sampleRecord() Record {
	return Record{
		ID:             "rec-1",
		OrganizationID: "org-1",
		PeriodYear:     2026,
		ReviewType:     ReviewPlan,
		Result: Result{
			Year: 2026,
			Summary: Summary{
				GeneralStatus:    "OK",
				RiskLevel:        "LOW",
				Opinion:          "fine",
				CriticalFindings: []string{},
				RequiredActions:  []string{},
			},
			Items: []PlanItem{},
		},
		ModelUsed: "fast",
		CreatedBy: "member-1",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPGRepoInsertReportsFirstWrite(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	record := sampleRecord()
	mock.ExpectExec("INSERT INTO analysis_results").
		WithArgs(
			record.ID,
			record.OrganizationID,
			record.PeriodYear,
			record.ReviewType,
			sqlmock.AnyArg(), // result payload
			record.ModelUsed,
			record.CreatedBy,
			record.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	inserted, err := repo.Insert(context.Background(), record)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if !inserted {
		t.Fatalf("expected first insert reported")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoInsertConflictReportsDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("INSERT INTO analysis_results").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGRepo{DB: db}
	inserted, err := repo.Insert(context.Background(), sampleRecord())
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if inserted {
		t.Fatalf("expected conflict reported as not inserted")
	}
}

func TestPGRepoFindByOrgAndYear(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	record := sampleRecord()
	rows := sqlmock.NewRows([]string{
		"id", "organization_id", "period_year", "review_type", "result", "model_used", "created_by", "created_at",
	}).AddRow(
		record.ID, record.OrganizationID, record.PeriodYear, record.ReviewType,
		[]byte(`{"year":2026,"summary":{"generalStatus":"OK","riskLevel":"LOW","opinion":"fine","criticalFindings":[],"requiredActions":[]},"items":[]}`),
		record.ModelUsed, record.CreatedBy, record.CreatedAt,
	)
	mock.ExpectQuery("SELECT (.+) FROM analysis_results").
		WithArgs("org-1", 2026, ReviewPlan).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	got, err := repo.FindByOrgAndYear(context.Background(), "org-1", 2026, ReviewPlan)
	if err != nil {
		t.Fatalf("FindByOrgAndYear: %v", err)
	}
	if got.ID != record.ID || got.Result.Summary.GeneralStatus != "OK" {
		t.Fatalf("unexpected record %#v", got)
	}
}

func TestPGRepoFindMissingReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT (.+) FROM analysis_results").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "organization_id", "period_year", "review_type", "result", "model_used", "created_by", "created_at",
		}))

	repo := &PGRepo{DB: db}
	if _, err := repo.FindByOrgAndYear(context.Background(), "org-1", 2026, ReviewPlan); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
