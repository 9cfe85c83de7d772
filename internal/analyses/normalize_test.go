package analyses

import (
	"encoding/json"
	"testing"
)

func TestNormalizeNilYieldsDefaults(t *testing.T) {
	result := Normalize(nil, 2026)
	if result.Year != 2026 {
		t.Fatalf("expected default year 2026, got %d", result.Year)
	}
	if result.Summary.GeneralStatus != "UNKNOWN" {
		t.Fatalf("expected UNKNOWN status, got %q", result.Summary.GeneralStatus)
	}
	if result.Summary.RiskLevel != "MEDIUM" {
		t.Fatalf("expected MEDIUM risk, got %q", result.Summary.RiskLevel)
	}
	if result.Summary.Opinion == "" {
		t.Fatalf("expected a default opinion")
	}
	if result.Items == nil || len(result.Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %#v", result.Items)
	}
	if result.Summary.CriticalFindings == nil || result.Summary.RequiredActions == nil {
		t.Fatalf("expected non-nil string slices")
	}
}

func TestNormalizeGarbageTopLevelYieldsDefaults(t *testing.T) {
	result := Normalize(json.RawMessage(`[1, 2, 3]`), 2025)
	if result.Year != 2025 || result.Summary.GeneralStatus != "UNKNOWN" {
		t.Fatalf("expected full defaults, got %#v", result)
	}
}

func TestNormalizeDefaultsEachFieldIndependently(t *testing.T) {
	raw := json.RawMessage(`{
  "year": "not a year",
  "summary": {"generalStatus": "OK", "riskLevel": 42},
  "items": [
    {"activity": "Branch audit", "months": ["March", 7, "April"]},
    {"activity": "   "},
    {"months": ["May"]},
    "not an object"
  ]
}`)
	result := Normalize(raw, 2026)
	if result.Year != 2026 {
		t.Fatalf("expected fallback year for invalid input, got %d", result.Year)
	}
	if result.Summary.GeneralStatus != "OK" {
		t.Fatalf("expected valid field kept, got %q", result.Summary.GeneralStatus)
	}
	if result.Summary.RiskLevel != "MEDIUM" {
		t.Fatalf("expected invalid risk defaulted, got %q", result.Summary.RiskLevel)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected items without an activity dropped, got %d", len(result.Items))
	}
	item := result.Items[0]
	if item.Activity != "Branch audit" {
		t.Fatalf("unexpected activity %q", item.Activity)
	}
	if len(item.Months) != 2 || item.Months[0] != "March" || item.Months[1] != "April" {
		t.Fatalf("expected non-string months dropped, got %#v", item.Months)
	}
	if item.Status != "PLANNED" || item.RiskLevel != "MEDIUM" {
		t.Fatalf("expected item defaults, got %#v", item)
	}
}

func TestNormalizeKeepsValidYear(t *testing.T) {
	result := Normalize(json.RawMessage(`{"year": 2024}`), 2026)
	if result.Year != 2024 {
		t.Fatalf("expected stated year kept, got %d", result.Year)
	}
}

func TestNormalizeRejectsOutOfRangeYear(t *testing.T) {
	result := Normalize(json.RawMessage(`{"year": 99}`), 2026)
	if result.Year != 2026 {
		t.Fatalf("expected out-of-range year replaced, got %d", result.Year)
	}
}
