package corpus

import "testing"

func TestClassifyMatchesKnownPhrases(t *testing.T) {
	cases := []struct {
		text string
		want Kind
	}{
		{"2026 Annual Audit Plan for the inspection department", KindAuditPlan},
		{"INSPECTION PLAN covering all branches", KindAuditPlan},
		{"Annual Training Plan for auditors", KindTrainingPlan},
		{"course calendar, first semester", KindTrainingPlan},
		{"Annex B: methodology notes", KindSupplement},
		{"quarterly financial report", KindGeneric},
		{"", KindGeneric},
	}
	for _, tc := range cases {
		if got := Classify(tc.text); got != tc.want {
			t.Fatalf("Classify(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestClassifyFirstMatchWinsAcrossKinds(t *testing.T) {
	// Contains both audit and training phrases; audit plan is checked first.
	text := "This training plan accompanies the annual audit plan."
	if got := Classify(text); got != KindAuditPlan {
		t.Fatalf("expected audit plan to win, got %v", got)
	}
}
