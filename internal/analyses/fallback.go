package analyses

import (
	"encoding/json"
	"strings"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/corpus"
)

const maxFallbackItems = 20

// FallbackResult builds a deterministic, rule-based analysis when no model
// output is usable. It satisfies the same output schema as a model result
// and is always flagged as non-AI-derived by the caller (modelUsed=fallback).
//
// Rule: every corpus line that names at least one calendar month becomes a
// plan item scheduled for those months; everything else feeds the summary.
func FallbackResult(docs []corpus.Document, year int) Result {
	out := emptyResult(year)
	out.Summary.GeneralStatus = "REVIEW_REQUIRED"
	out.Summary.Opinion = "Automated model analysis was unavailable; this result was produced by deterministic rules and should be reviewed manually."
	out.Summary.RequiredActions = []string{"Manually verify the uploaded plan documents."}

	for _, doc := range docs {
		for _, line := range strings.Split(doc.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "---") {
				continue
			}
			months := monthsInText(line)
			if len(months) == 0 {
				continue
			}
			out.Items = append(out.Items, PlanItem{
				Activity:  activityFromLine(line),
				Period:    strings.Join(months, ", "),
				Months:    months,
				Status:    defaultItemStatus,
				RiskLevel: defaultRiskLevel,
				Note:      "Derived without model assistance.",
			})
			if len(out.Items) >= maxFallbackItems {
				return out
			}
		}
	}
	return out
}

// FallbackRaw renders the deterministic result as JSON for the invoker's
// fallback hook, so the normalize step treats it like any model output.
func FallbackRaw(docs []corpus.Document, year int) string {
	payload, err := json.Marshal(FallbackResult(docs, year))
	if err != nil {
		return ""
	}
	return string(payload)
}

// activityFromLine strips the month columns off a flattened plan row,
// leaving the activity description.
func activityFromLine(line string) string {
	parts := strings.Split(line, "|")
	var kept []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || resolveMonth(part) != 0 {
			continue
		}
		kept = append(kept, part)
	}
	if len(kept) == 0 {
		return line
	}
	return strings.Join(kept, " ")
}
