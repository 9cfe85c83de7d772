package analyses

import (
	"encoding/json"
	"strings"
)

// Documented defaults substituted for absent or malformed fields.
const (
	defaultGeneralStatus = "UNKNOWN"
	defaultRiskLevel     = "MEDIUM"
	defaultItemStatus    = "PLANNED"
	defaultOpinion       = "No overall opinion was produced for this period."
)

// Normalize coerces any parsed model value into a schema-valid Result. It is
// total: every field is defaulted independently, nil or garbage input yields
// the full-fallback object, and it never panics.
func Normalize(raw json.RawMessage, defaultYear int) Result {
	out := emptyResult(defaultYear)
	if len(raw) == 0 {
		return out
	}

	var top map[string]any
	if err := json.Unmarshal(raw, &top); err != nil {
		return out
	}

	if year, ok := asYear(top["year"]); ok {
		out.Year = year
	}
	out.Summary = normalizeSummary(top["summary"])
	out.Items = normalizeItems(top["items"])
	return out
}

func emptyResult(year int) Result {
	return Result{
		Year: year,
		Summary: Summary{
			GeneralStatus:    defaultGeneralStatus,
			RiskLevel:        defaultRiskLevel,
			Opinion:          defaultOpinion,
			CriticalFindings: []string{},
			RequiredActions:  []string{},
		},
		Items: []PlanItem{},
	}
}

func normalizeSummary(value any) Summary {
	summary := Summary{
		GeneralStatus:    defaultGeneralStatus,
		RiskLevel:        defaultRiskLevel,
		Opinion:          defaultOpinion,
		CriticalFindings: []string{},
		RequiredActions:  []string{},
	}
	raw, ok := value.(map[string]any)
	if !ok {
		return summary
	}
	summary.GeneralStatus = asString(raw["generalStatus"], defaultGeneralStatus)
	summary.RiskLevel = asString(raw["riskLevel"], defaultRiskLevel)
	summary.Opinion = asString(raw["opinion"], defaultOpinion)
	summary.CriticalFindings = asStringSlice(raw["criticalFindings"])
	summary.RequiredActions = asStringSlice(raw["requiredActions"])
	return summary
}

func normalizeItems(value any) []PlanItem {
	rawItems, ok := value.([]any)
	if !ok {
		return []PlanItem{}
	}
	items := make([]PlanItem, 0, len(rawItems))
	for _, rawItem := range rawItems {
		entry, ok := rawItem.(map[string]any)
		if !ok {
			continue
		}
		activity := strings.TrimSpace(asString(entry["activity"], ""))
		if activity == "" {
			continue
		}
		items = append(items, PlanItem{
			Activity:  activity,
			Period:    asString(entry["period"], ""),
			Months:    asStringSlice(entry["months"]),
			Status:    asString(entry["status"], defaultItemStatus),
			RiskLevel: asString(entry["riskLevel"], defaultRiskLevel),
			Note:      asString(entry["note"], ""),
		})
	}
	return items
}

func asString(value any, def string) string {
	str, ok := value.(string)
	if !ok || strings.TrimSpace(str) == "" {
		return def
	}
	return str
}

// asStringSlice keeps string elements and drops everything else;
// non-arrays empty out.
func asStringSlice(value any) []string {
	raw, ok := value.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if str, ok := item.(string); ok && strings.TrimSpace(str) != "" {
			out = append(out, str)
		}
	}
	return out
}

func asYear(value any) (int, bool) {
	switch raw := value.(type) {
	case float64:
		year := int(raw)
		if year >= 2000 && year <= 2100 {
			return year, true
		}
	case string:
		var year int
		if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &year); err == nil && year >= 2000 && year <= 2100 {
			return year, true
		}
	}
	return 0, false
}
