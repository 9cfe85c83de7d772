package analyses

import (
	"time"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/llm"
)

// ReviewType distinguishes the routes that share this pipeline.
const (
	ReviewPlan     = "plan"
	ReviewTraining = "training"
	ReviewPhoto    = "photo"
)

// Summary is the overall assessment section of a normalized analysis.
type Summary struct {
	GeneralStatus    string   `json:"generalStatus"`
	RiskLevel        string   `json:"riskLevel"`
	Opinion          string   `json:"opinion"`
	CriticalFindings []string `json:"criticalFindings"`
	RequiredActions  []string `json:"requiredActions"`
}

// PlanItem is one analyzed line item with its period applicability.
type PlanItem struct {
	Activity  string   `json:"activity"`
	Period    string   `json:"period"`
	Months    []string `json:"months"`
	Status    string   `json:"status"`
	RiskLevel string   `json:"riskLevel"`
	Note      string   `json:"note"`
}

// Result is the stable output schema every analysis resolves to,
// regardless of how well the model behaved.
type Result struct {
	Year    int        `json:"year"`
	Summary Summary    `json:"summary"`
	Items   []PlanItem `json:"items"`
}

// Meta carries per-request provenance returned alongside the result.
type Meta struct {
	AIUsed     bool      `json:"aiUsed"`
	ModelUsed  string    `json:"modelUsed"`
	Attempts   int       `json:"attempts"`
	OCRWarning bool      `json:"ocrWarning"`
	AnalyzedAt time.Time `json:"analyzedAt"`
	Warnings   []string  `json:"warnings,omitempty"`
}

// Record is a durable analysis result, unique per
// (organization, period year, review type).
type Record struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	PeriodYear     int       `json:"periodYear"`
	ReviewType     string    `json:"reviewType"`
	Result         Result    `json:"result"`
	ModelUsed      string    `json:"modelUsed"`
	CreatedBy      string    `json:"createdBy"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Outcome is what a single analyze call hands back to the HTTP layer.
type Outcome struct {
	Result     Result
	Meta       Meta
	Persisted  bool
	Invocation llm.InvocationResult
}
