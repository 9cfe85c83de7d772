package executions

import "time"

// Record tracks whether one planned activity was actually carried out.
type Record struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	PlanYear       int        `json:"planYear"`
	Activity       string     `json:"activity"`
	PlannedPeriod  string     `json:"plannedPeriod"`
	PlannedMonth   int        `json:"plannedMonth"`
	Executed       bool       `json:"executed"`
	ExecutedBy     *string    `json:"executedBy,omitempty"`
	ExecutedAt     *time.Time `json:"executedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
