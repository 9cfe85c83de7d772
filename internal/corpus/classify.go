package corpus

import "strings"

// Kind is the closed taxonomy a classified document belongs to.
type Kind string

const (
	KindAuditPlan    Kind = "AUDIT_PLAN"
	KindTrainingPlan Kind = "TRAINING_PLAN"
	KindSupplement   Kind = "SUPPLEMENT"
	KindGeneric      Kind = "GENERIC"
)

// kindOrder fixes the section ordering used by Assemble.
var kindOrder = []Kind{KindAuditPlan, KindTrainingPlan, KindSupplement, KindGeneric}

// kindPhrases maps each kind to the canonical phrases that identify it.
// First match wins, checked in kindOrder.
var kindPhrases = map[Kind][]string{
	KindAuditPlan: {
		"annual audit plan",
		"audit plan",
		"inspection plan",
		"compliance plan",
	},
	KindTrainingPlan: {
		"annual training plan",
		"training plan",
		"training schedule",
		"course calendar",
	},
	KindSupplement: {
		"supplement",
		"annex",
		"appendix",
		"supporting document",
	},
}

// Classify assigns a document kind by case-insensitive substring matching.
// Deterministic, no side effects; unknown content classifies as generic.
func Classify(text string) Kind {
	lowered := strings.ToLower(text)
	for _, kind := range kindOrder {
		for _, phrase := range kindPhrases[kind] {
			if strings.Contains(lowered, phrase) {
				return kind
			}
		}
	}
	return KindGeneric
}

// Label returns the human-readable section label used in the assembled corpus.
func (k Kind) Label() string {
	switch k {
	case KindAuditPlan:
		return "ANNUAL AUDIT PLAN"
	case KindTrainingPlan:
		return "TRAINING PLAN"
	case KindSupplement:
		return "SUPPLEMENTARY DOCUMENTS"
	default:
		return "OTHER DOCUMENTS"
	}
}
