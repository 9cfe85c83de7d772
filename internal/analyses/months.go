package analyses

import "strings"

var monthIndex = map[string]int{
	"january":   1,
	"february":  2,
	"march":     3,
	"april":     4,
	"may":       5,
	"june":      6,
	"july":      7,
	"august":    8,
	"september": 9,
	"october":   10,
	"november":  11,
	"december":  12,
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// resolveMonth maps a month label to 1-12, case-insensitively.
// Returns 0 when the label does not name a month.
func resolveMonth(label string) int {
	return monthIndex[strings.ToLower(strings.TrimSpace(label))]
}

// monthsInText lists the month names mentioned anywhere in text, in
// calendar order.
func monthsInText(text string) []string {
	lowered := strings.ToLower(text)
	var found []string
	for _, name := range monthNames {
		if strings.Contains(lowered, strings.ToLower(name)) {
			found = append(found, name)
		}
	}
	return found
}
