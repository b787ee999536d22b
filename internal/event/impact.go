package event

import "strings"

// Impact is the source's editorial classification of an event's expected
// market significance.
type Impact string

const (
	ImpactLow     Impact = "LOW"
	ImpactMedium  Impact = "MEDIUM"
	ImpactHigh    Impact = "HIGH"
	ImpactUnknown Impact = "UNKNOWN"
)

// ClassifyImpact maps free impact text to an Impact value using
// case-insensitive substring matching. Text that matches nothing (including
// empty text) classifies as UNKNOWN rather than being guessed at.
func ClassifyImpact(text string) Impact {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "high"):
		return ImpactHigh
	case strings.Contains(t, "medium"), strings.Contains(t, "med"):
		return ImpactMedium
	case strings.Contains(t, "low"):
		return ImpactLow
	default:
		return ImpactUnknown
	}
}

// Valid reports whether i is one of the four defined impact values.
func (i Impact) Valid() bool {
	switch i {
	case ImpactLow, ImpactMedium, ImpactHigh, ImpactUnknown:
		return true
	}
	return false
}
