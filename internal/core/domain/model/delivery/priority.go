package delivery

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Priority classifies the urgency of an assignment.
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota

	// PriorityStandard is the default urgency.
	PriorityStandard

	// PriorityHigh marks time-sensitive assignments.
	PriorityHigh

	// PriorityUrgent marks assignments that preempt everything else.
	PriorityUrgent
)

// getPriorityStrings returns a map of Priority values to their string representations.
func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown:  "Unknown",
		PriorityStandard: "Standard",
		PriorityHigh:     "High",
		PriorityUrgent:   "Urgent",
	}
}

// getValidPriorityStrings returns only the valid Priority values.
func getValidPriorityStrings() map[Priority]string {
	//nolint:exhaustive // PriorityUnknown is intentionally excluded as it's invalid
	return map[Priority]string{
		PriorityStandard: "Standard",
		PriorityHigh:     "High",
		PriorityUrgent:   "Urgent",
	}
}

// PriorityFromString parses a priority name as it arrives from external callers.
func PriorityFromString(s string) (Priority, error) {
	for priority, name := range getValidPriorityStrings() {
		if name == s {
			return priority, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause(
		"priority",
		fmt.Errorf("%q is not a valid priority", s),
	)
}

// Validate checks that the Priority is one of the enumerated valid values.
func (p Priority) Validate() error {
	if _, ok := getValidPriorityStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"priority",
			fmt.Errorf("%d is not a valid priority", p),
		)
	}
	return nil
}

// String returns the human-readable name of the priority.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "Unknown"
}
