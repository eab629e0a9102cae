package delivery

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
//
// Lifecycle overview:
//
//	Pending ──> Assigned ──> PickedUp ──> InTransit ──> Completed
//	   ^            │
//	   └────────────┘ (reset clears the assignment)      Cancelled
//
// Beyond membership in the enumerated set, no transition matrix is enforced
// at this layer: any status may follow any other. This looseness is
// deliberate and preserved; the one hard guard is that completion crediting
// happens at most once, which Delivery.Complete enforces separately.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status; the delivery awaits assignment.
	Pending

	// Assigned means a driver has been bound to the delivery.
	Assigned

	// PickedUp means the driver has collected the delivery.
	PickedUp

	// InTransit means the delivery is on its way to the dropoff.
	InTransit

	// Completed is the terminal success status.
	Completed

	// Cancelled is the terminal cancellation status.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Assigned:  "Assigned",
		PickedUp:  "PickedUp",
		InTransit: "InTransit",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns only the valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Assigned:  "Assigned",
		PickedUp:  "PickedUp",
		InTransit: "InTransit",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// StatusFromString parses a status name as it arrives from external callers.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid delivery status", s),
	)
}

// Validate checks that the Status is one of the enumerated valid values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid delivery status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status ends the delivery lifecycle.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CountsAsActiveJob reports whether a delivery in this status occupies its
// driver. The driver's derived active-job count is the number of deliveries
// referencing the driver in a non-terminal status past Pending.
func (s Status) CountsAsActiveJob() bool {
	return s == Assigned || s == PickedUp || s == InTransit
}
