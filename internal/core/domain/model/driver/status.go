package driver

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a driver.
// It gates whether the driver may receive assignments and whether the
// driver may be taken out of service.
//
// State overview:
//
//	Pending ──> Active <──> Suspended
//	               │            │
//	               └──> Inactive ┘
//
// Transitions among Active, Suspended, and Inactive carry no transition
// matrix: any enumerated status may follow any other, including the
// idempotent case (Active -> Active is accepted and still audited).
// Deactivation (Suspended or Inactive) is guarded separately by the
// driver's open-job count, see Driver.ChangeStatus.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status after registration, awaiting approval.
	// Pending drivers cannot receive assignments.
	Pending

	// Active drivers are eligible for delivery assignments.
	Active

	// Suspended drivers are temporarily out of service.
	Suspended

	// Inactive drivers have been taken out of service.
	Inactive
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Active:    "Active",
		Suspended: "Suspended",
		Inactive:  "Inactive",
	}
}

// getValidStatusStrings returns only the valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Active:    "Active",
		Suspended: "Suspended",
		Inactive:  "Inactive",
	}
}

// StatusFromString parses a status name as it arrives from external callers.
// The comparison is exact; unknown names return an error rather than
// falling back to ad-hoc string matching at call sites.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid driver status", s),
	)
}

// Validate checks that the Status is one of the enumerated valid values.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid driver status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer; safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsDeactivation reports whether the status takes a driver out of service.
// Deactivating statuses are rejected while the driver has open jobs.
func (s Status) IsDeactivation() bool {
	return s == Suspended || s == Inactive
}

// CanAcceptAssignments reports whether a driver in this status is eligible
// for new delivery assignments. Only Active qualifies.
func (s Status) CanAcceptAssignments() bool {
	return s == Active
}
