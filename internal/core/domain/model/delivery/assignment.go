package delivery

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Bounds for the requested deadline offset, in hours.
const (
	minDeadlineHours = 1
	maxDeadlineHours = 168
)

// Domain errors for assignment operations.
var (
	// ErrAssignmentIsNotConstructed is returned when using an improperly initialized Assignment.
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")
	// ErrAssignmentAlreadyFlagged is returned when flagging an assignment that is already overdue-flagged.
	ErrAssignmentAlreadyFlagged = errors.New("assignment is already flagged as overdue")
)

// Assignment binds one delivery to one driver with a priority and a deadline.
// It is owned by the Delivery aggregate: created when the delivery is
// assigned and discarded when the delivery is reset to Pending.
//
// The deadline is absolute, computed once at assignment time from the
// requested hour offset. The overdue flag records that the deadline watchdog
// has reported this assignment, so it is reported exactly once.
type Assignment struct {
	// id uniquely identifies the assignment
	id kernel.UUID
	// priority classifies the urgency
	priority Priority
	// deadline is the absolute completion deadline
	deadline time.Time
	// assignedAt records when the assignment was made
	assignedAt time.Time
	// overdueFlagged is set once the deadline watchdog has reported this assignment
	overdueFlagged bool
	// guard ensures the assignment was properly constructed
	guard guard.ConstructorGuard
}

// NewAssignment creates an assignment made at assignedAt whose deadline is
// assignedAt plus deadlineHours. The offset must lie within
// [1, 168] hours (one hour to one week).
func NewAssignment(id kernel.UUID, priority Priority, assignedAt time.Time, deadlineHours int) (*Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := priority.Validate(); err != nil {
		return nil, err
	}
	if deadlineHours < minDeadlineHours || deadlineHours > maxDeadlineHours {
		return nil, errs.NewValueIsOutOfRangeError("deadlineHours", deadlineHours, minDeadlineHours, maxDeadlineHours)
	}
	if assignedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("assignedAt")
	}

	return &Assignment{
		id:         id,
		priority:   priority,
		deadline:   assignedAt.Add(time.Duration(deadlineHours) * time.Hour),
		assignedAt: assignedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreAssignment reconstructs an Assignment from persistent storage.
func RestoreAssignment(
	id kernel.UUID,
	priority Priority,
	deadline, assignedAt time.Time,
	overdueFlagged bool,
) (*Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := priority.Validate(); err != nil {
		return nil, err
	}

	return &Assignment{
		id:             id,
		priority:       priority,
		deadline:       deadline,
		assignedAt:     assignedAt,
		overdueFlagged: overdueFlagged,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Assignment was built through a constructor.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// Priority returns the assignment's urgency classification.
func (a *Assignment) Priority() Priority {
	return a.priority
}

// Deadline returns the absolute completion deadline.
func (a *Assignment) Deadline() time.Time {
	return a.deadline
}

// AssignedAt returns when the assignment was made.
func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// OverdueFlagged reports whether the deadline watchdog has reported this assignment.
func (a *Assignment) OverdueFlagged() bool {
	return a.overdueFlagged
}

// IsOverdue reports whether the deadline has passed at the given instant.
func (a *Assignment) IsOverdue(now time.Time) bool {
	return now.After(a.deadline)
}

// MarkOverdue records that the watchdog has reported this assignment.
// A second call is rejected so each overdue assignment is reported once.
func (a *Assignment) MarkOverdue() error {
	if a.overdueFlagged {
		return ErrAssignmentAlreadyFlagged
	}
	a.overdueFlagged = true
	return nil
}
