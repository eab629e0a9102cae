package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// Deadline offset bounds, in hours.
const (
	MinDeadlineHours = 1
	MaxDeadlineHours = 168
)

// AssignDriverCommand represents a request to assign a driver to a pending
// delivery. The assignment record's ID is generated by the command so callers
// can reference it after the handler succeeds.
//
// Example:
//
//	cmd, err := NewAssignDriverCommand(deliveryID, driverID, delivery.PriorityHigh, 24, false)
//	if err != nil {
//	    return fmt.Errorf("invalid assignment request: %w", err)
//	}
//
//	handler := NewAssignDriverCommandHandler(uowFactory)
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, delivery.ErrDeliveryNotPending):
//	    log.Println("Delivery already taken")
//	case errors.Is(err, ErrDriverNotActive):
//	    log.Println("Driver cannot take assignments")
//	case errors.Is(err, ErrDriverAtCapacity):
//	    log.Println("Driver is at the active-job limit")
//	case err != nil:
//	    log.Printf("Assignment failed: %v", err)
//	default:
//	    log.Printf("Created assignment %s", cmd.AssignmentID())
//	}
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	assignmentID  kernel.UUID
	deliveryID    kernel.UUID
	driverID      kernel.UUID
	priority      delivery.Priority
	deadlineHours int
	allowOverload bool

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a command to assign a driver to a delivery.
// Automatically generates a unique ID for the assignment record. The deadline
// offset must lie within [MinDeadlineHours, MaxDeadlineHours]. When
// allowOverload is set, the active-job limit check is bypassed and the
// assignment proceeds despite the overload.
func NewAssignDriverCommand(
	deliveryID, driverID kernel.UUID,
	priority delivery.Priority,
	deadlineHours int,
	allowOverload bool,
) (AssignDriverCommand, error) {
	command := AssignDriverCommand{
		allowOverload: allowOverload,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAssignmentID(kernel.NewUUID()),
		command.setDeliveryID(deliveryID),
		command.setDriverID(driverID),
		command.setPriority(priority),
		command.setDeadlineHours(deadlineHours),
	); err != nil {
		return AssignDriverCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignDriverCommandIsNotConstructed if validation fails.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// AssignmentID returns the generated assignment record ID from the command.
func (c AssignDriverCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// DeliveryID returns the target delivery's ID from the command.
func (c AssignDriverCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// DriverID returns the target driver's ID from the command.
func (c AssignDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Priority returns the assignment priority from the command.
func (c AssignDriverCommand) Priority() delivery.Priority {
	return c.priority
}

// DeadlineHours returns the deadline offset in hours from the command.
func (c AssignDriverCommand) DeadlineHours() int {
	return c.deadlineHours
}

// AllowOverload reports whether the active-job limit check is bypassed.
func (c AssignDriverCommand) AllowOverload() bool {
	return c.allowOverload
}

func (c *AssignDriverCommand) setAssignmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.assignmentID = id
	return nil
}

func (c *AssignDriverCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}

func (c *AssignDriverCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.driverID = id
	return nil
}

func (c *AssignDriverCommand) setPriority(priority delivery.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}

	c.priority = priority
	return nil
}

func (c *AssignDriverCommand) setDeadlineHours(hours int) error {
	if hours < MinDeadlineHours || hours > MaxDeadlineHours {
		return errs.NewValueIsOutOfRangeError("deadlineHours", hours, MinDeadlineHours, MaxDeadlineHours)
	}

	c.deadlineHours = hours
	return nil
}
