package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrSetDriverStatusCommandIsNotConstructed = errors.New(
	"SetDriverStatusCommand must be created via NewSetDriverStatusCommand constructor",
)

// SetDriverStatusCommand represents a request to move a driver to a new
// lifecycle status. Deactivating transitions are rejected while the driver
// still has active jobs.
type SetDriverStatusCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	status   driver.Status
	reason   string

	guard guard.ConstructorGuard
}

// NewSetDriverStatusCommand creates a command to change a driver's status.
// The reason is free text carried into the audit entry; it may be empty.
func NewSetDriverStatusCommand(
	driverID kernel.UUID,
	status driver.Status,
	reason string,
) (SetDriverStatusCommand, error) {
	command := SetDriverStatusCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDriverID(driverID),
		command.setStatus(status),
	); err != nil {
		return SetDriverStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetDriverStatusCommandIsNotConstructed if validation fails.
func (c SetDriverStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverStatusCommandIsNotConstructed)
}

// DriverID returns the target driver's ID from the command.
func (c SetDriverStatusCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Status returns the requested status from the command.
func (c SetDriverStatusCommand) Status() driver.Status {
	return c.status
}

// Reason returns the free-text justification from the command.
func (c SetDriverStatusCommand) Reason() string {
	return c.reason
}

func (c *SetDriverStatusCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.driverID = id
	return nil
}

func (c *SetDriverStatusCommand) setStatus(status driver.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
