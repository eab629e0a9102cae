package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// RegisterDriverCommandHandler persists new driver registrations.
// Writes the driver aggregate and an OPERATION audit entry in one transaction.
type RegisterDriverCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewRegisterDriverCommandHandler creates a handler for driver registration.
func NewRegisterDriverCommandHandler(uowFactory DriverUoWFactory) RegisterDriverCommandHandler {
	return RegisterDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the driver registration command.
// Creates the driver in Pending status and records the registration in the
// audit log within the same transaction.
func (h RegisterDriverCommandHandler) Handle(ctx context.Context, command RegisterDriverCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	newDriver, err := driver.NewDriver(
		command.DriverID(),
		command.Name(),
		command.Email(),
		command.Phone(),
		command.Vehicle(),
	)
	if err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.CategoryOperation,
		fmt.Sprintf("Registered driver %s (%s)", newDriver.Name(), newDriver.Vehicle().Details()),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DriverRepository().Add(ctx, newDriver); err != nil {
		return err
	}

	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
