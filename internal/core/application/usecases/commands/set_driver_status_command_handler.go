package commands

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// SetDriverStatusCommandHandler applies driver lifecycle transitions.
//
// The active-job count that guards deactivation is always derived from the
// delivery rows inside the same transaction, never read from a stored
// counter. A rejected deactivation still commits: the ERROR audit entry must
// survive even though the driver is left untouched.
type SetDriverStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewSetDriverStatusCommandHandler creates a handler for driver status changes.
func NewSetDriverStatusCommandHandler(uowFactory UoWFactory) SetDriverStatusCommandHandler {
	return SetDriverStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change command.
// On acceptance the driver is updated and a DRIVER_STATUS entry recorded; a
// transition to the current status is idempotent but still audited. On a
// blocked deactivation the handler commits an ERROR entry and returns
// driver.ErrDriverHasActiveJobs.
func (h SetDriverStatusCommandHandler) Handle(ctx context.Context, command SetDriverStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.DriverRepository().GetForUpdate(ctx, command.DriverID())
	if err != nil {
		return err
	}

	activeJobs, err := uow.DeliveryRepository().CountActiveByDriver(ctx, target.ID())
	if err != nil {
		return err
	}

	previous := target.Status()

	changeErr := target.ChangeStatus(command.Status(), activeJobs)
	if errors.Is(changeErr, driver.ErrDriverHasActiveJobs) {
		return h.commitRejection(ctx, uow, target, command.Status(), activeJobs)
	}
	if changeErr != nil {
		return changeErr
	}

	details := fmt.Sprintf(
		"Driver %s status changed from %s to %s",
		target.Name(), previous, target.Status(),
	)
	if command.Reason() != "" {
		details += ": " + command.Reason()
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.CategoryDriverStatus,
		details,
	)
	if err != nil {
		return err
	}

	if err = uow.DriverRepository().Update(ctx, target); err != nil {
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

// commitRejection records and commits an ERROR audit entry for a blocked
// deactivation, then surfaces the rejection to the caller.
func (h SetDriverStatusCommandHandler) commitRejection(
	ctx context.Context,
	uow UoW,
	target *driver.Driver,
	requested driver.Status,
	activeJobs int,
) error {
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.CategoryError,
		fmt.Sprintf(
			"Rejected %s for driver %s: %d active job(s)",
			requested, target.Name(), activeJobs,
		),
	)
	if err != nil {
		return err
	}

	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return driver.ErrDriverHasActiveJobs
}
