package commands

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// CompleteDeliveryCommandHandler completes deliveries and credits earnings.
//
// The status change and the earnings credit commit atomically. A repeated
// completion is absorbed as a no-op before anything is written, which keeps
// the credit at most once even when the request is retried. The driver row is
// locked while the credit is computed, so two completions for the same driver
// serialize and neither overwrites the other's earnings.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(uowFactory UoWFactory) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the completion command.
// Marks the delivery Completed, credits its fee to the assigned driver, and
// records an OPERATION audit entry, all in one transaction. Returns nil
// without writing anything when the delivery is already completed.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, command CompleteDeliveryCommand) error {
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

	target, err := uow.DeliveryRepository().Get(ctx, command.DeliveryID())
	if err != nil {
		return err
	}

	if err = completeDelivery(ctx, uow, target); err != nil {
		if errors.Is(err, delivery.ErrDeliveryAlreadyCompleted) {
			return nil
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// completeDelivery applies the completion semantics against an open unit of
// work without committing it. Shared with the status-change handler so that
// a status update to Completed cannot skip the earnings credit.
func completeDelivery(ctx context.Context, uow UoW, target *delivery.Delivery) error {
	if err := target.Complete(); err != nil {
		return err
	}

	assignee, err := uow.DriverRepository().GetForUpdate(ctx, *target.AssignedDriver())
	if err != nil {
		return err
	}
	assignee.CreditEarnings(target.Fee())

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.CategoryOperation,
		fmt.Sprintf("Completed delivery %s: credited %s to driver %s", target.ID(), target.Fee(), assignee.Name()),
	)
	if err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Update(ctx, target); err != nil {
		return err
	}

	if err = uow.DriverRepository().Update(ctx, assignee); err != nil {
		return err
	}

	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	return nil
}
