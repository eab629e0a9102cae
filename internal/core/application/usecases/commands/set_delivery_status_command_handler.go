package commands

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// SetDeliveryStatusCommandHandler applies delivery lifecycle transitions.
//
// A transition to Completed is delegated to the completion semantics, so the
// earnings credit and the status change stay in one transaction. A reset to
// Pending releases the driver binding and the assignment record.
type SetDeliveryStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewSetDeliveryStatusCommandHandler creates a handler for delivery status changes.
func NewSetDeliveryStatusCommandHandler(uowFactory UoWFactory) SetDeliveryStatusCommandHandler {
	return SetDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change command.
// Records an OPERATION audit entry, including the operator's note when
// present, in the same transaction as the update.
func (h SetDeliveryStatusCommandHandler) Handle(ctx context.Context, command SetDeliveryStatusCommand) error {
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

	if command.Status() == delivery.Completed {
		if err = completeDelivery(ctx, uow, target); err != nil {
			if errors.Is(err, delivery.ErrDeliveryAlreadyCompleted) {
				return nil
			}
			return err
		}
		return uow.Commit(ctx)
	}

	if err = target.SetStatus(command.Status()); err != nil {
		return err
	}

	details := fmt.Sprintf("Delivery %s is now %s", target.ID(), target.Status())
	if command.Note() != "" {
		details += ": " + command.Note()
	}

	entry, err := audit.NewEntry(kernel.NewUUID(), audit.CategoryOperation, details)
	if err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Update(ctx, target); err != nil {
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
