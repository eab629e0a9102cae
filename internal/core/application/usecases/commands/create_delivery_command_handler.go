package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// CreateDeliveryCommandHandler persists new deliveries.
// Writes the delivery aggregate and an OPERATION audit entry in one transaction.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
func NewCreateDeliveryCommandHandler(uowFactory DeliveryUoWFactory) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery creation command.
// Creates the delivery in Pending status and records the creation in the
// audit log within the same transaction.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, command CreateDeliveryCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	newDelivery, err := delivery.NewDelivery(
		command.DeliveryID(),
		command.Description(),
		command.Pickup(),
		command.Dropoff(),
		command.Fee(),
		command.CustomerContact(),
	)
	if err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.CategoryOperation,
		fmt.Sprintf("Created delivery %s: %s", newDelivery.ID(), newDelivery.Route()),
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

	if err = uow.DeliveryRepository().Add(ctx, newDelivery); err != nil {
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
