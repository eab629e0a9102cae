package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/kernel"
)

// FlagOverdueAssignmentsCommandHandler sweeps active deliveries for missed
// deadlines. The repository only returns assignments that are not yet
// flagged, and the flag is set in the same transaction as the SYSTEM audit
// entry, so each missed deadline is reported once.
type FlagOverdueAssignmentsCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewFlagOverdueAssignmentsCommandHandler creates a handler for the overdue sweep.
func NewFlagOverdueAssignmentsCommandHandler(uowFactory DeliveryUoWFactory) FlagOverdueAssignmentsCommandHandler {
	return FlagOverdueAssignmentsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the overdue sweep command.
func (h FlagOverdueAssignmentsCommandHandler) Handle(ctx context.Context, command FlagOverdueAssignmentsCommand) error {
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

	overdue, err := uow.DeliveryRepository().GetAllOverdue(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(overdue) == 0 {
		return nil
	}

	for _, target := range overdue {
		if err = target.Assignment().MarkOverdue(); err != nil {
			return err
		}

		entry, err := audit.NewEntry(
			kernel.NewUUID(),
			audit.CategorySystem,
			fmt.Sprintf(
				"Delivery %s missed its deadline of %s",
				target.ID(), target.Assignment().Deadline().Format(time.RFC3339),
			),
		)
		if err != nil {
			return err
		}

		if err = uow.DeliveryRepository().Update(ctx, target); err != nil {
			return err
		}

		if err = uow.AuditRepository().Add(ctx, entry); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
