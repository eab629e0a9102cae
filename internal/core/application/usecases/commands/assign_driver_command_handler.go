package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// MaxActiveJobs is the active-job limit per driver. An assignment that would
// push a driver past it is rejected unless the command allows the overload.
const MaxActiveJobs = 3

var (
	// ErrDriverNotActive is returned when assigning to a driver who is not in Active status.
	ErrDriverNotActive = errors.New("driver is not active and cannot take assignments")
	// ErrDriverAtCapacity is returned when assigning to a driver already at the active-job limit.
	ErrDriverAtCapacity = errors.New("driver is at the active-job limit")
)

// AssignDriverCommandHandler coordinates the assignment of a driver to a
// pending delivery.
//
// Validation order is fixed: delivery exists, delivery is pending, driver
// exists, driver is active, driver has capacity. The first failing check wins
// so the caller always sees the most fundamental problem.
//
// Concurrency is handled with a compare-and-swap on the delivery's status:
// the update only applies while the row still reads Pending, so of two
// racing assignments exactly one commits and the other gets
// delivery.ErrDeliveryNotPending. The driver row is read with a row lock so
// the capacity check counts against a settled active-job total rather than
// racing another assignment to the same driver.
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignDriverCommandHandler creates a handler for driver assignment.
func NewAssignDriverCommandHandler(uowFactory UoWFactory) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment command.
// On success the delivery moves to Assigned, an assignment record with a
// deadline of now plus the command's hour offset is attached, and a
// DELIVERY_ASSIGN audit entry is committed in the same transaction.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, command AssignDriverCommand) error {
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
	if target.Status() != delivery.Pending {
		return delivery.ErrDeliveryNotPending
	}

	assignee, err := uow.DriverRepository().GetForUpdate(ctx, command.DriverID())
	if err != nil {
		return err
	}
	if !assignee.Status().CanAcceptAssignments() {
		return ErrDriverNotActive
	}

	activeJobs, err := uow.DeliveryRepository().CountActiveByDriver(ctx, assignee.ID())
	if err != nil {
		return err
	}

	overloaded := activeJobs >= MaxActiveJobs
	if overloaded && !command.AllowOverload() {
		return fmt.Errorf("%w: %d active job(s)", ErrDriverAtCapacity, activeJobs)
	}

	assignment, err := delivery.NewAssignment(
		command.AssignmentID(),
		command.Priority(),
		time.Now().UTC(),
		command.DeadlineHours(),
	)
	if err != nil {
		return err
	}

	if err = target.Assign(assignee.ID(), assignment); err != nil {
		return err
	}

	details := fmt.Sprintf("Assigned driver %s to delivery %s", assignee.Name(), target.ID())
	if overloaded {
		details += fmt.Sprintf(" with overload override (%d active jobs)", activeJobs)
	}

	entry, err := audit.NewEntry(kernel.NewUUID(), audit.CategoryDeliveryAssign, details)
	if err != nil {
		return err
	}

	if err = uow.DeliveryRepository().UpdateWhereStatus(ctx, target, delivery.Pending); err != nil {
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
