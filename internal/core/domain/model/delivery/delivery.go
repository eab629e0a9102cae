package delivery

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for delivery operations.
var (
	// ErrDescriptionIsRequired is returned when creating a delivery without a description.
	ErrDescriptionIsRequired = errs.NewValueIsRequiredError("description")
	// ErrPickupIsRequired is returned when creating a delivery without a pickup location.
	ErrPickupIsRequired = errs.NewValueIsRequiredError("pickup")
	// ErrDropoffIsRequired is returned when creating a delivery without a dropoff location.
	ErrDropoffIsRequired = errs.NewValueIsRequiredError("dropoff")
	// ErrDeliveryIsNotConstructed is returned when using an improperly initialized Delivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
	// ErrDeliveryNotPending is returned when assigning a delivery that has left Pending status.
	ErrDeliveryNotPending = errors.New("delivery is not pending and cannot be assigned")
	// ErrDeliveryAlreadyCompleted is returned when completing a delivery a second time.
	// Callers treat it as a no-op so the fee is credited at most once.
	ErrDeliveryAlreadyCompleted = errors.New("delivery is already completed")
	// ErrDeliveryHasNoDriver is returned when completing a delivery that was never assigned.
	ErrDeliveryHasNoDriver = errors.New("delivery has no assigned driver")
	// ErrCompletionRequiresComplete is returned when SetStatus is asked to move
	// a delivery into Completed; that transition carries the earnings credit
	// and only Complete performs it.
	ErrCompletionRequiresComplete = errors.New("completion must go through Complete")
)

// Delivery represents a unit of work moving from pickup to dropoff.
// It is an aggregate root managing the delivery lifecycle, the binding to a
// driver, and the owned Assignment record.
//
// Key invariants:
//   - The fee is fixed at creation and never changes
//   - The driver binding and the Assignment are set together in Assign and
//     cleared together only by a reset to Pending
//   - Completion is guarded so the fee is credited at most once
//
// Status transitions between intermediate states are deliberately loose
// (see Status); Assign and Complete carry the only hard guards.
type Delivery struct {
	// id uniquely identifies the delivery
	id kernel.UUID
	// description says what is being moved
	description string
	// pickup is the collection location
	pickup string
	// dropoff is the destination location
	dropoff string
	// status is the current lifecycle state
	status Status
	// driverID is the assigned driver (nil until assignment)
	driverID *kernel.UUID
	// fee is the monetary fee, fixed at creation
	fee kernel.Money
	// customerContact is the customer's contact info
	customerContact string
	// assignment is the owned assignment record (nil until assignment)
	assignment *Assignment
	// guard ensures the delivery was properly constructed
	guard guard.ConstructorGuard
}

// NewDelivery creates a delivery in Pending status with its fee fixed.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - description: what is being moved (must be non-empty)
//   - pickup, dropoff: locations (must be non-empty)
//   - fee: the delivery fee, credited to the driver on completion
//   - customerContact: customer contact info (may be empty)
func NewDelivery(
	id kernel.UUID,
	description, pickup, dropoff string,
	fee kernel.Money,
	customerContact string,
) (*Delivery, error) {
	d := &Delivery{
		status:          Pending,
		fee:             fee,
		customerContact: customerContact,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setDescription(description),
		d.setPickup(pickup),
		d.setDropoff(dropoff),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a Delivery aggregate from persistent storage,
// including its driver binding and assignment when present.
func RestoreDelivery(
	id kernel.UUID,
	description, pickup, dropoff string,
	status Status,
	driverID *kernel.UUID,
	fee kernel.Money,
	customerContact string,
	assignment *Assignment,
) (*Delivery, error) {
	d := &Delivery{
		fee:             fee,
		customerContact: customerContact,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setDescription(description),
		d.setPickup(pickup),
		d.setDropoff(dropoff),
		d.setStatus(status),
	); err != nil {
		return nil, err
	}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
		id := *driverID
		d.driverID = &id
	}

	if assignment != nil {
		if err := assignment.Validate(); err != nil {
			return nil, err
		}
		d.assignment = assignment
	}

	return d, nil
}

// IsEqual compares two deliveries by identity.
func (d *Delivery) IsEqual(other *Delivery) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

// Validate checks that the Delivery was built through a constructor.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// Description returns what is being moved.
func (d *Delivery) Description() string {
	return d.description
}

// Pickup returns the collection location.
func (d *Delivery) Pickup() string {
	return d.pickup
}

// Dropoff returns the destination location.
func (d *Delivery) Dropoff() string {
	return d.dropoff
}

// Route returns a display string combining pickup and dropoff.
func (d *Delivery) Route() string {
	return d.pickup + " -> " + d.dropoff
}

// Status returns the current lifecycle state.
func (d *Delivery) Status() Status {
	return d.status
}

// AssignedDriver returns the bound driver's ID, or nil when unassigned.
func (d *Delivery) AssignedDriver() *kernel.UUID {
	return d.driverID
}

// Fee returns the delivery fee fixed at creation.
func (d *Delivery) Fee() kernel.Money {
	return d.fee
}

// CustomerContact returns the customer's contact info.
func (d *Delivery) CustomerContact() string {
	return d.customerContact
}

// Assignment returns the owned assignment record, or nil when unassigned.
func (d *Delivery) Assignment() *Assignment {
	return d.assignment
}

// Assign binds the delivery to a driver together with its assignment record.
//
// Only a Pending delivery may be assigned; anything else returns
// ErrDeliveryNotPending. This is the aggregate half of the concurrent-assign
// guard: the persistence layer additionally compare-and-swaps on the Pending
// status so that of two racing assigns exactly one commits.
func (d *Delivery) Assign(driverID kernel.UUID, assignment *Assignment) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if err := assignment.Validate(); err != nil {
		return err
	}
	if d.status != Pending {
		return ErrDeliveryNotPending
	}

	d.status = Assigned
	d.driverID = &driverID
	d.assignment = assignment
	return nil
}

// SetStatus applies a lifecycle transition without a transition matrix:
// any valid status may follow any other. Two cases carry extra behavior:
//   - a reset to Pending clears the driver binding and the assignment
//     (the only way either is ever cleared)
//   - a transition into Completed is rejected with
//     ErrCompletionRequiresComplete; it must go through Complete instead,
//     so the earnings credit cannot be skipped
func (d *Delivery) SetStatus(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	if next == Completed {
		return ErrCompletionRequiresComplete
	}

	if next == Pending {
		d.driverID = nil
		d.assignment = nil
	}

	d.status = next
	return nil
}

// Complete marks the delivery as completed and hands back nothing; the
// caller credits Fee() to the assigned driver in the same transaction.
//
// Guards:
//   - a delivery without a driver cannot complete (ErrDeliveryHasNoDriver)
//   - a second completion returns ErrDeliveryAlreadyCompleted, which
//     callers treat as a no-op so the fee is credited at most once
func (d *Delivery) Complete() error {
	if d.status == Completed {
		return ErrDeliveryAlreadyCompleted
	}
	if d.driverID == nil {
		return ErrDeliveryHasNoDriver
	}

	d.status = Completed
	return nil
}

// setID sets the delivery's unique identifier with validation.
func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setDescription sets the description with validation.
func (d *Delivery) setDescription(description string) error {
	if description == "" {
		return ErrDescriptionIsRequired
	}
	d.description = description
	return nil
}

// setPickup sets the pickup location with validation.
func (d *Delivery) setPickup(pickup string) error {
	if pickup == "" {
		return ErrPickupIsRequired
	}
	d.pickup = pickup
	return nil
}

// setDropoff sets the dropoff location with validation.
func (d *Delivery) setDropoff(dropoff string) error {
	if dropoff == "" {
		return ErrDropoffIsRequired
	}
	d.dropoff = dropoff
	return nil
}

// setStatus sets the status with validation.
// Used during restoration from persistent state.
func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}
