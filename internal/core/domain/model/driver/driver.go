package driver

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrEmailIsRequired is returned when attempting to create a driver without an email.
	ErrEmailIsRequired = errs.NewValueIsRequiredError("email")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
	// ErrDriverHasActiveJobs is the business rejection for deactivating a driver
	// who still has open deliveries. It is an expected outcome, not a failure:
	// callers surface it to the operator and an audit entry records the attempt.
	ErrDriverHasActiveJobs = errors.New("driver has active jobs and cannot be deactivated")
)

// Driver represents a delivery driver in the system.
// It is an aggregate root managing the driver's lifecycle status, contact
// details, vehicle reference data, and earnings ledger.
//
// Key responsibilities:
//   - Guarding status transitions (no deactivation while jobs are open)
//   - Accumulating earnings on delivery completion
//   - Holding immutable vehicle reference data
//
// Business rules:
//   - A driver is created in Pending status and is never deleted
//   - Suspended/Inactive require zero open jobs at the time of the change
//   - Idempotent transitions (Active -> Active) are allowed
//   - Earnings only ever grow; the ledger is monotonically non-decreasing
//   - The active-job count is derived from the delivery set, never stored
//     on the driver, so callers pass the freshly derived count into
//     ChangeStatus inside the same transaction that made the decision
type Driver struct {
	// id uniquely identifies the driver
	id kernel.UUID
	// name is the driver's display name
	name string
	// email is the driver's contact email
	email string
	// phone is the driver's contact phone number
	phone string
	// status gates assignment eligibility and deactivation
	status Status
	// rating is read-only reputation data for this core
	rating float64
	// earnings is the accumulated completed-delivery ledger
	earnings kernel.Money
	// vehicle is immutable reference data
	vehicle Vehicle
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

// NewDriver creates a driver at registration time.
// The driver starts in Pending status with a zero earnings ledger; approval
// to Active happens later through a status change.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: display name (must be non-empty)
//   - email: contact email (must be non-empty)
//   - phone: contact phone (may be empty)
//   - vehicle: vehicle reference data (must be constructed via NewVehicle)
//
// Returns the driver, or an aggregated validation error when any parameter
// is invalid.
func NewDriver(id kernel.UUID, name, email, phone string, vehicle Vehicle) (*Driver, error) {
	d := &Driver{
		status: Pending,
		phone:  phone,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setEmail(email),
		d.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a Driver aggregate from persistent storage.
// Unlike NewDriver, it accepts the persisted status, rating, and earnings
// so the restored aggregate matches its state at the time of persistence.
func RestoreDriver(
	id kernel.UUID,
	name, email, phone string,
	status Status,
	rating float64,
	earnings kernel.Money,
	vehicle Vehicle,
) (*Driver, error) {
	d := &Driver{
		phone:    phone,
		rating:   rating,
		earnings: earnings,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setEmail(email),
		d.setStatus(status),
		d.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// IsEqual compares two drivers by identity. Drivers with the same ID are
// the same driver regardless of other attributes.
func (d *Driver) IsEqual(other *Driver) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

// Validate checks that the Driver was built through a constructor.
// The zero value is invalid.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's display name.
func (d *Driver) Name() string {
	return d.name
}

// Email returns the driver's contact email.
func (d *Driver) Email() string {
	return d.email
}

// Phone returns the driver's contact phone number.
func (d *Driver) Phone() string {
	return d.phone
}

// Status returns the driver's current lifecycle status.
func (d *Driver) Status() Status {
	return d.status
}

// Rating returns the driver's rating. Read-only for this core.
func (d *Driver) Rating() float64 {
	return d.rating
}

// Earnings returns the accumulated earnings ledger.
func (d *Driver) Earnings() kernel.Money {
	return d.earnings
}

// Vehicle returns the driver's vehicle reference data.
func (d *Driver) Vehicle() Vehicle {
	return d.vehicle
}

// ChangeStatus applies a status transition.
//
// activeJobs is the driver's open-delivery count derived from the delivery
// set inside the caller's transaction. If the new status is a deactivation
// (Suspended or Inactive) and activeJobs is greater than zero, the change
// is rejected with ErrDriverHasActiveJobs and the driver is left unchanged.
//
// No transition matrix is enforced beyond status validity; setting the
// current status again is an accepted no-op change.
//
// Example:
//
//	jobs, _ := deliveries.CountActiveByDriver(ctx, d.ID())
//	if err := d.ChangeStatus(driver.Suspended, jobs); err != nil {
//	    if errors.Is(err, driver.ErrDriverHasActiveJobs) {
//	        // business rejection, audit and report to the operator
//	    }
//	    return err
//	}
func (d *Driver) ChangeStatus(next Status, activeJobs int) error {
	if err := next.Validate(); err != nil {
		return err
	}

	if next.IsDeactivation() && activeJobs > 0 {
		return ErrDriverHasActiveJobs
	}

	d.status = next
	return nil
}

// CreditEarnings adds a completed delivery's fee to the earnings ledger.
// Money is non-negative, so the ledger never decreases. The caller is
// responsible for invoking this at most once per completed delivery.
func (d *Driver) CreditEarnings(fee kernel.Money) {
	d.earnings = d.earnings.Add(fee)
}

// setID sets the driver's unique identifier with validation.
func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setName sets the driver's name with validation.
func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

// setEmail sets the driver's email with validation.
func (d *Driver) setEmail(email string) error {
	if email == "" {
		return ErrEmailIsRequired
	}
	d.email = email
	return nil
}

// setStatus sets the driver's status with validation.
// Used during restoration from persistent state.
func (d *Driver) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

// setVehicle sets the driver's vehicle, rejecting the zero value.
func (d *Driver) setVehicle(vehicle Vehicle) error {
	if vehicle.model == "" {
		return ErrVehicleModelIsRequired
	}
	d.vehicle = vehicle
	return nil
}
