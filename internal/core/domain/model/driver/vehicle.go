package driver

import (
	"dispatch/internal/pkg/errs"
)

// Validation errors for vehicle construction.
var (
	// ErrVehicleModelIsRequired is returned when creating a vehicle without a model.
	ErrVehicleModelIsRequired = errs.NewValueIsRequiredError("vehicle model")
	// ErrVehiclePlateIsRequired is returned when creating a vehicle without a plate number.
	ErrVehiclePlateIsRequired = errs.NewValueIsRequiredError("vehicle plate")
	// ErrVehicleCapacityIsRequired is returned when creating a vehicle with capacity <= 0.
	ErrVehicleCapacityIsRequired = errs.NewValueIsRequiredError("vehicle capacity")
)

// Vehicle is the immutable reference data describing a driver's vehicle.
// It is owned by the Driver aggregate and never changes through this core;
// capacity is informational and plays no part in assignment decisions.
type Vehicle struct {
	model    string
	plate    string
	capacity float64
}

// NewVehicle creates a Vehicle value object.
// Model and plate must be non-empty and capacity positive.
func NewVehicle(model, plate string, capacity float64) (Vehicle, error) {
	if model == "" {
		return Vehicle{}, ErrVehicleModelIsRequired
	}
	if plate == "" {
		return Vehicle{}, ErrVehiclePlateIsRequired
	}
	if capacity <= 0 {
		return Vehicle{}, ErrVehicleCapacityIsRequired
	}

	return Vehicle{model: model, plate: plate, capacity: capacity}, nil
}

// Validate checks that the Vehicle was built through the constructor.
// A zero Vehicle has no model and is rejected.
func (v Vehicle) Validate() error {
	if v.model == "" {
		return ErrVehicleModelIsRequired
	}
	return nil
}

// Model returns the vehicle model name.
func (v Vehicle) Model() string {
	return v.model
}

// Plate returns the registration plate number.
func (v Vehicle) Plate() string {
	return v.plate
}

// Capacity returns the load capacity.
func (v Vehicle) Capacity() float64 {
	return v.capacity
}

// Details returns a display string combining model and plate.
func (v Vehicle) Details() string {
	return v.model + " (" + v.plate + ")"
}
