package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDriverDeliveriesQueryIsNotConstructed = errors.New(
	"GetDriverDeliveriesQuery must be created via NewGetDriverDeliveriesQuery constructor",
)

// GetDriverDeliveriesQuery retrieves one driver's delivery history, including
// completed and cancelled deliveries that still carry the driver binding.
type GetDriverDeliveriesQuery struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDriverDeliveriesQuery creates a query for a driver's deliveries.
func NewGetDriverDeliveriesQuery(driverID kernel.UUID) (GetDriverDeliveriesQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverDeliveriesQuery{}, err
	}

	return GetDriverDeliveriesQuery{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDriverDeliveriesQueryIsNotConstructed if validation fails.
func (q GetDriverDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverDeliveriesQueryIsNotConstructed)
}

// DriverID returns the target driver's ID from the query.
func (q GetDriverDeliveriesQuery) DriverID() kernel.UUID {
	return q.driverID
}
