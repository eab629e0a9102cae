// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAllDriversQueryIsNotConstructed = errors.New(
	"GetAllDriversQuery must be created via NewGetAllDriversQuery constructor",
)

// GetAllDriversQuery retrieves the full driver roster with each driver's
// derived active-job count.
//
// Example:
//
//	query := NewGetAllDriversQuery()
//	handler := NewGetAllDriversQueryHandler(db)
//
//	drivers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve drivers: %w", err)
//	}
//
//	for _, d := range drivers {
//	    fmt.Printf("%s: %d active job(s)\n", d.Name, d.ActiveJobs)
//	}
type GetAllDriversQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllDriversQuery creates a query to retrieve all drivers.
func NewGetAllDriversQuery() GetAllDriversQuery {
	return GetAllDriversQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllDriversQueryIsNotConstructed if validation fails.
func (q GetAllDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetAllDriversQueryIsNotConstructed)
}

// GetAllDriversQueryResponse represents driver information in the read model.
// ActiveJobs is computed from the delivery rows at read time; it is never a
// stored counter.
type GetAllDriversQueryResponse struct {
	ID             kernel.UUID
	Name           string
	Email          string
	Status         driver.Status
	Rating         float64
	Earnings       kernel.Money
	VehicleDetails string
	ActiveJobs     int
}
