package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAllDeliveriesQueryIsNotConstructed = errors.New(
	"GetAllDeliveriesQuery must be created via NewGetAllDeliveriesQuery constructor",
)

// GetAllDeliveriesQuery retrieves every delivery together with its assignment
// details when one exists.
type GetAllDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllDeliveriesQuery creates a query to retrieve all deliveries.
func NewGetAllDeliveriesQuery() GetAllDeliveriesQuery {
	return GetAllDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllDeliveriesQueryIsNotConstructed if validation fails.
func (q GetAllDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllDeliveriesQueryIsNotConstructed)
}

// GetAllDeliveriesQueryResponse represents delivery information in the read
// model. Assignment fields are nil for deliveries that were never assigned or
// were reset to Pending.
type GetAllDeliveriesQueryResponse struct {
	ID             kernel.UUID
	Description    string
	Pickup         string
	Dropoff        string
	Status         delivery.Status
	DriverID       *kernel.UUID
	Fee            kernel.Money
	Priority       *delivery.Priority
	Deadline       *time.Time
	OverdueFlagged bool
}
