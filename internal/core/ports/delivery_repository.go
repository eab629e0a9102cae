package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	// The delivery must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	// The delivery must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// UpdateWhereStatus persists changes to an existing delivery only when its
	// stored status still equals expected. Of two transactions racing to
	// assign the same pending delivery, exactly one sees the expected status
	// and wins; the loser gets delivery.ErrDeliveryNotPending.
	UpdateWhereStatus(ctx context.Context, aggregate *delivery.Delivery, expected delivery.Status) error

	// Get retrieves a delivery aggregate by its unique identifier,
	// including its assignment record when present.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetAll retrieves every delivery ordered by creation.
	GetAll(ctx context.Context) ([]*delivery.Delivery, error)

	// GetAllByDriver retrieves every delivery bound to the given driver,
	// including completed and cancelled ones.
	GetAllByDriver(ctx context.Context, driverID kernel.UUID) ([]*delivery.Delivery, error)

	// GetAllOverdue retrieves active deliveries whose assignment deadline has
	// passed as of now and whose overdue flag is not yet set.
	GetAllOverdue(ctx context.Context, now time.Time) ([]*delivery.Delivery, error)

	// CountActiveByDriver counts the driver's deliveries in a non-terminal
	// assigned state. The count is always derived from delivery rows, never
	// stored on the driver.
	CountActiveByDriver(ctx context.Context, driverID kernel.UUID) (int, error)
}
