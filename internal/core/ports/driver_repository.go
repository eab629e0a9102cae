// Package ports defines repository interfaces for the dispatch domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	// The driver must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate.
	// The driver must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetForUpdate retrieves a driver aggregate and locks its row for the
	// remainder of the transaction. Used by handlers that decide or write
	// based on the driver's current state, so two concurrent mutations of
	// the same driver serialize instead of overwriting each other.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAll retrieves every driver ordered by name.
	GetAll(ctx context.Context) ([]*driver.Driver, error)
}
