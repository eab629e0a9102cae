// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. The Unit of Work maintains a list of aggregates affected by a
// business transaction and coordinates writing out changes atomically.
//
// Key Features:
//   - Transaction management across the driver, delivery, and audit repositories
//   - Aggregate tracking for domain event processing
//   - Proper isolation between concurrent operations
//   - Repository factory pattern for consistent database connections
//
// Basic Transaction Management:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.DeliveryRepository().Update(ctx, delivery); err != nil {
//	    return err
//	}
//	if err := uow.DriverRepository().Update(ctx, driver); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Contended assignment relies on the delivery repository's
//     compare-and-swap update rather than database-level locking
package postgres

import (
	"context"

	"dispatch/internal/adapters/out/postgres/auditrepo"
	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// This is useful for implementing patterns like event sourcing or outbox pattern.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{} // Will be changed to a common Aggregate interface in the future
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// The provided database connection will be used for all created unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for business transaction
// management. Each instance maintains its own transaction state and aggregate
// tracking, ensuring proper isolation between concurrent operations.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate
// changes for business operations. Implements the Unit of Work pattern using
// GORM's transaction capabilities.
//
// The unit of work tracks all aggregates modified during the transaction,
// enabling patterns like domain event publishing after successful commits.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Subsequent repository operations will execute within this transaction context.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// After commit, the transaction is closed and cannot be reused.
//
// Returns error if no active transaction exists or if the commit operation fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// After rollback, the transaction is closed and cannot be reused.
//
// Returns error if no active transaction exists or if the rollback operation fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// DriverRepository provides access to driver persistence operations within
// the unit of work. Repository operations execute within the current
// transaction if one is active, otherwise on the main database connection.
func (uow *GormUnitOfWork) DriverRepository() ports.DriverRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return driverrepo.NewGormDriverRepository(db, uow)
}

// DeliveryRepository provides access to delivery persistence operations
// within the unit of work. Repository operations execute within the current
// transaction if one is active, otherwise on the main database connection.
func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return deliveryrepo.NewGormDeliveryRepository(db, uow)
}

// AuditRepository provides access to the append-only audit log within the
// unit of work. Entries added here become visible together with the business
// change they describe.
func (uow *GormUnitOfWork) AuditRepository() ports.AuditRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return auditrepo.NewGormAuditRepository(db)
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. This method is typically called by repository implementations when
// aggregates are added or updated.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
