// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DriverRepoFactory provides access to the driver repository within a transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// AuditRepoFactory provides access to the audit repository within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// AuditUoW manages transactions for audit-only operations.
	AuditUoW interface {
		TxManager
		AuditRepoFactory
	}

	// AuditUoWFactory creates new audit unit of work instances.
	AuditUoWFactory interface {
		Create() AuditUoW
	}

	// DriverUoW manages transactions for driver operations.
	// Every accepted or rejected driver mutation also writes an audit entry,
	// so the audit repository travels with the driver repository.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
		AuditRepoFactory
	}

	// DriverUoWFactory creates new driver unit of work instances.
	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// DeliveryUoW manages transactions for delivery-only operations.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
		AuditRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// UoW manages transactions across driver and delivery aggregates plus the
	// audit log. Used for commands that coordinate changes between aggregates,
	// such as assignment and completion.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   driverRepo := uow.DriverRepository()
	//   deliveryRepo := uow.DeliveryRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		DriverRepoFactory
		DeliveryRepoFactory
		AuditRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
