// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. This package implements the repository pattern
// for the delivery domain aggregate, including its owned assignment record
// and the compare-and-swap update used for contended assignment.
package deliveryrepo

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. The assignment record lives in its own table, linked by
// delivery ID; a delivery has at most one.
type DeliveryDTO struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Description     string         `gorm:"type:varchar(255);not null"`
	Pickup          string         `gorm:"type:varchar(255);not null"`
	Dropoff         string         `gorm:"type:varchar(255);not null"`
	Status          int            `gorm:"type:int;not null;index"`
	DriverID        *uuid.UUID     `gorm:"type:uuid;index"`
	Fee             int64          `gorm:"type:bigint;not null"`
	CustomerContact string         `gorm:"type:varchar(255)"`
	Assignment      *AssignmentDTO `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for delivery entities.
// Overrides GORM's default naming convention to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// AssignmentDTO represents the database structure for persisting assignment
// records. Rows are removed when their delivery is reset to Pending.
type AssignmentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Priority       int       `gorm:"type:int;not null"`
	AssignedAt     time.Time `gorm:"type:timestamptz;not null"`
	Deadline       time.Time `gorm:"type:timestamptz;not null;index"`
	OverdueFlagged bool      `gorm:"type:boolean;not null"`
}

// TableName specifies the database table name for assignment entities.
// Overrides GORM's default naming convention to use "assignments".
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// fromDomain converts a delivery domain aggregate to its database representation.
// Maps the optional driver binding and assignment record.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var driverID *uuid.UUID
	if id := aggregate.AssignedDriver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	dto := DeliveryDTO{
		ID:              aggregate.ID().Bytes(),
		Description:     aggregate.Description(),
		Pickup:          aggregate.Pickup(),
		Dropoff:         aggregate.Dropoff(),
		Status:          int(aggregate.Status()),
		DriverID:        driverID,
		Fee:             aggregate.Fee().Cents(),
		CustomerContact: aggregate.CustomerContact(),
	}

	if a := aggregate.Assignment(); a != nil {
		dto.Assignment = &AssignmentDTO{
			ID:             a.ID().Bytes(),
			DeliveryID:     dto.ID,
			Priority:       int(a.Priority()),
			AssignedAt:     a.AssignedAt(),
			Deadline:       a.Deadline(),
			OverdueFlagged: a.OverdueFlagged(),
		}
	}

	return dto
}

// toDomain converts a database DTO to a delivery domain aggregate.
// Reconstructs the complete aggregate including its assignment using RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}

		driverID = &dID
	}

	fee, err := kernel.NewMoney(dto.Fee)
	if err != nil {
		return nil, err
	}

	var assignment *delivery.Assignment
	if dto.Assignment != nil {
		assignmentID, assignmentErr := kernel.UUIDFromBytes(dto.Assignment.ID[:])
		if assignmentErr != nil {
			return nil, assignmentErr
		}

		assignment, assignmentErr = delivery.RestoreAssignment(
			assignmentID,
			delivery.Priority(dto.Assignment.Priority),
			dto.Assignment.Deadline,
			dto.Assignment.AssignedAt,
			dto.Assignment.OverdueFlagged,
		)
		if assignmentErr != nil {
			return nil, assignmentErr
		}
	}

	return delivery.RestoreDelivery(
		id,
		dto.Description, dto.Pickup, dto.Dropoff,
		delivery.Status(dto.Status),
		driverID,
		fee,
		dto.CustomerContact,
		assignment,
	)
}
