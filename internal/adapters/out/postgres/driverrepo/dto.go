// Package driverrepo provides data transfer objects and mapping functions for
// driver persistence. This package implements the repository pattern for the
// driver domain aggregate, handling the conversion between domain entities
// and database representations.
package driverrepo

import (
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver aggregates.
// The vehicle value object is flattened into the driver row; there is no
// stored active-job counter, that count is always derived from deliveries.
type DriverDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Email           string    `gorm:"type:varchar(255);not null"`
	Phone           string    `gorm:"type:varchar(64)"`
	Status          int       `gorm:"type:int;not null;index"`
	Rating          float64   `gorm:"type:numeric;not null"`
	Earnings        int64     `gorm:"type:bigint;not null"`
	VehicleModel    string    `gorm:"type:varchar(255);not null"`
	VehiclePlate    string    `gorm:"type:varchar(64);not null"`
	VehicleCapacity float64   `gorm:"type:numeric;not null"`
}

// TableName specifies the database table name for driver entities.
// Overrides GORM's default naming convention to use "drivers".
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver domain aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:              aggregate.ID().Bytes(),
		Name:            aggregate.Name(),
		Email:           aggregate.Email(),
		Phone:           aggregate.Phone(),
		Status:          int(aggregate.Status()),
		Rating:          aggregate.Rating(),
		Earnings:        aggregate.Earnings().Cents(),
		VehicleModel:    aggregate.Vehicle().Model(),
		VehiclePlate:    aggregate.Vehicle().Plate(),
		VehicleCapacity: aggregate.Vehicle().Capacity(),
	}
}

// toDomain converts a database DTO to a driver domain aggregate.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	earnings, err := kernel.NewMoney(dto.Earnings)
	if err != nil {
		return nil, err
	}

	vehicle, err := driver.NewVehicle(dto.VehicleModel, dto.VehiclePlate, dto.VehicleCapacity)
	if err != nil {
		return nil, err
	}

	return driver.RestoreDriver(
		id,
		dto.Name, dto.Email, dto.Phone,
		driver.Status(dto.Status),
		dto.Rating,
		earnings,
		vehicle,
	)
}
