package queries

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllDriversQueryHandler retrieves the driver roster from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
// The active-job count is a correlated subquery over the delivery rows.
type GetAllDriversQueryHandler struct {
	db *gorm.DB
}

// NewGetAllDriversQueryHandler creates a handler for driver roster queries.
// Requires a GORM database connection for query execution.
func NewGetAllDriversQueryHandler(db *gorm.DB) GetAllDriversQueryHandler {
	return GetAllDriversQueryHandler{db: db}
}

// Handle executes the query to retrieve all drivers.
// Returns a slice of driver read models sorted by name.
func (h GetAllDriversQueryHandler) Handle(
	ctx context.Context,
	query GetAllDriversQuery,
) ([]GetAllDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drivers := make([]GetAllDriversQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.name,
			d.email,
			d.status,
			d.rating,
			d.earnings,
			d.vehicle_model,
			d.vehicle_plate,
			(
				SELECT COUNT(*)
				FROM deliveries dl
				WHERE dl.driver_id = d.id AND dl.status IN (?, ?, ?)
			) AS active_jobs
		FROM drivers d
		ORDER BY d.name
	`, delivery.Assigned, delivery.PickedUp, delivery.InTransit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAllDriversQueryResponse
		var id uuid.UUID
		var status int
		var earnings int64
		var vehicleModel, vehiclePlate string

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.Email,
			&status,
			&resp.Rating,
			&earnings,
			&vehicleModel,
			&vehiclePlate,
			&resp.ActiveJobs,
		)
		if err != nil {
			return nil, err
		}

		driverID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = driverID
		resp.Status = driver.Status(status)

		money, moneyErr := kernel.NewMoney(earnings)
		if moneyErr != nil {
			return nil, moneyErr
		}
		resp.Earnings = money
		resp.VehicleDetails = vehicleModel + " (" + vehiclePlate + ")"

		drivers = append(drivers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
