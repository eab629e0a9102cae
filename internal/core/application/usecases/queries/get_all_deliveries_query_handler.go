package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllDeliveriesQueryHandler retrieves the delivery board from the database.
// Joins the assignment records so the board can show priorities and deadlines
// without loading full aggregates.
type GetAllDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetAllDeliveriesQueryHandler creates a handler for delivery board queries.
// Requires a GORM database connection for query execution.
func NewGetAllDeliveriesQueryHandler(db *gorm.DB) GetAllDeliveriesQueryHandler {
	return GetAllDeliveriesQueryHandler{db: db}
}

// Handle executes the query to retrieve all deliveries.
// Returns delivery read models sorted by ID for consistent output.
func (h GetAllDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetAllDeliveriesQuery,
) ([]GetAllDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.description,
			d.pickup,
			d.dropoff,
			d.status,
			d.driver_id,
			d.fee,
			a.priority,
			a.deadline,
			a.overdue_flagged
		FROM deliveries d
		LEFT JOIN assignments a ON a.delivery_id = d.id
		ORDER BY d.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]GetAllDeliveriesQueryResponse, 0)
	for rows.Next() {
		resp, scanErr := scanDeliveryRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}

// scanDeliveryRow maps one joined delivery row to the read model, folding the
// nullable driver and assignment columns into pointers. Shared with the
// per-driver history query, which selects the same column list.
func scanDeliveryRow(rows *sql.Rows) (GetAllDeliveriesQueryResponse, error) {
	var resp GetAllDeliveriesQueryResponse
	var id uuid.UUID
	var status int
	var driverID uuid.NullUUID
	var fee int64
	var priority sql.NullInt64
	var deadline sql.NullTime
	var overdueFlagged sql.NullBool

	err := rows.Scan(
		&id,
		&resp.Description,
		&resp.Pickup,
		&resp.Dropoff,
		&status,
		&driverID,
		&fee,
		&priority,
		&deadline,
		&overdueFlagged,
	)
	if err != nil {
		return GetAllDeliveriesQueryResponse{}, err
	}

	deliveryID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetAllDeliveriesQueryResponse{}, err
	}
	resp.ID = deliveryID
	resp.Status = delivery.Status(status)

	if driverID.Valid {
		dID, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
		if idErr != nil {
			return GetAllDeliveriesQueryResponse{}, idErr
		}
		resp.DriverID = &dID
	}

	money, err := kernel.NewMoney(fee)
	if err != nil {
		return GetAllDeliveriesQueryResponse{}, err
	}
	resp.Fee = money

	if priority.Valid {
		p := delivery.Priority(priority.Int64)
		resp.Priority = &p
	}
	if deadline.Valid {
		t := deadline.Time
		resp.Deadline = &t
	}
	resp.OverdueFlagged = overdueFlagged.Valid && overdueFlagged.Bool

	return resp, nil
}
