package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetDriverDeliveriesQueryHandler retrieves one driver's deliveries from the
// database. Reuses the delivery board read model.
type GetDriverDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverDeliveriesQueryHandler creates a handler for driver history queries.
// Requires a GORM database connection for query execution.
func NewGetDriverDeliveriesQueryHandler(db *gorm.DB) GetDriverDeliveriesQueryHandler {
	return GetDriverDeliveriesQueryHandler{db: db}
}

// Handle executes the query to retrieve the driver's deliveries.
// Terminal deliveries are included: the binding survives completion and
// cancellation, so the history stays complete.
func (h GetDriverDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetDriverDeliveriesQuery,
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
		WHERE d.driver_id = ?
		ORDER BY d.id
	`, query.DriverID().Bytes()).Rows()
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
