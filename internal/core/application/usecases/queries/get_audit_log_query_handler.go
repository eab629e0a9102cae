package queries

import (
	"context"

	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAuditLogQueryHandler retrieves recent audit entries from the database.
type GetAuditLogQueryHandler struct {
	db *gorm.DB
}

// NewGetAuditLogQueryHandler creates a handler for audit log queries.
// Requires a GORM database connection for query execution.
func NewGetAuditLogQueryHandler(db *gorm.DB) GetAuditLogQueryHandler {
	return GetAuditLogQueryHandler{db: db}
}

// Handle executes the query to retrieve the audit log page.
// Returns entries newest first, capped at the query's limit.
func (h GetAuditLogQueryHandler) Handle(
	ctx context.Context,
	query GetAuditLogQuery,
) ([]GetAuditLogQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetAuditLogQueryResponse, 0, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			category,
			details,
			recorded_at
		FROM audit_entries
		ORDER BY recorded_at DESC, id DESC
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAuditLogQueryResponse
		var id uuid.UUID
		var category int

		err = rows.Scan(
			&id,
			&category,
			&resp.Details,
			&resp.RecordedAt,
		)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = entryID
		resp.Category = audit.Category(category)

		entries = append(entries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
