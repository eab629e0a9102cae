package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// DefaultAuditLogLimit caps the audit log page when no limit is requested.
const DefaultAuditLogLimit = 100

var ErrGetAuditLogQueryIsNotConstructed = errors.New(
	"GetAuditLogQuery must be created via NewGetAuditLogQuery constructor",
)

// GetAuditLogQuery retrieves the most recent audit entries, newest first.
// The query is a pure read; recording the access itself is a separate
// command so that reads and writes stay on their own sides of CQRS.
type GetAuditLogQuery struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewGetAuditLogQuery creates a query for the audit log.
// A non-positive limit falls back to DefaultAuditLogLimit; a larger one is
// clamped to it.
func NewGetAuditLogQuery(limit int) (GetAuditLogQuery, error) {
	if limit <= 0 || limit > DefaultAuditLogLimit {
		limit = DefaultAuditLogLimit
	}

	return GetAuditLogQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAuditLogQueryIsNotConstructed if validation fails.
func (q GetAuditLogQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditLogQueryIsNotConstructed)
}

// Limit returns the page size from the query.
func (q GetAuditLogQuery) Limit() int {
	return q.limit
}

// GetAuditLogQueryResponse represents one audit entry in the read model.
type GetAuditLogQueryResponse struct {
	ID         kernel.UUID
	Category   audit.Category
	Details    string
	RecordedAt time.Time
}
