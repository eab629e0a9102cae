package ports

import (
	"context"

	"dispatch/internal/core/domain/model/audit"
)

// AuditRepository defines the persistence contract for audit entries.
// The log is append-only: entries are never updated or deleted, and the
// store assigns each entry's timestamp at insert time.
type AuditRepository interface {
	// Add appends an audit entry. The store assigns the timestamp.
	Add(ctx context.Context, entry *audit.Entry) error

	// GetRecent retrieves the most recent entries, newest first,
	// capped at limit.
	GetRecent(ctx context.Context, limit int) ([]*audit.Entry, error)
}
