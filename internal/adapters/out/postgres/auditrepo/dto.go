// Package auditrepo provides persistence for the append-only audit log.
// Entries are inserted, never updated or deleted, and their timestamps come
// from the database clock so ordering does not depend on application hosts.
package auditrepo

import (
	"time"

	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting audit entries.
// RecordedAt is assigned by the database on insert; the zero value on the
// inserted struct makes GORM fall through to the column default.
type EntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Category   int       `gorm:"type:int;not null;index"`
	Details    string    `gorm:"type:text;not null"`
	RecordedAt time.Time `gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP;index"`
}

// TableName specifies the database table name for audit entries.
// Overrides GORM's default naming convention to use "audit_entries".
func (EntryDTO) TableName() string {
	return "audit_entries"
}

// fromDomain converts an audit entry to its database representation.
func fromDomain(entry *audit.Entry) EntryDTO {
	return EntryDTO{
		ID:       entry.ID().Bytes(),
		Category: int(entry.Category()),
		Details:  entry.Details(),
	}
}

// toDomain converts a database DTO to an audit entry.
func toDomain(dto EntryDTO) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return audit.RestoreEntry(id, audit.Category(dto.Category), dto.Details, dto.RecordedAt)
}
