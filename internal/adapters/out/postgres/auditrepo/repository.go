package auditrepo

import (
	"context"

	"dispatch/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

// GormAuditRepository implements AuditRepository using GORM.
// The log is append-only, so there is no update path and no tracker.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Add appends an audit entry. The database assigns the timestamp.
func (r *GormAuditRepository) Add(ctx context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetRecent retrieves the most recent entries, newest first.
func (r *GormAuditRepository) GetRecent(ctx context.Context, limit int) ([]*audit.Entry, error) {
	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Order("recorded_at DESC, id DESC").
		Limit(limit).
		Find(&dtos).
		Error
	if err != nil {
		return nil, err
	}

	entries := make([]*audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, entryErr := toDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
