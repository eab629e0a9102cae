package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// activeStatuses returns the statuses that count as an active job.
func activeStatuses() []int {
	return []int{
		int(delivery.Assigned),
		int(delivery.PickedUp),
		int(delivery.InTransit),
	}
}

// Add saves a new delivery to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery to the database.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	return r.update(ctx, aggregate, nil)
}

// UpdateWhereStatus saves an existing delivery only while its stored status
// still equals expected. A lost race surfaces as
// delivery.ErrDeliveryNotPending when Pending was expected, since the only
// way the guard fails is that a concurrent transaction moved the delivery on.
func (r *GormDeliveryRepository) UpdateWhereStatus(
	ctx context.Context,
	aggregate *delivery.Delivery,
	expected delivery.Status,
) error {
	return r.update(ctx, aggregate, &expected)
}

// update writes the delivery row, optionally guarded by an expected status,
// and reconciles the assignment row with the aggregate's assignment.
func (r *GormDeliveryRepository) update(
	ctx context.Context,
	aggregate *delivery.Delivery,
	expected *delivery.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	query := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ?", dto.ID)
	if expected != nil {
		query = query.Where("status = ?", int(*expected))
	}

	// The explicit column list forces NULL writes so a cleared driver
	// binding sticks; a struct update would skip the nil pointer.
	result := query.
		Select("description", "pickup", "dropoff", "status", "driver_id", "fee", "customer_contact").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		if expected != nil && *expected == delivery.Pending {
			return delivery.ErrDeliveryNotPending
		}
		return gorm.ErrRecordNotFound
	}

	if err := r.saveAssignment(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// saveAssignment upserts or removes the assignment row to match the aggregate.
func (r *GormDeliveryRepository) saveAssignment(ctx context.Context, dto DeliveryDTO) error {
	if dto.Assignment == nil {
		return r.db.WithContext(ctx).
			Delete(&AssignmentDTO{}, "delivery_id = ?", dto.ID).
			Error
	}

	return r.db.WithContext(ctx).Save(dto.Assignment).Error
}

// Get retrieves a delivery by ID, including its assignment when present.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		Preload("Assignment").
		First(&dto, "deliveries.id = ?", id.Bytes()).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every delivery ordered by ID.
func (r *GormDeliveryRepository) GetAll(ctx context.Context) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Preload("Assignment").
		Order("id").
		Find(&dtos).
		Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllByDriver retrieves every delivery bound to the given driver,
// including completed and cancelled ones.
func (r *GormDeliveryRepository) GetAllByDriver(
	ctx context.Context,
	driverID kernel.UUID,
) ([]*delivery.Delivery, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Preload("Assignment").
		Order("id").
		Find(&dtos, "driver_id = ?", driverID.Bytes()).
		Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllOverdue retrieves active deliveries whose deadline has passed and
// whose assignment is not yet flagged.
func (r *GormDeliveryRepository) GetAllOverdue(ctx context.Context, now time.Time) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Preload("Assignment").
		Joins("JOIN assignments ON assignments.delivery_id = deliveries.id").
		Where("assignments.deadline < ?", now).
		Where("assignments.overdue_flagged = ?", false).
		Where("deliveries.status IN ?", activeStatuses()).
		Order("deliveries.id").
		Find(&dtos).
		Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// CountActiveByDriver counts the driver's deliveries in an active status.
// This derived count is the single source of truth for capacity checks.
func (r *GormDeliveryRepository) CountActiveByDriver(ctx context.Context, driverID kernel.UUID) (int, error) {
	if err := driverID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("driver_id = ?", driverID.Bytes()).
		Where("status IN ?", activeStatuses()).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// toDomainSlice converts a slice of DTOs to domain aggregates.
func toDomainSlice(dtos []DeliveryDTO) ([]*delivery.Delivery, error) {
	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}
