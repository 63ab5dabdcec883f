package deliveryrepo

import (
	"context"
	"errors"

	"encomendas/internal/core/domain/model/delivery"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto := fromDomain(d)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(d.ID(), d)
	return nil
}

// Update overwrites every column but the identifiers.
func (r *GormDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto := fromDomain(d)
	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select("*").
		Omit("id", "tenant_id", "order_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", d.ID().String())
	}

	r.tracker.TrackAggregate(d.ID(), d)
	return nil
}

func (r *GormDeliveryRepository) GetByOrder(ctx context.Context, tenantID, orderID kernel.UUID) (*delivery.Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND tenant_id = ?", orderID.Bytes(), tenantID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormDeliveryRepository) ExistsForOrder(ctx context.Context, tenantID, orderID kernel.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("order_id = ? AND tenant_id = ?", orderID.Bytes(), tenantID.Bytes()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormDeliveryRepository) DeleteByOrder(ctx context.Context, tenantID, orderID kernel.UUID) error {
	result := r.db.WithContext(ctx).
		Where("order_id = ? AND tenant_id = ?", orderID.Bytes(), tenantID.Bytes()).
		Delete(&DeliveryDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", orderID.String())
	}
	return nil
}
