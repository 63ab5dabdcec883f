package orderrepo

import (
	"context"
	"errors"
	"time"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/core/ports"
	"encomendas/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// nextNumberSQL reserves the next order number of a tenant in one statement.
// The first order of a tenant creates its counter row.
const nextNumberSQL = `INSERT INTO order_sequences (tenant_id, last_value) VALUES (?, 1)
ON CONFLICT (tenant_id) DO UPDATE SET last_value = order_sequences.last_value + 1
RETURNING last_value`

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	for i, item := range aggregate.Items() {
		dto.Items = append(dto.Items, itemFromDomain(item, i+1))
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order row guarded by its version and bumps the version.
// Items are written through AddItem, UpdateItem and RemoveItem.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND tenant_id = ? AND version = ?", dto.ID, dto.TenantID, dto.Version).
		Updates(map[string]any{
			"client_id":              dto.ClientID,
			"responsible":            dto.Responsible,
			"ordered_at":             dto.OrderedAt,
			"expected_delivery_date": dto.ExpectedDeliveryDate,
			"advance_paid":           dto.AdvancePaid,
			"notes":                  dto.Notes,
			"status":                 dto.Status,
			"total":                  dto.Total,
			"version":                dto.Version + 1,
			"updated_at":             time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	aggregate.IncrementVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order of tenantID with its items.
func (r *GormOrderRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx), tenantID, id)
}

// GetForUpdate locks the order row until the transaction ends. sqlite has no
// row locks and serializes writers instead.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), tenantID, id)
}

func (r *GormOrderRepository) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("order_id IN (?)",
		db.Model(&OrderDTO{}).Select("id").Where("id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()),
	).Delete(&OrderItemDTO{}).Error; err != nil {
		return err
	}

	result := db.Where("id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

// NextNumber increments the tenant counter and returns the new value.
func (r *GormOrderRepository) NextNumber(ctx context.Context, tenantID kernel.UUID) (int64, error) {
	if err := tenantID.Validate(); err != nil {
		return 0, err
	}

	var next int64
	if err := r.db.WithContext(ctx).Raw(nextNumberSQL, tenantID.Bytes()).Scan(&next).Error; err != nil {
		return 0, err
	}
	return next, nil
}

// AddItem appends an item after the last position of its order.
func (r *GormOrderRepository) AddItem(ctx context.Context, item *order.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	var last int
	if err := r.db.WithContext(ctx).Model(&OrderItemDTO{}).
		Where("order_id = ?", item.OrderID().Bytes()).
		Select("COALESCE(MAX(position), 0)").
		Scan(&last).Error; err != nil {
		return err
	}

	dto := itemFromDomain(item, last+1)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormOrderRepository) UpdateItem(ctx context.Context, item *order.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := itemFromDomain(item, 0)
	result := r.db.WithContext(ctx).
		Model(&OrderItemDTO{}).
		Where("id = ? AND order_id = ?", dto.ID, dto.OrderID).
		Updates(map[string]any{
			"product_id":   dto.ProductID,
			"supplier_id":  dto.SupplierID,
			"quantity":     dto.Quantity,
			"quoted_price": dto.QuotedPrice,
			"line_total":   dto.LineTotal,
			"notes":        dto.Notes,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("item", item.ID().String())
	}
	return nil
}

func (r *GormOrderRepository) RemoveItem(ctx context.Context, orderID, itemID kernel.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND order_id = ?", itemID.Bytes(), orderID.Bytes()).
		Delete(&OrderItemDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("item", itemID.String())
	}
	return nil
}

// ListItems reads the persisted items of an order in insertion order.
func (r *GormOrderRepository) ListItems(ctx context.Context, orderID kernel.UUID) ([]*order.Item, error) {
	dtos, err := r.listItemDTOs(r.db.WithContext(ctx), orderID)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := itemToDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// FindIDsReferencing lists the tenant's orders that point at a catalog entry.
func (r *GormOrderRepository) FindIDsReferencing(
	ctx context.Context, tenantID kernel.UUID, kind ports.ReferenceKind, id kernel.UUID,
) ([]kernel.UUID, error) {
	db := r.db.WithContext(ctx)

	var raw []uuid.UUID
	var err error
	switch kind {
	case ports.ClientReference:
		err = db.Model(&OrderDTO{}).
			Where("tenant_id = ? AND client_id = ?", tenantID.Bytes(), id.Bytes()).
			Order("number").
			Pluck("id", &raw).Error
	case ports.ProductReference, ports.SupplierReference:
		err = db.Model(&OrderItemDTO{}).
			Distinct().
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("orders.tenant_id = ? AND order_items."+itemColumn(kind)+" = ?", tenantID.Bytes(), id.Bytes()).
			Pluck("order_items.order_id", &raw).Error
	default:
		return nil, errs.NewValueIsInvalidError("kind")
	}
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, v := range raw {
		ids = append(ids, kernel.UUIDFromGoogle(v))
	}
	return ids, nil
}

// RemoveItemsReferencing deletes the tenant's items pointing at a product or supplier.
func (r *GormOrderRepository) RemoveItemsReferencing(
	ctx context.Context, tenantID kernel.UUID, kind ports.ReferenceKind, id kernel.UUID,
) error {
	if kind != ports.ProductReference && kind != ports.SupplierReference {
		return errs.NewValueIsInvalidError("kind")
	}

	db := r.db.WithContext(ctx)
	return db.
		Where(itemColumn(kind)+" = ? AND order_id IN (?)", id.Bytes(),
			db.Model(&OrderDTO{}).Select("id").Where("tenant_id = ?", tenantID.Bytes())).
		Delete(&OrderItemDTO{}).Error
}

func (r *GormOrderRepository) get(ctx context.Context, db *gorm.DB, tenantID, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	items, err := r.listItemDTOs(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	return toDomain(dto, items)
}

func (r *GormOrderRepository) listItemDTOs(db *gorm.DB, orderID kernel.UUID) ([]OrderItemDTO, error) {
	var dtos []OrderItemDTO
	if err := db.Where("order_id = ?", orderID.Bytes()).Order("position").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return dtos, nil
}

// missingOrStale tells a stale version apart from an order that is gone.
func (r *GormOrderRepository) missingOrStale(ctx context.Context, aggregate *order.Order) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND tenant_id = ?", aggregate.ID().Bytes(), aggregate.TenantID().Bytes()).
		Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewConcurrencyConflictError("order", aggregate.ID().String(), aggregate.Version())
}

func itemColumn(kind ports.ReferenceKind) string {
	if kind == ports.SupplierReference {
		return "supplier_id"
	}
	return "product_id"
}
