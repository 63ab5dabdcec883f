// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Orders and their items live in separate tables; the per-tenant order number
// counter has a table of its own.
package orderrepo

import (
	"time"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID             uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_orders_tenant_number,priority:1"`
	Number               int64           `gorm:"not null;uniqueIndex:idx_orders_tenant_number,priority:2"`
	ClientID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	Responsible          string          `gorm:"type:varchar(100);not null"`
	OrderedAt            time.Time       `gorm:"type:date;not null"`
	ExpectedDeliveryDate *time.Time      `gorm:"type:date"`
	AdvancePaid          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Notes                string          `gorm:"type:text"`
	Status               string          `gorm:"type:varchar(20);not null;index"`
	Total                decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Version              int             `gorm:"not null;default:0"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Items                []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line of an order. Position keeps insertion order.
type OrderItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	QuotedPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Notes       string          `gorm:"type:text"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// OrderSequenceDTO holds the last order number handed out to a tenant.
type OrderSequenceDTO struct {
	TenantID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	LastValue int64     `gorm:"not null"`
}

func (OrderSequenceDTO) TableName() string {
	return "order_sequences"
}

// fromDomain converts an order aggregate to its row. Items are mapped
// separately since they are written one by one.
func fromDomain(o *order.Order) OrderDTO {
	h := o.Header()
	return OrderDTO{
		ID:                   o.ID().Bytes(),
		TenantID:             o.TenantID().Bytes(),
		Number:               o.Number(),
		ClientID:             o.ClientID().Bytes(),
		Responsible:          h.Responsible,
		OrderedAt:            h.OrderedAt,
		ExpectedDeliveryDate: h.ExpectedDeliveryDate,
		AdvancePaid:          h.AdvancePaid.Decimal(),
		Notes:                h.Notes,
		Status:               o.Status().String(),
		Total:                o.Total().Decimal(),
		Version:              o.Version(),
	}
}

func itemFromDomain(item *order.Item, position int) OrderItemDTO {
	return OrderItemDTO{
		ID:          item.ID().Bytes(),
		OrderID:     item.OrderID().Bytes(),
		ProductID:   item.ProductID().Bytes(),
		SupplierID:  item.SupplierID().Bytes(),
		Position:    position,
		Quantity:    item.Quantity(),
		QuotedPrice: item.QuotedPrice().Decimal(),
		LineTotal:   item.LineTotal().Decimal(),
		Notes:       item.Notes(),
	}
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	return order.RestoreItem(kernel.UUIDFromGoogle(dto.ID), kernel.UUIDFromGoogle(dto.OrderID), order.ItemFields{
		ProductID:   kernel.UUIDFromGoogle(dto.ProductID),
		SupplierID:  kernel.UUIDFromGoogle(dto.SupplierID),
		Quantity:    dto.Quantity,
		QuotedPrice: kernel.NewMoney(dto.QuotedPrice),
		Notes:       dto.Notes,
	})
}

// toDomain rebuilds the aggregate from its row and its item rows.
func toDomain(dto OrderDTO, itemDTOs []OrderItemDTO) (*order.Order, error) {
	items := make([]*order.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, err := itemToDomain(itemDTO)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:       kernel.UUIDFromGoogle(dto.ID),
		TenantID: kernel.UUIDFromGoogle(dto.TenantID),
		ClientID: kernel.UUIDFromGoogle(dto.ClientID),
		Number:   dto.Number,
		Header: order.Header{
			Responsible:          dto.Responsible,
			OrderedAt:            dto.OrderedAt,
			ExpectedDeliveryDate: dto.ExpectedDeliveryDate,
			AdvancePaid:          kernel.NewMoney(dto.AdvancePaid),
			Notes:                dto.Notes,
		},
		Status:  status,
		Total:   kernel.NewMoney(dto.Total),
		Items:   items,
		Version: dto.Version,
	})
}
