package queries

import (
	"context"
	"errors"
	"time"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderDetailQueryHandler reads order details straight from the tables.
type GetOrderDetailQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderDetailQueryHandler(db *gorm.DB) GetOrderDetailQueryHandler {
	return GetOrderDetailQueryHandler{db: db}
}

// Summary is a named field: gorm does not map unexported embedded structs.
type orderDetailRow struct {
	Summary   orderSummaryRow `gorm:"embedded"`
	Notes     string
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type orderItemRow struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	ProductCode  string
	ProductName  string
	SupplierID   uuid.UUID
	SupplierCode string
	SupplierName string
	Quantity     int
	QuotedPrice  decimal.Decimal
	LineTotal    decimal.Decimal
	Notes        string
}

type deliveryRow struct {
	ID            uuid.UUID
	Responsible   string
	ScheduledDate *time.Time
	DeliveredDate *time.Time
	DeliveredTime string
	DeliveredBy   string
	Signature     string
	Notes         string
	RealizedAt    *time.Time
}

// Handle returns errs.ErrObjectNotFound when the order does not exist in the
// acting tenant.
func (h GetOrderDetailQueryHandler) Handle(ctx context.Context, query GetOrderDetailQuery) (*OrderDetail, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	orderID := query.OrderID()

	var rows []orderDetailRow
	err := tenantOrders(db, query.Tenant().TenantID()).
		Select(summaryColumns+", orders.notes, orders.version, orders.created_at, orders.updated_at").
		Where("orders.id = ?", orderID.Bytes()).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errs.NewObjectNotFoundError("order", orderID)
	}

	summary, err := rows[0].Summary.toSummary()
	if err != nil {
		return nil, err
	}
	detail := &OrderDetail{
		OrderSummary: summary,
		Notes:        rows[0].Notes,
		Version:      rows[0].Version,
		CreatedAt:    rows[0].CreatedAt,
		UpdatedAt:    rows[0].UpdatedAt,
	}

	if detail.Items, err = h.items(db, orderID); err != nil {
		return nil, err
	}
	if detail.Delivery, err = h.delivery(db, orderID); err != nil {
		return nil, err
	}
	return detail, nil
}

func (h GetOrderDetailQueryHandler) items(db *gorm.DB, orderID kernel.UUID) ([]OrderItemView, error) {
	var rows []orderItemRow
	err := db.Table("order_items").
		Select(`order_items.id, order_items.product_id, products.code AS product_code,
			products.name AS product_name, order_items.supplier_id,
			suppliers.code AS supplier_code, suppliers.name AS supplier_name,
			order_items.quantity, order_items.quoted_price, order_items.line_total, order_items.notes`).
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN suppliers ON suppliers.id = order_items.supplier_id").
		Where("order_items.order_id = ?", orderID.Bytes()).
		Order("order_items.position").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]OrderItemView, 0, len(rows))
	for _, row := range rows {
		items = append(items, OrderItemView{
			ID:           kernel.UUIDFromGoogle(row.ID),
			ProductID:    kernel.UUIDFromGoogle(row.ProductID),
			ProductCode:  row.ProductCode,
			ProductName:  row.ProductName,
			SupplierID:   kernel.UUIDFromGoogle(row.SupplierID),
			SupplierCode: row.SupplierCode,
			SupplierName: row.SupplierName,
			Quantity:     row.Quantity,
			QuotedPrice:  kernel.NewMoney(row.QuotedPrice),
			LineTotal:    kernel.NewMoney(row.LineTotal),
			Notes:        row.Notes,
		})
	}
	return items, nil
}

func (h GetOrderDetailQueryHandler) delivery(db *gorm.DB, orderID kernel.UUID) (*DeliveryView, error) {
	var row deliveryRow
	err := db.Table("deliveries").
		Select("id, responsible, scheduled_date, delivered_date, delivered_time, delivered_by, signature, notes, realized_at").
		Where("order_id = ?", orderID.Bytes()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &DeliveryView{
		ID:            kernel.UUIDFromGoogle(row.ID),
		Responsible:   row.Responsible,
		ScheduledDate: row.ScheduledDate,
		DeliveredDate: row.DeliveredDate,
		DeliveredTime: row.DeliveredTime,
		DeliveredBy:   row.DeliveredBy,
		Signature:     row.Signature,
		Notes:         row.Notes,
		RealizedAt:    row.RealizedAt,
		Completed:     row.DeliveredDate != nil && row.Signature != "",
	}, nil
}
