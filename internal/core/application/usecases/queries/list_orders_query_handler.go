package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (*OrderPage, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	f := query.Filter()
	q := tenantOrders(h.db.WithContext(ctx), query.Tenant().TenantID())
	if status := query.Status(); status != "" {
		q = q.Where("orders.status = ?", status.String())
	}
	if !f.ClientID.IsZero() {
		q = q.Where("orders.client_id = ?", f.ClientID.Bytes())
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where(
			"CAST(orders.number AS TEXT) LIKE ? OR LOWER(clients.name) LIKE ? OR LOWER(clients.code) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	orders, err := scanSummaries(q.Limit(f.Limit).Offset(f.Offset))
	if err != nil {
		return nil, err
	}

	return &OrderPage{Orders: orders, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}
