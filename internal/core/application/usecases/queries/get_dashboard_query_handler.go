package queries

import (
	"context"

	"encomendas/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetDashboardQueryHandler struct {
	db *gorm.DB
}

func NewGetDashboardQueryHandler(db *gorm.DB) GetDashboardQueryHandler {
	return GetDashboardQueryHandler{db: db}
}

func (h GetDashboardQueryHandler) Handle(ctx context.Context, query GetDashboardQuery) (*Dashboard, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	tenantID := query.Tenant().TenantID().Bytes()
	count := func(statuses ...order.Status) (int64, error) {
		q := db.Table("orders").Where("tenant_id = ?", tenantID)
		if len(statuses) > 0 {
			values := make([]string, 0, len(statuses))
			for _, s := range statuses {
				values = append(values, s.String())
			}
			q = q.Where("status IN ?", values)
		}
		var n int64
		err := q.Count(&n).Error
		return n, err
	}

	var (
		dashboard Dashboard
		err       error
	)
	if dashboard.TotalOrders, err = count(); err != nil {
		return nil, err
	}
	if dashboard.PendingOrders, err = count(order.Pending()...); err != nil {
		return nil, err
	}
	if dashboard.DeliveredOrders, err = count(order.Delivered); err != nil {
		return nil, err
	}

	dashboard.LatestOrders, err = scanSummaries(
		tenantOrders(db, query.Tenant().TenantID()).Limit(LatestOrdersOnDashboard),
	)
	if err != nil {
		return nil, err
	}
	return &dashboard, nil
}
