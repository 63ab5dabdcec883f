package queries

import (
	"errors"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/guard"
)

var (
	ErrGetDashboardQueryIsNotConstructed = errors.New(
		"GetDashboardQuery must be created via NewGetDashboardQuery constructor",
	)
)

// LatestOrdersOnDashboard is how many recent orders the dashboard lists.
const LatestOrdersOnDashboard = 5

// GetDashboardQuery summarizes the acting tenant's order book.
type GetDashboardQuery struct {
	tc kernel.TenantContext

	guard guard.ConstructorGuard
}

func NewGetDashboardQuery(tc kernel.TenantContext) (GetDashboardQuery, error) {
	if err := tc.Validate(); err != nil {
		return GetDashboardQuery{}, err
	}
	return GetDashboardQuery{tc: tc, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDashboardQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardQueryIsNotConstructed)
}

func (q GetDashboardQuery) Tenant() kernel.TenantContext {
	return q.tc
}

// Dashboard counts orders by lifecycle stage. Pending covers criada,
// cotacao, aprovada and em_andamento.
type Dashboard struct {
	TotalOrders     int64
	PendingOrders   int64
	DeliveredOrders int64
	LatestOrders    []OrderSummary
}
