package queries

import (
	"errors"
	"strings"

	"encomendas/internal/core/domain/model/catalog"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/pkg/errs"
	"encomendas/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// OrderFilter narrows an order listing. Zero fields do not filter. Search
// matches the order number, the client name or the client code as a
// case-insensitive substring.
type OrderFilter struct {
	Status   string
	ClientID kernel.UUID
	Search   string
	Limit    int
	Offset   int
}

// ListOrdersQuery pages through the acting tenant's orders, newest number first.
//
// Example:
//
//	query, err := NewListOrdersQuery(tc, OrderFilter{Status: "aprovada", Search: "padaria"})
//	if err != nil {
//	    return err
//	}
//	page, err := NewListOrdersQueryHandler(db).Handle(ctx, query)
type ListOrdersQuery struct {
	tc     kernel.TenantContext
	status order.Status
	filter OrderFilter

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(tc kernel.TenantContext, filter OrderFilter) (ListOrdersQuery, error) {
	if err := tc.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	var status order.Status
	if filter.Status != "" {
		parsed, err := order.ParseStatus(filter.Status)
		if err != nil {
			return ListOrdersQuery{}, errs.NewFieldError("status", err)
		}
		status = parsed
	}

	paging := catalog.Filter{Search: filter.Search, Limit: filter.Limit, Offset: filter.Offset}.Normalize()
	filter.Search = strings.ToLower(paging.Search)
	filter.Limit = paging.Limit
	filter.Offset = paging.Offset

	return ListOrdersQuery{
		tc:     tc,
		status: status,
		filter: filter,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Tenant() kernel.TenantContext {
	return q.tc
}

// Status is the status filter, empty when any status matches.
func (q ListOrdersQuery) Status() order.Status {
	return q.status
}

// Filter returns the normalized filter.
func (q ListOrdersQuery) Filter() OrderFilter {
	return q.filter
}

// OrderPage is one page of a listing plus the number of matching orders.
type OrderPage struct {
	Orders []OrderSummary
	Total  int64
	Limit  int
	Offset int
}
