package queries

import (
	"errors"
	"time"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/guard"
)

var (
	ErrGetOrderDetailQueryIsNotConstructed = errors.New(
		"GetOrderDetailQuery must be created via NewGetOrderDetailQuery constructor",
	)
)

// GetOrderDetailQuery reads one order of the acting tenant with its client,
// its items and its delivery, if any.
//
// Example:
//
//	query, err := NewGetOrderDetailQuery(tc, orderID)
//	if err != nil {
//	    return err
//	}
//
//	detail, err := NewGetOrderDetailQueryHandler(db).Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown order, or an order of another tenant
//	}
//	fmt.Printf("#%d %s: %s\n", detail.Number, detail.Status.Label(), detail.Total)
type GetOrderDetailQuery struct {
	tc      kernel.TenantContext
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderDetailQuery(tc kernel.TenantContext, orderID kernel.UUID) (GetOrderDetailQuery, error) {
	if err := errors.Join(tc.Validate(), requireID("orderId", orderID)); err != nil {
		return GetOrderDetailQuery{}, err
	}

	return GetOrderDetailQuery{
		tc:      tc,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderDetailQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailQueryIsNotConstructed)
}

func (q GetOrderDetailQuery) Tenant() kernel.TenantContext {
	return q.tc
}

func (q GetOrderDetailQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderDetail is an order with everything a detail page shows.
type OrderDetail struct {
	OrderSummary

	Notes     string
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []OrderItemView

	// Delivery is nil until the order's delivery is first opened.
	Delivery *DeliveryView
}

// OrderItemView is an item with the code and name of its product and supplier.
type OrderItemView struct {
	ID           kernel.UUID
	ProductID    kernel.UUID
	ProductCode  string
	ProductName  string
	SupplierID   kernel.UUID
	SupplierCode string
	SupplierName string
	Quantity     int
	QuotedPrice  kernel.Money
	LineTotal    kernel.Money
	Notes        string
}

type DeliveryView struct {
	ID            kernel.UUID
	Responsible   string
	ScheduledDate *time.Time
	DeliveredDate *time.Time
	DeliveredTime string
	DeliveredBy   string
	Signature     string
	Notes         string
	RealizedAt    *time.Time
	Completed     bool
}
