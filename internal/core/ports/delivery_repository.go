package ports

import (
	"context"

	"encomendas/internal/core/domain/model/delivery"
	"encomendas/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery records.
// Deliveries are addressed through their order; there is at most one per order.
type DeliveryRepository interface {
	Add(ctx context.Context, d *delivery.Delivery) error
	Update(ctx context.Context, d *delivery.Delivery) error

	// GetByOrder returns the delivery of orderID, or errs.ErrObjectNotFound.
	GetByOrder(ctx context.Context, tenantID, orderID kernel.UUID) (*delivery.Delivery, error)

	// ExistsForOrder reports whether orderID has a delivery.
	ExistsForOrder(ctx context.Context, tenantID, orderID kernel.UUID) (bool, error)

	DeleteByOrder(ctx context.Context, tenantID, orderID kernel.UUID) error
}
