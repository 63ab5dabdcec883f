package ports

import (
	"context"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"
)

// ReferenceKind names the catalog entity an order or item points at.
type ReferenceKind string

const (
	ClientReference   ReferenceKind = "client"
	ProductReference  ReferenceKind = "product"
	SupplierReference ReferenceKind = "supplier"
)

// OrderRepository defines the persistence contract for order aggregates and
// their items.
type OrderRepository interface {
	// Add persists a new order together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the header, status and total of an existing order if its
	// stored version still matches, then increments the version. A mismatch
	// fails with errs.ErrConcurrencyConflict.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order with its items, or errs.ErrObjectNotFound when it
	// does not exist in tenantID.
	Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get plus a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error)

	// Delete removes the order and its items.
	Delete(ctx context.Context, tenantID, id kernel.UUID) error

	// NextNumber atomically reserves the next order number of the tenant.
	NextNumber(ctx context.Context, tenantID kernel.UUID) (int64, error)

	AddItem(ctx context.Context, item *order.Item) error
	UpdateItem(ctx context.Context, item *order.Item) error
	RemoveItem(ctx context.Context, orderID, itemID kernel.UUID) error

	// ListItems re-reads the persisted items of an order in insertion order.
	ListItems(ctx context.Context, orderID kernel.UUID) ([]*order.Item, error)

	// FindIDsReferencing lists the tenant's orders pointing at a catalog entry,
	// directly (client) or through an item (product, supplier).
	FindIDsReferencing(ctx context.Context, tenantID kernel.UUID, kind ReferenceKind, id kernel.UUID) ([]kernel.UUID, error)

	// RemoveItemsReferencing deletes every item of the tenant pointing at a
	// product or supplier.
	RemoveItemsReferencing(ctx context.Context, tenantID kernel.UUID, kind ReferenceKind, id kernel.UUID) error
}
