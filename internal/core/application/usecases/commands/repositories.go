// Package commands contains the business operations that modify state.
// Every handler validates its command, runs inside one unit of work and
// rolls back on any failure.
package commands

import (
	"context"

	"encomendas/internal/core/ports"
)

// Unit of Work interfaces give command handlers a transaction boundary and the
// repositories bound to it.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ClientRepoFactory interface {
		ClientRepository() ports.ClientRepository
	}

	SupplierRepoFactory interface {
		SupplierRepository() ports.SupplierRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// OrderUoW manages transactions for operations touching only the order
	// aggregate, such as status changes and recalculation.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DeliveryUoW manages transactions that read or write an order together
	// with its delivery record.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// UoW spans the catalog and the orders. It is used where orders are
	// validated against catalog entries, and where catalog deletes cascade
	// into orders.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   client, err := uow.ClientRepository().Find(ctx, clientID)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ClientRepoFactory
		SupplierRepoFactory
		ProductRepoFactory
		OrderRepoFactory
		DeliveryRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
