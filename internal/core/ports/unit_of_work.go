package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Repositories it hands
// out share the transaction started by Begin.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	ClientRepository() ClientRepository
	SupplierRepository() SupplierRepository
	ProductRepository() ProductRepository
	OrderRepository() OrderRepository
	DeliveryRepository() DeliveryRepository
}
