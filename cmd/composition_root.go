package cmd

import (
	"context"

	httpin "encomendas/internal/adapters/in/http"
	"encomendas/internal/adapters/out/postgres"
	"encomendas/internal/core/application/usecases/commands"
	"encomendas/internal/core/application/usecases/queries"
	"encomendas/internal/core/domain/model/catalog"
	"encomendas/internal/core/domain/services"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	policy     *services.DeliveryCompletionPolicy
	logger     *zap.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) CompositionRoot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     services.NewDeliveryCompletionPolicy(cfg.DeliveryStrictMode, logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoW() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.deliveryUoW())
}

func (c *CompositionRoot) CreateAddOrderItemCommandHandler() commands.AddOrderItemCommandHandler {
	return commands.NewAddOrderItemCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateUpdateOrderItemCommandHandler() commands.UpdateOrderItemCommandHandler {
	return commands.NewUpdateOrderItemCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateRemoveOrderItemCommandHandler() commands.RemoveOrderItemCommandHandler {
	return commands.NewRemoveOrderItemCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateRecalculateOrderTotalCommandHandler() commands.RecalculateOrderTotalCommandHandler {
	return commands.NewRecalculateOrderTotalCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateSetOrderStatusCommandHandler() commands.SetOrderStatusCommandHandler {
	return commands.NewSetOrderStatusCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateGetOrCreateDeliveryCommandHandler() commands.GetOrCreateDeliveryCommandHandler {
	return commands.NewGetOrCreateDeliveryCommandHandler(c.deliveryUoW())
}

func (c *CompositionRoot) CreateFinalizeDeliveryCommandHandler() commands.FinalizeDeliveryCommandHandler {
	return commands.NewFinalizeDeliveryCommandHandler(c.deliveryUoW(), c.policy)
}

func (c *CompositionRoot) CreateDeleteDeliveryCommandHandler() commands.DeleteDeliveryCommandHandler {
	return commands.NewDeleteDeliveryCommandHandler(c.deliveryUoW())
}

func (c *CompositionRoot) CreateGetOrderDetailQueryHandler() queries.GetOrderDetailQueryHandler {
	return queries.NewGetOrderDetailQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDashboardQueryHandler() queries.GetDashboardQueryHandler {
	return queries.NewGetDashboardQueryHandler(c.gormDB)
}

// CreateClientHandlers wires the client catalog. Reads go through a unit of
// work that is never begun, so they run on the connection pool.
func (c *CompositionRoot) CreateClientHandlers() httpin.CatalogHandlers[*catalog.Client, catalog.ClientFields] {
	repo := c.uowFactory.Create().ClientRepository()
	return httpin.CatalogHandlers[*catalog.Client, catalog.ClientFields]{
		Create: commands.NewCreateCatalogEntryCommandHandler(c.uow(), commands.ClientKind),
		Update: commands.NewUpdateCatalogEntryCommandHandler(c.uow(), commands.ClientKind),
		Delete: commands.NewDeleteCatalogEntryCommandHandler(c.uow(), commands.ClientKind),
		Get:    queries.NewGetCatalogEntryQueryHandler(repo),
		List:   queries.NewListCatalogEntriesQueryHandler(repo),
	}
}

func (c *CompositionRoot) CreateSupplierHandlers() httpin.CatalogHandlers[*catalog.Supplier, catalog.SupplierFields] {
	repo := c.uowFactory.Create().SupplierRepository()
	return httpin.CatalogHandlers[*catalog.Supplier, catalog.SupplierFields]{
		Create: commands.NewCreateCatalogEntryCommandHandler(c.uow(), commands.SupplierKind),
		Update: commands.NewUpdateCatalogEntryCommandHandler(c.uow(), commands.SupplierKind),
		Delete: commands.NewDeleteCatalogEntryCommandHandler(c.uow(), commands.SupplierKind),
		Get:    queries.NewGetCatalogEntryQueryHandler(repo),
		List:   queries.NewListCatalogEntriesQueryHandler(repo),
	}
}

func (c *CompositionRoot) CreateProductHandlers() httpin.CatalogHandlers[*catalog.Product, catalog.ProductFields] {
	repo := c.uowFactory.Create().ProductRepository()
	return httpin.CatalogHandlers[*catalog.Product, catalog.ProductFields]{
		Create: commands.NewCreateCatalogEntryCommandHandler(c.uow(), commands.ProductKind),
		Update: commands.NewUpdateCatalogEntryCommandHandler(c.uow(), commands.ProductKind),
		Delete: commands.NewDeleteCatalogEntryCommandHandler(c.uow(), commands.ProductKind),
		Get:    queries.NewGetCatalogEntryQueryHandler(repo),
		List:   queries.NewListCatalogEntriesQueryHandler(repo),
	}
}

// CreateHTTPServer builds the API with every use case wired in.
func (c *CompositionRoot) CreateHTTPServer(ctx context.Context) (*httpin.Server, error) {
	return httpin.NewServer(ctx, httpin.Handlers{
		Clients:   c.CreateClientHandlers(),
		Suppliers: c.CreateSupplierHandlers(),
		Products:  c.CreateProductHandlers(),
		Orders: httpin.OrderHandlers{
			Create:      c.CreateCreateOrderCommandHandler(),
			Update:      c.CreateUpdateOrderCommandHandler(),
			Delete:      c.CreateDeleteOrderCommandHandler(),
			AddItem:     c.CreateAddOrderItemCommandHandler(),
			UpdateItem:  c.CreateUpdateOrderItemCommandHandler(),
			RemoveItem:  c.CreateRemoveOrderItemCommandHandler(),
			Recalculate: c.CreateRecalculateOrderTotalCommandHandler(),
			SetStatus:   c.CreateSetOrderStatusCommandHandler(),
			Detail:      c.CreateGetOrderDetailQueryHandler(),
			List:        c.CreateListOrdersQueryHandler(),
			Dashboard:   c.CreateGetDashboardQueryHandler(),
		},
		Deliveries: httpin.DeliveryHandlers{
			GetOrCreate: c.CreateGetOrCreateDeliveryCommandHandler(),
			Finalize:    c.CreateFinalizeDeliveryCommandHandler(),
			Delete:      c.CreateDeleteDeliveryCommandHandler(),
		},
	}, c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}
