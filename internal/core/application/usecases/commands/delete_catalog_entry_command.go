package commands

import (
	"context"
	"errors"

	"encomendas/internal/core/domain/model/catalog"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/ports"
	"encomendas/internal/pkg/errs"
	"encomendas/internal/pkg/guard"
)

var ErrDeleteCatalogEntryCommandIsNotConstructed = errors.New(
	"DeleteCatalogEntryCommand must be created via NewDeleteCatalogEntryCommand constructor",
)

// DeleteCatalogEntryCommand removes a catalog entry. With cascade set, the
// orders or items referencing it are deleted too; without it a referenced
// entry is kept and errs.ErrEntityInUse is returned.
type DeleteCatalogEntryCommand struct {
	tc      kernel.TenantContext
	id      kernel.UUID
	cascade bool

	guard guard.ConstructorGuard
}

func NewDeleteCatalogEntryCommand(tc kernel.TenantContext, id kernel.UUID, cascade bool) (DeleteCatalogEntryCommand, error) {
	if err := errors.Join(tc.Validate(), requireID("id", id)); err != nil {
		return DeleteCatalogEntryCommand{}, err
	}
	return DeleteCatalogEntryCommand{tc: tc, id: id, cascade: cascade, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteCatalogEntryCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCatalogEntryCommandIsNotConstructed)
}

func (c DeleteCatalogEntryCommand) Tenant() kernel.TenantContext {
	return c.tc
}

func (c DeleteCatalogEntryCommand) ID() kernel.UUID {
	return c.id
}

func (c DeleteCatalogEntryCommand) Cascade() bool {
	return c.cascade
}

// DeleteCatalogEntryCommandHandler deletes catalog entries.
//
// Cascading a client deletes each of its orders together with the order's
// delivery and items. Cascading a product or supplier deletes the items that
// use it and recomputes the total of every order that lost an item.
type DeleteCatalogEntryCommandHandler[T catalogEntry[F], F any] struct {
	uowFactory UoWFactory
	kind       CatalogKind[T, F]
}

type (
	DeleteClientCommandHandler   = DeleteCatalogEntryCommandHandler[*catalog.Client, catalog.ClientFields]
	DeleteSupplierCommandHandler = DeleteCatalogEntryCommandHandler[*catalog.Supplier, catalog.SupplierFields]
	DeleteProductCommandHandler  = DeleteCatalogEntryCommandHandler[*catalog.Product, catalog.ProductFields]
)

func NewDeleteCatalogEntryCommandHandler[T catalogEntry[F], F any](
	uowFactory UoWFactory, kind CatalogKind[T, F],
) DeleteCatalogEntryCommandHandler[T, F] {
	return DeleteCatalogEntryCommandHandler[T, F]{uowFactory: uowFactory, kind: kind}
}

func (h DeleteCatalogEntryCommandHandler[T, F]) Handle(ctx context.Context, cmd DeleteCatalogEntryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tenantID := cmd.Tenant().TenantID()
	repo := h.kind.repo(uow)
	entry, err := repo.Get(ctx, tenantID, cmd.ID())
	if err != nil {
		return err
	}

	orderIDs, err := uow.OrderRepository().FindIDsReferencing(ctx, tenantID, h.kind.reference, entry.ID())
	if err != nil {
		return err
	}
	if len(orderIDs) > 0 {
		if !cmd.Cascade() {
			return errs.NewEntityInUseError(h.kind.name, entry.ID(), len(orderIDs))
		}
		if err = h.cascade(ctx, uow, tenantID, entry.ID(), orderIDs); err != nil {
			return err
		}
	}

	if err = repo.Delete(ctx, tenantID, entry.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h DeleteCatalogEntryCommandHandler[T, F]) cascade(
	ctx context.Context, uow UoW, tenantID, entryID kernel.UUID, orderIDs []kernel.UUID,
) error {
	orderRepo := uow.OrderRepository()

	if h.kind.reference == ports.ClientReference {
		deliveryRepo := uow.DeliveryRepository()
		for _, orderID := range orderIDs {
			err := deliveryRepo.DeleteByOrder(ctx, tenantID, orderID)
			if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
				return err
			}
			if err = orderRepo.Delete(ctx, tenantID, orderID); err != nil {
				return err
			}
		}
		return nil
	}

	if err := orderRepo.RemoveItemsReferencing(ctx, tenantID, h.kind.reference, entryID); err != nil {
		return err
	}
	for _, orderID := range orderIDs {
		o, err := orderRepo.GetForUpdate(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if err = recalculateTotal(ctx, orderRepo, o); err != nil {
			return err
		}
	}
	return nil
}
