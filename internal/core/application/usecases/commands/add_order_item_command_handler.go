package commands

import (
	"context"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/pkg/errs"
)

// AddOrderItemCommandHandler validates a new item against the catalog,
// stores it and recomputes the order total from the persisted items.
type AddOrderItemCommandHandler struct {
	uowFactory UoWFactory
}

func NewAddOrderItemCommandHandler(uowFactory UoWFactory) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{uowFactory: uowFactory}
}

// Handle returns the order with its refreshed total.
func (h AddOrderItemCommandHandler) Handle(ctx context.Context, cmd AddOrderItemCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.Tenant().TenantID(), cmd.OrderID())
	if err != nil {
		return nil, err
	}

	var v errs.ValidationError
	in, err := resolveItem(ctx, uow, o.TenantID(), cmd.Item(), "", &v)
	if err != nil {
		return nil, err
	}
	if err = v.ErrOrNil(); err != nil {
		return nil, err
	}

	item, err := o.AddItem(kernel.NewUUID(), in)
	if err != nil {
		return nil, err
	}
	if err = orderRepo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	if err = recalculateTotal(ctx, orderRepo, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
