package commands

import (
	"context"

	"encomendas/internal/core/domain/model/order"
)

// RemoveOrderItemCommandHandler deletes an item and recomputes the order
// total. Removing the last item leaves a total of 0.00.
type RemoveOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRemoveOrderItemCommandHandler(uowFactory OrderUoWFactory) RemoveOrderItemCommandHandler {
	return RemoveOrderItemCommandHandler{uowFactory: uowFactory}
}

func (h RemoveOrderItemCommandHandler) Handle(ctx context.Context, cmd RemoveOrderItemCommand) (*order.Order, error) {
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

	if _, err = o.RemoveItem(cmd.ItemID()); err != nil {
		return nil, err
	}
	if err = orderRepo.RemoveItem(ctx, o.ID(), cmd.ItemID()); err != nil {
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
