package commands

import (
	"context"

	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/pkg/errs"
)

// UpdateOrderItemCommandHandler revalidates an edited item, stores it and
// recomputes the order total.
type UpdateOrderItemCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateOrderItemCommandHandler(uowFactory UoWFactory) UpdateOrderItemCommandHandler {
	return UpdateOrderItemCommandHandler{uowFactory: uowFactory}
}

func (h UpdateOrderItemCommandHandler) Handle(ctx context.Context, cmd UpdateOrderItemCommand) (*order.Order, error) {
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
	if _, err = o.Item(cmd.ItemID()); err != nil {
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

	item, err := o.UpdateItem(cmd.ItemID(), in)
	if err != nil {
		return nil, err
	}
	if err = orderRepo.UpdateItem(ctx, item); err != nil {
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
