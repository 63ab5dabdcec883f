package commands

import (
	"context"

	"encomendas/internal/core/domain/model/order"
)

// SetOrderStatusCommandHandler applies a status change allowed by the status
// machine. On an illegal change the stored order is left untouched.
type SetOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSetOrderStatusCommandHandler(uowFactory OrderUoWFactory) SetOrderStatusCommandHandler {
	return SetOrderStatusCommandHandler{uowFactory: uowFactory}
}

func (h SetOrderStatusCommandHandler) Handle(ctx context.Context, cmd SetOrderStatusCommand) (*order.Order, error) {
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

	if err = o.SetStatus(cmd.Target()); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
