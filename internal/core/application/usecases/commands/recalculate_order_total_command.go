package commands

import (
	"context"
	"errors"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/pkg/guard"
)

var ErrRecalculateOrderTotalCommandIsNotConstructed = errors.New(
	"RecalculateOrderTotalCommand must be created via NewRecalculateOrderTotalCommand constructor",
)

// RecalculateOrderTotalCommand recomputes an order total from its stored items.
type RecalculateOrderTotalCommand struct {
	orderTarget
	guard guard.ConstructorGuard
}

func NewRecalculateOrderTotalCommand(tc kernel.TenantContext, orderID kernel.UUID) (RecalculateOrderTotalCommand, error) {
	target, err := newOrderTarget(tc, orderID)
	if err != nil {
		return RecalculateOrderTotalCommand{}, err
	}
	return RecalculateOrderTotalCommand{orderTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c RecalculateOrderTotalCommand) Validate() error {
	return c.guard.Validate(ErrRecalculateOrderTotalCommandIsNotConstructed)
}

// RecalculateOrderTotalCommandHandler overwrites the total with the sum of
// the persisted line totals. Running it twice changes nothing but the version.
type RecalculateOrderTotalCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRecalculateOrderTotalCommandHandler(uowFactory OrderUoWFactory) RecalculateOrderTotalCommandHandler {
	return RecalculateOrderTotalCommandHandler{uowFactory: uowFactory}
}

func (h RecalculateOrderTotalCommandHandler) Handle(
	ctx context.Context, cmd RecalculateOrderTotalCommand,
) (*order.Order, error) {
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
	if err = recalculateTotal(ctx, orderRepo, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
