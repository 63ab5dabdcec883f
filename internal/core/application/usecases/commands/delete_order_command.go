package commands

import (
	"context"
	"errors"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/errs"
	"encomendas/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand removes an order and its items.
type DeleteOrderCommand struct {
	orderTarget
	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(tc kernel.TenantContext, orderID kernel.UUID) (DeleteOrderCommand, error) {
	target, err := newOrderTarget(tc, orderID)
	if err != nil {
		return DeleteOrderCommand{}, err
	}
	return DeleteOrderCommand{orderTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

// DeleteOrderCommandHandler refuses to delete an order while its delivery
// record exists; the delivery has to be deleted first.
type DeleteOrderCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewDeleteOrderCommandHandler(uowFactory DeliveryUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
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
	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, tenantID, cmd.OrderID())
	if err != nil {
		return err
	}

	hasDelivery, err := uow.DeliveryRepository().ExistsForOrder(ctx, tenantID, o.ID())
	if err != nil {
		return err
	}
	if hasDelivery {
		return errs.NewOrderHasDeliveryError(o.ID())
	}

	if err = orderRepo.Delete(ctx, tenantID, o.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
