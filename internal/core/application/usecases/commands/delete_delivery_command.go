package commands

import (
	"context"
	"errors"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/guard"
)

var ErrDeleteDeliveryCommandIsNotConstructed = errors.New(
	"DeleteDeliveryCommand must be created via NewDeleteDeliveryCommand constructor",
)

// DeleteDeliveryCommand removes the delivery record of an order, which makes
// the order deletable again. The order status is not touched.
type DeleteDeliveryCommand struct {
	orderTarget
	guard guard.ConstructorGuard
}

func NewDeleteDeliveryCommand(tc kernel.TenantContext, orderID kernel.UUID) (DeleteDeliveryCommand, error) {
	target, err := newOrderTarget(tc, orderID)
	if err != nil {
		return DeleteDeliveryCommand{}, err
	}
	return DeleteDeliveryCommand{orderTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDeliveryCommandIsNotConstructed)
}

type DeleteDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewDeleteDeliveryCommandHandler(uowFactory DeliveryUoWFactory) DeleteDeliveryCommandHandler {
	return DeleteDeliveryCommandHandler{uowFactory: uowFactory}
}

// Handle fails with errs.ErrObjectNotFound when the order is not in the
// caller's tenant or has no delivery.
func (h DeleteDeliveryCommandHandler) Handle(ctx context.Context, cmd DeleteDeliveryCommand) error {
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

	if err := uow.DeliveryRepository().DeleteByOrder(ctx, cmd.Tenant().TenantID(), cmd.OrderID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
