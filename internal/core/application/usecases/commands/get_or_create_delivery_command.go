package commands

import (
	"context"
	"errors"

	"encomendas/internal/core/domain/model/delivery"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/ports"
	"encomendas/internal/pkg/errs"
	"encomendas/internal/pkg/guard"
)

var ErrGetOrCreateDeliveryCommandIsNotConstructed = errors.New(
	"GetOrCreateDeliveryCommand must be created via NewGetOrCreateDeliveryCommand constructor",
)

// GetOrCreateDeliveryCommand opens the delivery record of an order.
type GetOrCreateDeliveryCommand struct {
	orderTarget
	guard guard.ConstructorGuard
}

func NewGetOrCreateDeliveryCommand(tc kernel.TenantContext, orderID kernel.UUID) (GetOrCreateDeliveryCommand, error) {
	target, err := newOrderTarget(tc, orderID)
	if err != nil {
		return GetOrCreateDeliveryCommand{}, err
	}
	return GetOrCreateDeliveryCommand{orderTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c GetOrCreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrGetOrCreateDeliveryCommandIsNotConstructed)
}

// GetOrCreateDeliveryCommandHandler returns the delivery of an order, storing
// an empty one on first access. The order row is locked so that two first
// accesses cannot both create a record.
type GetOrCreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewGetOrCreateDeliveryCommandHandler(uowFactory DeliveryUoWFactory) GetOrCreateDeliveryCommandHandler {
	return GetOrCreateDeliveryCommandHandler{uowFactory: uowFactory}
}

func (h GetOrCreateDeliveryCommandHandler) Handle(
	ctx context.Context, cmd GetOrCreateDeliveryCommand,
) (*delivery.Delivery, error) {
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

	tenantID := cmd.Tenant().TenantID()
	o, err := uow.OrderRepository().GetForUpdate(ctx, tenantID, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	deliveryRepo := uow.DeliveryRepository()
	d, created, err := loadOrNewDelivery(ctx, deliveryRepo, tenantID, o.ID())
	if err != nil {
		return nil, err
	}
	if !created {
		return d, nil
	}

	if err = deliveryRepo.Add(ctx, d); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}

// loadOrNewDelivery returns the stored delivery of orderID, or a new unsaved
// one and true when there is none yet.
func loadOrNewDelivery(
	ctx context.Context, repo ports.DeliveryRepository, tenantID, orderID kernel.UUID,
) (*delivery.Delivery, bool, error) {
	d, err := repo.GetByOrder(ctx, tenantID, orderID)
	if err == nil {
		return d, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	d, err = delivery.NewDelivery(kernel.NewUUID(), tenantID, orderID)
	if err != nil {
		return nil, false, err
	}
	return d, true, nil
}
