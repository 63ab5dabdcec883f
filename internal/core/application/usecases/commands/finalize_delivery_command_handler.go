package commands

import (
	"context"
	"time"

	"encomendas/internal/core/domain/model/delivery"
	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/core/domain/services"
)

// FinalizeDeliveryResult is the outcome of a finalization.
type FinalizeDeliveryResult struct {
	Delivery *delivery.Delivery
	Order    *order.Order

	// StatusChanged is true when the delivery moved the order to entregue.
	StatusChanged bool
}

// FinalizeDeliveryCommandHandler merges the submitted fields into the
// delivery record, creating it if needed. Once the record has both a
// delivered date and a signature the completion policy decides the order
// status, which may bypass the status table unless strict mode is on.
type FinalizeDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	policy     *services.DeliveryCompletionPolicy
	now        func() time.Time
}

func NewFinalizeDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory, policy *services.DeliveryCompletionPolicy,
) FinalizeDeliveryCommandHandler {
	return FinalizeDeliveryCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		now:        time.Now,
	}
}

func (h FinalizeDeliveryCommandHandler) Handle(
	ctx context.Context, cmd FinalizeDeliveryCommand,
) (FinalizeDeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return FinalizeDeliveryResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return FinalizeDeliveryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tenantID := cmd.Tenant().TenantID()
	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, tenantID, cmd.OrderID())
	if err != nil {
		return FinalizeDeliveryResult{}, err
	}

	deliveryRepo := uow.DeliveryRepository()
	d, created, err := loadOrNewDelivery(ctx, deliveryRepo, tenantID, o.ID())
	if err != nil {
		return FinalizeDeliveryResult{}, err
	}

	if err = d.Finalize(cmd.Fields()); err != nil {
		return FinalizeDeliveryResult{}, err
	}

	changed, err := h.policy.Apply(ctx, cmd.Tenant(), o, d, h.now())
	if err != nil {
		return FinalizeDeliveryResult{}, err
	}
	if changed {
		if err = orderRepo.Update(ctx, o); err != nil {
			return FinalizeDeliveryResult{}, err
		}
	}

	if created {
		err = deliveryRepo.Add(ctx, d)
	} else {
		err = deliveryRepo.Update(ctx, d)
	}
	if err != nil {
		return FinalizeDeliveryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return FinalizeDeliveryResult{}, err
	}

	return FinalizeDeliveryResult{Delivery: d, Order: o, StatusChanged: changed}, nil
}
