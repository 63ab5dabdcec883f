package commands

import (
	"context"

	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/pkg/errs"
)

// UpdateOrderCommandHandler applies an OrderPatch. A new client is checked
// for tenant ownership the same way as on creation.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateOrderCommandHandler(uowFactory UoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{uowFactory: uowFactory}
}

func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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

	patch := cmd.Patch()
	var v errs.ValidationError

	if patch.ClientID != nil {
		client, resolveErr := resolveClient(ctx, uow.ClientRepository(), cmd.Tenant(), *patch.ClientID, &v)
		if resolveErr != nil {
			return nil, resolveErr
		}
		if client != nil {
			v.Add("", o.ChangeClient(client))
		}
	}
	v.AddIfAbsent("", o.UpdateHeader(patch.apply(o.Header())))

	if err = v.ErrOrNil(); err != nil {
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
