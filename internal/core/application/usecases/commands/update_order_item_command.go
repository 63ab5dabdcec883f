package commands

import (
	"errors"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/guard"
)

var ErrUpdateOrderItemCommandIsNotConstructed = errors.New(
	"UpdateOrderItemCommand must be created via NewUpdateOrderItemCommand constructor",
)

// UpdateOrderItemCommand replaces every field of one item of an order.
type UpdateOrderItemCommand struct {
	orderTarget
	itemID kernel.UUID
	item   OrderItemSpec

	guard guard.ConstructorGuard
}

func NewUpdateOrderItemCommand(
	tc kernel.TenantContext, orderID, itemID kernel.UUID, item OrderItemSpec,
) (UpdateOrderItemCommand, error) {
	target, err := newOrderTarget(tc, orderID)
	if err = errors.Join(err, requireID("itemId", itemID)); err != nil {
		return UpdateOrderItemCommand{}, err
	}
	return UpdateOrderItemCommand{
		orderTarget: target,
		itemID:      itemID,
		item:        item,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderItemCommandIsNotConstructed)
}

func (c UpdateOrderItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c UpdateOrderItemCommand) Item() OrderItemSpec {
	return c.item
}
