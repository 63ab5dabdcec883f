package commands

import (
	"errors"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/guard"
)

var ErrRemoveOrderItemCommandIsNotConstructed = errors.New(
	"RemoveOrderItemCommand must be created via NewRemoveOrderItemCommand constructor",
)

// RemoveOrderItemCommand deletes one item of an order.
type RemoveOrderItemCommand struct {
	orderTarget
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveOrderItemCommand(tc kernel.TenantContext, orderID, itemID kernel.UUID) (RemoveOrderItemCommand, error) {
	target, err := newOrderTarget(tc, orderID)
	if err = errors.Join(err, requireID("itemId", itemID)); err != nil {
		return RemoveOrderItemCommand{}, err
	}
	return RemoveOrderItemCommand{orderTarget: target, itemID: itemID, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderItemCommandIsNotConstructed)
}

func (c RemoveOrderItemCommand) ItemID() kernel.UUID {
	return c.itemID
}
