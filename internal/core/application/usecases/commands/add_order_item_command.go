package commands

import (
	"errors"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/guard"
)

var ErrAddOrderItemCommandIsNotConstructed = errors.New(
	"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
)

// AddOrderItemCommand appends an item to an existing order.
type AddOrderItemCommand struct {
	orderTarget
	item OrderItemSpec

	guard guard.ConstructorGuard
}

func NewAddOrderItemCommand(tc kernel.TenantContext, orderID kernel.UUID, item OrderItemSpec) (AddOrderItemCommand, error) {
	target, err := newOrderTarget(tc, orderID)
	if err != nil {
		return AddOrderItemCommand{}, err
	}
	return AddOrderItemCommand{orderTarget: target, item: item, guard: guard.NewConstructorGuard()}, nil
}

func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

func (c AddOrderItemCommand) Item() OrderItemSpec {
	return c.item
}
