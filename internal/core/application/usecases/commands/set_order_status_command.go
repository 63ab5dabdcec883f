package commands

import (
	"errors"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/pkg/errs"
	"encomendas/internal/pkg/guard"
)

var ErrSetOrderStatusCommandIsNotConstructed = errors.New(
	"SetOrderStatusCommand must be created via NewSetOrderStatusCommand constructor",
)

// SetOrderStatusCommand moves an order to another status.
//
// Example:
//
//	cmd, err := NewSetOrderStatusCommand(tc, orderID, "cotacao")
//	if err != nil {
//	    return err // unknown status value
//	}
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidStatusTransition) {
//	    // not an edge of the status machine, or quoting an empty order
//	}
type SetOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderTarget
	target order.Status

	guard guard.ConstructorGuard
}

func NewSetOrderStatusCommand(tc kernel.TenantContext, orderID kernel.UUID, target string) (SetOrderStatusCommand, error) {
	cmd := SetOrderStatusCommand{guard: guard.NewConstructorGuard()}

	var err error
	cmd.orderTarget, err = newOrderTarget(tc, orderID)
	if err = errors.Join(err, cmd.setTarget(target)); err != nil {
		return SetOrderStatusCommand{}, err
	}
	return cmd, nil
}

func (c SetOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderStatusCommandIsNotConstructed)
}

func (c SetOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c *SetOrderStatusCommand) setTarget(target string) error {
	status, err := order.ParseStatus(target)
	if err != nil {
		return errs.NewFieldError("status", err)
	}
	c.target = status
	return nil
}
