package commands

import (
	"errors"

	"encomendas/internal/core/domain/model/delivery"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/guard"
)

var ErrFinalizeDeliveryCommandIsNotConstructed = errors.New(
	"FinalizeDeliveryCommand must be created via NewFinalizeDeliveryCommand constructor",
)

// FinalizeDeliveryCommand fills in the delivery record of an order. Fields
// left nil keep their stored value.
//
// Example:
//
//	day, _ := kernel.ParseDate("deliveredDate", "2024-05-01")
//	signature := "ok"
//	cmd, err := NewFinalizeDeliveryCommand(tc, orderID, delivery.Fields{
//	    DeliveredDate: &day,
//	    Signature:     &signature,
//	})
//	d, err := handler.Handle(ctx, cmd) // the order is now entregue
type FinalizeDeliveryCommand struct {
	orderTarget
	fields delivery.Fields

	guard guard.ConstructorGuard
}

func NewFinalizeDeliveryCommand(
	tc kernel.TenantContext, orderID kernel.UUID, fields delivery.Fields,
) (FinalizeDeliveryCommand, error) {
	target, err := newOrderTarget(tc, orderID)
	if err != nil {
		return FinalizeDeliveryCommand{}, err
	}
	return FinalizeDeliveryCommand{orderTarget: target, fields: fields, guard: guard.NewConstructorGuard()}, nil
}

func (c FinalizeDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeDeliveryCommandIsNotConstructed)
}

func (c FinalizeDeliveryCommand) Fields() delivery.Fields {
	return c.fields
}
