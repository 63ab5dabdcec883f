package commands

import (
	"errors"
	"time"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// OrderPatch lists the header changes to apply. Nil fields keep their
// current value. ClearExpectedDeliveryDate removes the expected date and
// takes precedence over ExpectedDeliveryDate.
type OrderPatch struct {
	ClientID                  *kernel.UUID
	Responsible               *string
	OrderedAt                 *time.Time
	ExpectedDeliveryDate      *time.Time
	ClearExpectedDeliveryDate bool
	AdvancePaid               *kernel.Money
	Notes                     *string
}

// apply returns h with the patch applied.
func (p OrderPatch) apply(h order.Header) order.Header {
	if p.Responsible != nil {
		h.Responsible = *p.Responsible
	}
	if p.OrderedAt != nil {
		h.OrderedAt = *p.OrderedAt
	}
	if p.ExpectedDeliveryDate != nil {
		d := *p.ExpectedDeliveryDate
		h.ExpectedDeliveryDate = &d
	}
	if p.ClearExpectedDeliveryDate {
		h.ExpectedDeliveryDate = nil
	}
	if p.AdvancePaid != nil {
		h.AdvancePaid = *p.AdvancePaid
	}
	if p.Notes != nil {
		h.Notes = *p.Notes
	}
	return h
}

// UpdateOrderCommand edits the header of an order and optionally moves it to
// another client of the same tenant.
type UpdateOrderCommand struct {
	orderTarget
	patch OrderPatch

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(tc kernel.TenantContext, orderID kernel.UUID, patch OrderPatch) (UpdateOrderCommand, error) {
	target, err := newOrderTarget(tc, orderID)
	if err != nil {
		return UpdateOrderCommand{}, err
	}
	return UpdateOrderCommand{orderTarget: target, patch: patch, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) Patch() OrderPatch {
	return c.patch
}
