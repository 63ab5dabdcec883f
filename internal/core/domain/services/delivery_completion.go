package services

import (
	"context"
	"errors"
	"time"

	"encomendas/internal/core/domain/model/delivery"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/pkg/errs"

	"go.uber.org/zap"
)

// ErrOverrideDisabled is the cause reported when strict mode refuses to force
// an order into entregue.
var ErrOverrideDisabled = errors.New("completing a delivery would skip the status table and strict mode is on")

// OverrideEvent describes an order forced into entregue by its delivery
// although the status table has no such edge.
type OverrideEvent struct {
	TenantID    kernel.UUID
	OrderID     kernel.UUID
	OrderNumber int64
	From        order.Status
	To          order.Status
	Actor       string
	At          time.Time
}

// OverrideHook is notified of every table bypass. Hooks run inside the unit
// of work and must not block.
type OverrideHook func(ctx context.Context, event OverrideEvent)

// DeliveryCompletionPolicy applies the rule that a delivery with both a
// delivered date and the client's signature completes its order.
//
// When the order can legally move to entregue the normal transition is used.
// Otherwise, for example an order still in criada, the order is forced to
// entregue, every hook is called and a warning is logged. In strict mode the
// bypass is refused with an InvalidStatusTransition error instead.
type DeliveryCompletionPolicy struct {
	strict bool
	hooks  []OverrideHook
	logger *zap.Logger
}

func NewDeliveryCompletionPolicy(strict bool, logger *zap.Logger, hooks ...OverrideHook) *DeliveryCompletionPolicy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeliveryCompletionPolicy{
		strict: strict,
		hooks:  hooks,
		logger: logger.Named("delivery-completion"),
	}
}

// Apply updates o after d was finalized. It reports whether the order status
// changed. The delivery is stamped as realized when it completes the order.
func (p *DeliveryCompletionPolicy) Apply(
	ctx context.Context, tc kernel.TenantContext, o *order.Order, d *delivery.Delivery, now time.Time,
) (bool, error) {
	if err := errors.Join(o.Validate(), d.Validate()); err != nil {
		return false, err
	}
	if !d.OrderID().IsEqual(o.ID()) {
		return false, errs.NewValueIsInvalidErrorWithCause("delivery", errors.New("delivery belongs to another order"))
	}
	if !d.IsCompleted() {
		return false, nil
	}

	from := o.Status()
	switch {
	case from == order.Delivered:
		d.MarkRealized(now)
		return false, nil
	case from.CanTransitionTo(order.Delivered):
		if err := o.SetStatus(order.Delivered); err != nil {
			return false, err
		}
	case p.strict:
		return false, errs.NewStatusTransitionErrorWithCause(from.String(), order.Delivered.String(), ErrOverrideDisabled)
	default:
		o.ForceDelivered()
		p.notify(ctx, OverrideEvent{
			TenantID:    o.TenantID(),
			OrderID:     o.ID(),
			OrderNumber: o.Number(),
			From:        from,
			To:          order.Delivered,
			Actor:       tc.Actor(),
			At:          now,
		})
	}

	d.MarkRealized(now)
	return true, nil
}

func (p *DeliveryCompletionPolicy) notify(ctx context.Context, event OverrideEvent) {
	p.logger.Warn("delivery forced order status outside the transition table",
		zap.String("tenant_id", event.TenantID.String()),
		zap.String("order_id", event.OrderID.String()),
		zap.Int64("order_number", event.OrderNumber),
		zap.String("from", event.From.String()),
		zap.String("to", event.To.String()),
		zap.String("actor", event.Actor),
	)
	for _, hook := range p.hooks {
		hook(ctx, event)
	}
}
