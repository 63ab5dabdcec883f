package commands

import (
	"errors"
	"time"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to open a new order for a client of
// the acting tenant, optionally with its first items.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(tc, clientID, order.Header{
//	    Responsible: "Maria",
//	}, []OrderItemSpec{
//	    {ProductID: productID, SupplierID: supplierID, Quantity: 2, QuotedPrice: kernel.MustMoney("12.00")},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	tc       kernel.TenantContext
	clientID kernel.UUID
	header   order.Header
	items    []OrderItemSpec

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand builds the command. A zero OrderedAt defaults to the
// current date. The client, header and items are validated by the handler,
// which reports every violation at once.
func NewCreateOrderCommand(
	tc kernel.TenantContext, clientID kernel.UUID, header order.Header, items []OrderItemSpec,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		clientID: clientID,
		items:    append([]OrderItemSpec(nil), items...),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenant(tc),
		cmd.setHeader(header),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Tenant() kernel.TenantContext {
	return c.tc
}

func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

func (c CreateOrderCommand) Header() order.Header {
	return c.header
}

// Items returns the requested items in the order they will be stored.
func (c CreateOrderCommand) Items() []OrderItemSpec {
	return append([]OrderItemSpec(nil), c.items...)
}

func (c *CreateOrderCommand) setTenant(tc kernel.TenantContext) error {
	if err := tc.Validate(); err != nil {
		return err
	}
	c.tc = tc
	return nil
}

func (c *CreateOrderCommand) setHeader(header order.Header) error {
	if header.OrderedAt.IsZero() {
		header.OrderedAt = kernel.DateOf(time.Now())
	}
	c.header = header
	return nil
}
