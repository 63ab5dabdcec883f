package commands

import (
	"context"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/pkg/errs"
)

// CreateOrderCommandHandler opens orders. The client and every item are
// validated against the catalog before anything is written; the order then
// receives the next number of its tenant and is stored in criada status with
// its items and total.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrCrossTenantReference) {
//	    // a product, supplier or the client belongs to another tenant
//	}
//	fmt.Printf("order #%d total %s", created.Number(), created.Total())
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the order. Validation failures come back as one
// *errs.ValidationError naming every offending field, for example
// "items[1].quantity", and nothing is persisted.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	tc := cmd.Tenant()
	var v errs.ValidationError

	client, err := resolveClient(ctx, uow.ClientRepository(), tc, cmd.ClientID(), &v)
	if err != nil {
		return nil, err
	}
	v.AddIfAbsent("", order.CheckHeader(cmd.Header()))

	specs := cmd.Items()
	inputs := make([]order.ItemInput, 0, len(specs))
	for idx, spec := range specs {
		in, resolveErr := resolveItem(ctx, uow, tc.TenantID(), spec, itemPath(idx), &v)
		if resolveErr != nil {
			return nil, resolveErr
		}
		inputs = append(inputs, in)
	}

	if err = v.ErrOrNil(); err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	created, err := order.NewOrder(kernel.NewUUID(), tc, client, cmd.Header())
	if err != nil {
		return nil, err
	}

	number, err := orderRepo.NextNumber(ctx, tc.TenantID())
	if err != nil {
		return nil, err
	}
	if err = created.AssignNumber(number); err != nil {
		return nil, err
	}

	for _, in := range inputs {
		if _, err = created.AddItem(kernel.NewUUID(), in); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
