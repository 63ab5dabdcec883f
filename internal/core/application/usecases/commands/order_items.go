package commands

import (
	"context"
	"errors"
	"strconv"

	"encomendas/internal/core/domain/model/catalog"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/core/ports"
	"encomendas/internal/pkg/errs"
)

// OrderItemSpec is an item as supplied by the caller, with catalog entries
// given by id.
type OrderItemSpec struct {
	ProductID   kernel.UUID
	SupplierID  kernel.UUID
	Quantity    int
	QuotedPrice kernel.Money
	Notes       string
}

type itemReferenceRepos interface {
	ProductRepoFactory
	SupplierRepoFactory
}

// resolveItem loads the product and supplier of spec and validates the item
// for tenantID. Violations are recorded in v under path; only storage
// failures are returned.
func resolveItem(
	ctx context.Context, repos itemReferenceRepos, tenantID kernel.UUID,
	spec OrderItemSpec, path string, v *errs.ValidationError,
) (order.ItemInput, error) {
	in := order.ItemInput{Quantity: spec.Quantity, QuotedPrice: spec.QuotedPrice, Notes: spec.Notes}

	product, err := findReference(ctx, repos.ProductRepository(), spec.ProductID, path, "productId", v)
	if err != nil {
		return order.ItemInput{}, err
	}
	supplier, err := findReference(ctx, repos.SupplierRepository(), spec.SupplierID, path, "supplierId", v)
	if err != nil {
		return order.ItemInput{}, err
	}
	in.Product = product
	in.Supplier = supplier

	v.AddIfAbsent(path, order.CheckItem(tenantID, in))
	return in, nil
}

// resolveClient loads a client referenced by an order and checks that it
// belongs to the acting tenant.
func resolveClient(
	ctx context.Context, repo ports.ClientRepository, tc kernel.TenantContext,
	clientID kernel.UUID, v *errs.ValidationError,
) (*catalog.Client, error) {
	client, err := findReference(ctx, repo, clientID, "", "clientId", v)
	if err != nil || client == nil {
		return nil, err
	}
	if err = tc.RequireOwnership("client", client.ID(), client.TenantID()); err != nil {
		v.Add("clientId", err)
		return nil, nil
	}
	return client, nil
}

// findReference looks up a referenced catalog entry whatever its tenant.
// A missing or zero id is a violation on field, not an error.
func findReference[T any](
	ctx context.Context, repo ports.CatalogRepository[T], id kernel.UUID,
	path, field string, v *errs.ValidationError,
) (T, error) {
	var zero T
	if err := id.Validate(); err != nil {
		v.Add(path, errs.NewFieldError(field, errs.NewValueIsRequiredErrorWithCause(field, err)))
		return zero, nil
	}

	entry, err := repo.Find(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		v.Add(path, errs.NewFieldError(field, err))
		return zero, nil
	}
	if err != nil {
		return zero, err
	}
	return entry, nil
}

// recalculateTotal re-reads the persisted items of o, recomputes its total
// and writes the order back.
func recalculateTotal(ctx context.Context, repo ports.OrderRepository, o *order.Order) error {
	items, err := repo.ListItems(ctx, o.ID())
	if err != nil {
		return err
	}
	if err = o.RecalculateTotal(items); err != nil {
		return err
	}
	return repo.Update(ctx, o)
}

func itemPath(idx int) string {
	return "items[" + strconv.Itoa(idx) + "]"
}

func requireID(field string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(field, err)
	}
	return nil
}

// orderTarget addresses an existing order of the acting tenant.
type orderTarget struct {
	tc      kernel.TenantContext
	orderID kernel.UUID
}

func newOrderTarget(tc kernel.TenantContext, orderID kernel.UUID) (orderTarget, error) {
	if err := errors.Join(tc.Validate(), requireID("orderId", orderID)); err != nil {
		return orderTarget{}, err
	}
	return orderTarget{tc: tc, orderID: orderID}, nil
}

func (t orderTarget) Tenant() kernel.TenantContext {
	return t.tc
}

func (t orderTarget) OrderID() kernel.UUID {
	return t.orderID
}
