package order

import (
	"errors"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/errs"
	"encomendas/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem")

// Item is one line of an order: a quantity of a product sourced from a
// supplier at a quoted unit price. LineTotal is always Quantity × QuotedPrice.
type Item struct {
	id          kernel.UUID
	orderID     kernel.UUID
	productID   kernel.UUID
	supplierID  kernel.UUID
	quantity    int
	quotedPrice kernel.Money
	lineTotal   kernel.Money
	notes       string
	guard       guard.ConstructorGuard
}

// ItemFields is the caller-editable part of an item.
type ItemFields struct {
	ProductID   kernel.UUID
	SupplierID  kernel.UUID
	Quantity    int
	QuotedPrice kernel.Money
	Notes       string
}

// NewItem validates fields and computes the line total. Violations are
// reported together as an errs.ValidationError.
func NewItem(id, orderID kernel.UUID, fields ItemFields) (*Item, error) {
	var v errs.ValidationError
	if err := id.Validate(); err != nil {
		v.Add("id", err)
	}
	if err := orderID.Validate(); err != nil {
		v.Add("orderId", err)
	}

	item := &Item{id: id, orderID: orderID, guard: guard.NewConstructorGuard()}
	item.apply(fields, &v)
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}
	return item, nil
}

// RestoreItem rebuilds a persisted item. The line total is recomputed rather
// than trusted.
func RestoreItem(id, orderID kernel.UUID, fields ItemFields) (*Item, error) {
	return NewItem(id, orderID, fields)
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) OrderID() kernel.UUID {
	return i.orderID
}

func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

func (i *Item) SupplierID() kernel.UUID {
	return i.supplierID
}

func (i *Item) Quantity() int {
	return i.quantity
}

func (i *Item) QuotedPrice() kernel.Money {
	return i.quotedPrice
}

func (i *Item) LineTotal() kernel.Money {
	return i.lineTotal
}

func (i *Item) Notes() string {
	return i.notes
}

func (i *Item) Fields() ItemFields {
	return ItemFields{
		ProductID:   i.productID,
		SupplierID:  i.supplierID,
		Quantity:    i.quantity,
		QuotedPrice: i.quotedPrice,
		Notes:       i.notes,
	}
}

func (i *Item) update(fields ItemFields) error {
	var v errs.ValidationError
	next := *i
	next.apply(fields, &v)
	if err := v.ErrOrNil(); err != nil {
		return err
	}
	*i = next
	return nil
}

func (i *Item) apply(f ItemFields, v *errs.ValidationError) {
	if err := f.ProductID.Validate(); err != nil {
		v.Add("productId", err)
	}
	if err := f.SupplierID.Validate(); err != nil {
		v.Add("supplierId", err)
	}
	if f.Quantity < 1 {
		v.Add("quantity", errs.NewInvalidQuantityOrPriceError("quantity", f.Quantity))
	}
	if !f.QuotedPrice.IsPositive() {
		v.Add("quotedPrice", errs.NewInvalidQuantityOrPriceError("quotedPrice", f.QuotedPrice))
	}
	notes, err := kernel.OptionalText("notes", f.Notes, 0)
	v.Add("notes", err)

	i.productID = f.ProductID
	i.supplierID = f.SupplierID
	i.quantity = f.Quantity
	i.quotedPrice = f.QuotedPrice
	i.notes = notes
	i.lineTotal = f.QuotedPrice.Times(f.Quantity)
}
