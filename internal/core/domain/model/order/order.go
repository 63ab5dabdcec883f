package order

import (
	"errors"
	"time"

	"encomendas/internal/core/domain/model/catalog"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/errs"
	"encomendas/internal/pkg/guard"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is the cause reported when quoting an empty order.
	ErrOrderHasNoItems = errors.New("order has no items")
)

// Header is the caller-editable part of an order.
type Header struct {
	Responsible          string
	OrderedAt            time.Time
	ExpectedDeliveryDate *time.Time
	AdvancePaid          kernel.Money
	Notes                string
}

// ItemInput describes an item to add or replace. Product and Supplier are the
// resolved catalog entries, so their owning tenant can be checked.
type ItemInput struct {
	Product     *catalog.Product
	Supplier    *catalog.Supplier
	Quantity    int
	QuotedPrice kernel.Money
	Notes       string
}

// Order is the aggregate root of the order lifecycle. It owns its items and
// the derived total, and guards every reference against crossing tenants.
//
// Invariants kept by every method:
//   - total equals the sum of the line totals of the items it holds
//   - client, products and suppliers belong to the order's tenant
//   - status only follows the transitions defined by Status
type Order struct {
	id       kernel.UUID
	tenantID kernel.UUID
	clientID kernel.UUID
	number   int64

	responsible          string
	orderedAt            time.Time
	expectedDeliveryDate *time.Time
	advancePaid          kernel.Money
	notes                string

	status  Status
	total   kernel.Money
	items   []*Item
	version int

	guard guard.ConstructorGuard
}

// NewOrder creates an empty order in Created status for the tenant in tc.
// The order number is assigned separately with AssignNumber once every input
// has been validated.
func NewOrder(id kernel.UUID, tc kernel.TenantContext, client *catalog.Client, header Header) (*Order, error) {
	var v errs.ValidationError
	if err := id.Validate(); err != nil {
		v.Add("id", err)
	}
	if err := tc.Validate(); err != nil {
		v.Add("tenant", err)
	}

	o := &Order{
		id:       id,
		tenantID: tc.TenantID(),
		status:   Created,
		total:    kernel.ZeroMoney(),
		guard:    guard.NewConstructorGuard(),
	}
	v.Add("clientId", o.setClient(client))
	o.applyHeader(header, &v)

	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}
	return o, nil
}

// Snapshot is the persisted state of an order.
type Snapshot struct {
	ID       kernel.UUID
	TenantID kernel.UUID
	ClientID kernel.UUID
	Number   int64
	Header   Header
	Status   Status
	Total    kernel.Money
	Items    []*Item
	Version  int
}

// RestoreOrder rebuilds an order from storage. The stored total is kept as is;
// RecalculateTotal brings it back in line with the items if they drifted.
func RestoreOrder(s Snapshot) (*Order, error) {
	var v errs.ValidationError
	for field, id := range map[string]kernel.UUID{"id": s.ID, "tenantId": s.TenantID, "clientId": s.ClientID} {
		if err := id.Validate(); err != nil {
			v.Add(field, err)
		}
	}
	v.Add("status", s.Status.Validate())

	o := &Order{
		id:       s.ID,
		tenantID: s.TenantID,
		clientID: s.ClientID,
		number:   s.Number,
		status:   s.Status,
		total:    s.Total,
		items:    s.Items,
		version:  s.Version,
		guard:    guard.NewConstructorGuard(),
	}
	o.applyHeader(s.Header, &v)

	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) TenantID() kernel.UUID {
	return o.tenantID
}

func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// Number is the tenant-scoped sequential order number, zero until assigned.
func (o *Order) Number() int64 {
	return o.number
}

func (o *Order) Header() Header {
	return Header{
		Responsible:          o.responsible,
		OrderedAt:            o.orderedAt,
		ExpectedDeliveryDate: o.expectedDeliveryDate,
		AdvancePaid:          o.advancePaid,
		Notes:                o.notes,
	}
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Total() kernel.Money {
	return o.total
}

// RemainingBalance is what the client still owes. It is negative when the
// advance exceeds the total.
func (o *Order) RemainingBalance() kernel.Money {
	return o.total.Sub(o.advancePaid)
}

// Items returns a copy of the item list in insertion order.
func (o *Order) Items() []*Item {
	out := make([]*Item, len(o.items))
	copy(out, o.items)
	return out
}

func (o *Order) Item(itemID kernel.UUID) (*Item, error) {
	for _, it := range o.items {
		if it.ID().IsEqual(itemID) {
			return it, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("item", itemID)
}

// Version is the optimistic concurrency token of the stored order.
func (o *Order) Version() int {
	return o.version
}

// IncrementVersion is called by repositories after a successful write.
func (o *Order) IncrementVersion() {
	o.version++
}

// AssignNumber sets the tenant order number. It can only be done once.
func (o *Order) AssignNumber(number int64) error {
	if o.number != 0 {
		return errs.NewValueIsInvalidErrorWithCause("number", errors.New("order number is already assigned"))
	}
	if number < 1 {
		return errs.NewValueIsOutOfRangeError("number", number, 1, "unbounded")
	}
	o.number = number
	return nil
}

// AddItem validates in, appends a new item with the given id and refreshes the total.
func (o *Order) AddItem(itemID kernel.UUID, in ItemInput) (*Item, error) {
	if err := CheckItem(o.tenantID, in); err != nil {
		return nil, err
	}
	item, err := NewItem(itemID, o.id, in.fields())
	if err != nil {
		return nil, err
	}

	o.items = append(o.items, item)
	o.recalculate()
	return item, nil
}

// UpdateItem replaces the fields of an existing item and refreshes the total.
func (o *Order) UpdateItem(itemID kernel.UUID, in ItemInput) (*Item, error) {
	item, err := o.Item(itemID)
	if err != nil {
		return nil, err
	}

	if err := CheckItem(o.tenantID, in); err != nil {
		return nil, err
	}
	if err := item.update(in.fields()); err != nil {
		return nil, err
	}

	o.recalculate()
	return item, nil
}

// RemoveItem drops an item and refreshes the total. Removing the last item
// leaves the order with a zero total.
func (o *Order) RemoveItem(itemID kernel.UUID) (*Item, error) {
	for idx, it := range o.items {
		if it.ID().IsEqual(itemID) {
			o.items = append(o.items[:idx], o.items[idx+1:]...)
			o.recalculate()
			return it, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("item", itemID)
}

// RecalculateTotal replaces the held items with persisted and sets the total
// to the sum of their line totals. Calling it twice with the same items is a no-op.
func (o *Order) RecalculateTotal(persisted []*Item) error {
	for _, it := range persisted {
		if err := it.Validate(); err != nil {
			return err
		}
		if !it.OrderID().IsEqual(o.id) {
			return errs.NewValueIsInvalidErrorWithCause("items", errors.New("item belongs to another order"))
		}
	}
	o.items = append([]*Item(nil), persisted...)
	o.recalculate()
	return nil
}

// SetStatus moves the order along the status machine. Entering Quoting
// additionally requires at least one item.
func (o *Order) SetStatus(target Status) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}
	if next == Quoting && len(o.items) == 0 {
		return errs.NewStatusTransitionErrorWithCause(o.status.String(), next.String(), ErrOrderHasNoItems)
	}
	o.status = next
	return nil
}

// ForceDelivered sets Delivered regardless of the transition table and returns
// the previous status. Only delivery completion may call it.
func (o *Order) ForceDelivered() Status {
	previous := o.status
	o.status = Delivered
	return previous
}

// UpdateHeader replaces the header fields. On error the order is unchanged.
func (o *Order) UpdateHeader(header Header) error {
	var v errs.ValidationError
	next := *o
	next.applyHeader(header, &v)
	if err := v.ErrOrNil(); err != nil {
		return err
	}
	*o = next
	return nil
}

// ChangeClient points the order at another client of the same tenant.
func (o *Order) ChangeClient(client *catalog.Client) error {
	var v errs.ValidationError
	v.Add("clientId", o.setClient(client))
	return v.ErrOrNil()
}

func (o *Order) setClient(client *catalog.Client) error {
	if client == nil {
		return errs.NewValueIsRequiredError("clientId")
	}
	if !o.tenantID.IsEqual(client.TenantID()) {
		return errs.NewCrossTenantReferenceError("client", client.ID())
	}
	o.clientID = client.ID()
	return nil
}

// CheckHeader validates h without building an order.
func CheckHeader(h Header) error {
	var v errs.ValidationError
	var scratch Order
	scratch.applyHeader(h, &v)
	return v.ErrOrNil()
}

// CheckItem validates an item input for an order of tenantID without building
// the item. Product and supplier must belong to tenantID.
func CheckItem(tenantID kernel.UUID, in ItemInput) error {
	var v errs.ValidationError
	if in.Product != nil && !tenantID.IsEqual(in.Product.TenantID()) {
		v.Add("productId", errs.NewCrossTenantReferenceError("product", in.Product.ID()))
	}
	if in.Supplier != nil && !tenantID.IsEqual(in.Supplier.TenantID()) {
		v.Add("supplierId", errs.NewCrossTenantReferenceError("supplier", in.Supplier.ID()))
	}

	var fields errs.ValidationError
	var scratch Item
	scratch.apply(in.fields(), &fields)
	v.AddIfAbsent("", fields.ErrOrNil())
	return v.ErrOrNil()
}

func (o *Order) applyHeader(h Header, v *errs.ValidationError) {
	responsible, err := kernel.RequiredText("responsible", h.Responsible, kernel.MaxResponsibleLength)
	v.Add("responsible", err)
	if h.OrderedAt.IsZero() {
		v.Add("orderedAt", errs.NewValueIsRequiredError("orderedAt"))
	}
	if h.AdvancePaid.IsNegative() {
		v.Add("advancePaid", errs.NewValueIsOutOfRangeError("advancePaid", h.AdvancePaid, "0.00", "unbounded"))
	}
	notes, err := kernel.OptionalText("notes", h.Notes, 0)
	v.Add("notes", err)

	o.responsible = responsible
	o.orderedAt = kernel.DateOf(h.OrderedAt)
	o.expectedDeliveryDate = nil
	if h.ExpectedDeliveryDate != nil {
		d := kernel.DateOf(*h.ExpectedDeliveryDate)
		o.expectedDeliveryDate = &d
	}
	o.advancePaid = h.AdvancePaid
	o.notes = notes
}

func (o *Order) recalculate() {
	lines := make([]kernel.Money, 0, len(o.items))
	for _, it := range o.items {
		lines = append(lines, it.LineTotal())
	}
	o.total = kernel.Sum(lines...)
}

func (in ItemInput) fields() ItemFields {
	f := ItemFields{Quantity: in.Quantity, QuotedPrice: in.QuotedPrice, Notes: in.Notes}
	if in.Product != nil {
		f.ProductID = in.Product.ID()
	}
	if in.Supplier != nil {
		f.SupplierID = in.Supplier.ID()
	}
	return f
}
