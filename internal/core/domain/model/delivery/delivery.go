package delivery

import (
	"errors"
	"fmt"
	"time"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/errs"
	"encomendas/internal/pkg/guard"
)

// DefaultResponsible is recorded until someone is put in charge of the delivery.
const DefaultResponsible = "A definir"

// TimeLayout is the format of DeliveredTime.
const TimeLayout = "15:04"

var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery")

// Delivery is the delivery record of an order, one per order. It starts empty
// and is filled in by Finalize. Once it has both a delivered date and the
// client's signature it is complete, which completes the order too.
type Delivery struct {
	id            kernel.UUID
	tenantID      kernel.UUID
	orderID       kernel.UUID
	responsible   string
	scheduledDate *time.Time
	deliveredDate *time.Time
	deliveredTime string
	deliveredBy   string
	signature     string
	notes         string
	realizedAt    *time.Time
	guard         guard.ConstructorGuard
}

// Fields is a partial update: nil pointers leave the current value untouched.
type Fields struct {
	Responsible   *string
	ScheduledDate *time.Time
	DeliveredDate *time.Time
	DeliveredTime *string
	DeliveredBy   *string
	Signature     *string
	Notes         *string
}

// State is the full persisted state of a delivery.
type State struct {
	Responsible   string
	ScheduledDate *time.Time
	DeliveredDate *time.Time
	DeliveredTime string
	DeliveredBy   string
	Signature     string
	Notes         string
	RealizedAt    *time.Time
}

// NewDelivery creates an empty delivery for an order.
func NewDelivery(id, tenantID, orderID kernel.UUID) (*Delivery, error) {
	var v errs.ValidationError
	for _, ref := range []struct {
		field string
		id    kernel.UUID
	}{{"id", id}, {"tenantId", tenantID}, {"orderId", orderID}} {
		if err := ref.id.Validate(); err != nil {
			v.Add(ref.field, err)
		}
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	return &Delivery{
		id:          id,
		tenantID:    tenantID,
		orderID:     orderID,
		responsible: DefaultResponsible,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreDelivery rebuilds a persisted delivery.
func RestoreDelivery(id, tenantID, orderID kernel.UUID, s State) (*Delivery, error) {
	d, err := NewDelivery(id, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	d.responsible = s.Responsible
	d.scheduledDate = s.ScheduledDate
	d.deliveredDate = s.DeliveredDate
	d.deliveredTime = s.DeliveredTime
	d.deliveredBy = s.DeliveredBy
	d.signature = s.Signature
	d.notes = s.Notes
	d.realizedAt = s.RealizedAt
	return d, nil
}

func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

func (d *Delivery) ID() kernel.UUID {
	return d.id
}

func (d *Delivery) TenantID() kernel.UUID {
	return d.tenantID
}

func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

func (d *Delivery) State() State {
	return State{
		Responsible:   d.responsible,
		ScheduledDate: d.scheduledDate,
		DeliveredDate: d.deliveredDate,
		DeliveredTime: d.deliveredTime,
		DeliveredBy:   d.deliveredBy,
		Signature:     d.signature,
		Notes:         d.notes,
		RealizedAt:    d.realizedAt,
	}
}

// IsCompleted reports whether the delivery has both a delivered date and a signature.
func (d *Delivery) IsCompleted() bool {
	return d.deliveredDate != nil && d.signature != ""
}

// RealizedAt is when the delivery completed its order, nil before that.
func (d *Delivery) RealizedAt() *time.Time {
	return d.realizedAt
}

// Finalize merges f into the delivery and validates the result. On error the
// delivery is left unchanged.
func (d *Delivery) Finalize(f Fields) error {
	next := *d
	next.merge(f)
	if err := next.check(); err != nil {
		return err
	}
	*d = next
	return nil
}

// MarkRealized stamps the completion time the first time it is called.
func (d *Delivery) MarkRealized(at time.Time) {
	if d.realizedAt != nil {
		return
	}
	at = at.UTC()
	d.realizedAt = &at
}

func (d *Delivery) merge(f Fields) {
	if f.Responsible != nil {
		d.responsible = *f.Responsible
	}
	if f.ScheduledDate != nil {
		day := kernel.DateOf(*f.ScheduledDate)
		d.scheduledDate = &day
	}
	if f.DeliveredDate != nil {
		day := kernel.DateOf(*f.DeliveredDate)
		d.deliveredDate = &day
	}
	if f.DeliveredTime != nil {
		d.deliveredTime = *f.DeliveredTime
	}
	if f.DeliveredBy != nil {
		d.deliveredBy = *f.DeliveredBy
	}
	if f.Signature != nil {
		d.signature = *f.Signature
	}
	if f.Notes != nil {
		d.notes = *f.Notes
	}
}

func (d *Delivery) check() error {
	var v errs.ValidationError

	responsible, err := kernel.OptionalText("responsible", d.responsible, kernel.MaxResponsibleLength)
	switch {
	case err != nil:
		v.Add("responsible", err)
	case responsible == "":
		v.Add("responsible", errs.NewMissingRequiredDeliveryFieldError("responsible"))
	}
	d.responsible = responsible

	d.deliveredTime, err = kernel.OptionalText("deliveredTime", d.deliveredTime, 0)
	v.Add("deliveredTime", err)
	if d.deliveredTime != "" {
		if _, err := time.Parse(TimeLayout, d.deliveredTime); err != nil {
			v.Add("deliveredTime", errs.NewValueIsInvalidErrorWithCause("deliveredTime",
				fmt.Errorf("%q is not HH:MM", d.deliveredTime)))
		}
		if d.deliveredDate == nil {
			v.Add("deliveredDate", errs.NewMissingRequiredDeliveryFieldError("deliveredDate"))
		}
	}

	d.deliveredBy, err = kernel.OptionalText("deliveredBy", d.deliveredBy, kernel.MaxResponsibleLength)
	v.Add("deliveredBy", err)
	d.signature, err = kernel.OptionalText("signature", d.signature, 0)
	v.Add("signature", err)
	d.notes, err = kernel.OptionalText("notes", d.notes, 0)
	v.Add("notes", err)

	return v.ErrOrNil()
}
