package kernel

import (
	"errors"
	"strings"

	"encomendas/internal/pkg/errs"
	"encomendas/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when using a zero-value Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is where a client receives deliveries. Street and district are
// required, reference is a free-text landmark ("next to the bakery").
type Address struct { //nolint:recvcheck //using for validation
	street    string
	district  string
	reference string
	guard     guard.ConstructorGuard
}

// NewAddress validates every part and reports all violations together.
func NewAddress(street, district, reference string) (Address, error) {
	a := Address{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		a.setStreet(street),
		a.setDistrict(district),
		a.setReference(reference),
	); err != nil {
		return Address{}, err
	}

	return a, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Street() string {
	return a.street
}

func (a Address) District() string {
	return a.district
}

func (a Address) Reference() string {
	return a.reference
}

// String renders the address on one line, e.g. "Rua A, 10 - Centro (perto da praça)".
func (a Address) String() string {
	var b strings.Builder
	b.WriteString(a.street)
	if a.district != "" {
		b.WriteString(" - ")
		b.WriteString(a.district)
	}
	if a.reference != "" {
		b.WriteString(" (")
		b.WriteString(a.reference)
		b.WriteString(")")
	}
	return b.String()
}

func (a Address) IsEqual(other Address) bool {
	return a.street == other.street && a.district == other.district && a.reference == other.reference
}

func (a *Address) setStreet(street string) error {
	v, err := RequiredText("street", street, 0)
	if err != nil {
		return err
	}
	a.street = v
	return nil
}

func (a *Address) setDistrict(district string) error {
	v, err := RequiredText("district", district, MaxShortTextLength)
	if err != nil {
		return err
	}
	a.district = v
	return nil
}

func (a *Address) setReference(reference string) error {
	v, err := OptionalText("reference", reference, MaxReferenceLength)
	if err != nil {
		return err
	}
	a.reference = v
	return nil
}
