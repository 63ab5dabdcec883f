package catalog

import (
	"errors"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var ErrSupplierIsNotConstructed = errors.New("Supplier must be created via NewSupplier")

var emailValidator = validator.New()

type SupplierFields struct {
	Code    string
	Name    string
	Contact string
	Phone   string
	Email   string
}

// Supplier is where the items of an order are sourced from.
type Supplier struct {
	entry
	contact string
	phone   string
	email   string
}

func NewSupplier(id, tenantID kernel.UUID, fields SupplierFields) (*Supplier, error) {
	var v errs.ValidationError
	s := &Supplier{entry: newEntry(id, tenantID, &v)}
	s.apply(fields, &v)
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces the editable fields. On error the supplier is left unchanged.
func (s *Supplier) Update(fields SupplierFields) error {
	var v errs.ValidationError
	next := *s
	next.apply(fields, &v)
	if err := v.ErrOrNil(); err != nil {
		return err
	}
	*s = next
	return nil
}

func (s *Supplier) Validate() error {
	if s == nil {
		return ErrSupplierIsNotConstructed
	}
	return s.validate(ErrSupplierIsNotConstructed)
}

func (s *Supplier) Contact() string {
	return s.contact
}

func (s *Supplier) Phone() string {
	return s.phone
}

func (s *Supplier) Email() string {
	return s.email
}

func (s *Supplier) Fields() SupplierFields {
	return SupplierFields{
		Code:    s.code.String(),
		Name:    s.name,
		Contact: s.contact,
		Phone:   s.phone,
		Email:   s.email,
	}
}

func (s *Supplier) apply(f SupplierFields, v *errs.ValidationError) {
	s.setCodeAndName(f.Code, f.Name, v)
	s.contact = optional(v, "contact", f.Contact, kernel.MaxContactLength)
	s.phone = optional(v, "phone", f.Phone, kernel.MaxPhoneLength)
	s.email = optional(v, "email", f.Email, 0)
	if s.email != "" {
		if err := emailValidator.Var(s.email, "email"); err != nil {
			v.Add("email", errs.NewValueIsInvalidErrorWithCause("email", err))
		}
	}
}
