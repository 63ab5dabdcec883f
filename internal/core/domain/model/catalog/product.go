package catalog

import (
	"errors"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/errs"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct")

type ProductFields struct {
	Code        string
	Name        string
	Description string
	Category    string
	BasePrice   kernel.Money
}

// Product is a catalog item with a reference price. Orders quote their own
// price per item; BasePrice is only a suggestion.
type Product struct {
	entry
	description string
	category    string
	basePrice   kernel.Money
}

func NewProduct(id, tenantID kernel.UUID, fields ProductFields) (*Product, error) {
	var v errs.ValidationError
	p := &Product{entry: newEntry(id, tenantID, &v)}
	p.apply(fields, &v)
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the editable fields. On error the product is left unchanged.
func (p *Product) Update(fields ProductFields) error {
	var v errs.ValidationError
	next := *p
	next.apply(fields, &v)
	if err := v.ErrOrNil(); err != nil {
		return err
	}
	*p = next
	return nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.validate(ErrProductIsNotConstructed)
}

func (p *Product) Description() string {
	return p.description
}

func (p *Product) Category() string {
	return p.category
}

func (p *Product) BasePrice() kernel.Money {
	return p.basePrice
}

func (p *Product) Fields() ProductFields {
	return ProductFields{
		Code:        p.code.String(),
		Name:        p.name,
		Description: p.description,
		Category:    p.category,
		BasePrice:   p.basePrice,
	}
}

func (p *Product) apply(f ProductFields, v *errs.ValidationError) {
	p.setCodeAndName(f.Code, f.Name, v)
	p.description = optional(v, "description", f.Description, 0)
	p.category = optional(v, "category", f.Category, kernel.MaxShortTextLength)
	if !f.BasePrice.IsPositive() {
		v.Add("basePrice", errs.NewInvalidPriceError(f.BasePrice))
	}
	p.basePrice = f.BasePrice
}
