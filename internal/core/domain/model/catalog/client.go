package catalog

import (
	"errors"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/errs"
)

var ErrClientIsNotConstructed = errors.New("Client must be created via NewClient")

// ClientFields is the editable state of a client.
type ClientFields struct {
	Code      string
	Name      string
	Street    string
	District  string
	Reference string
	Phone     string
}

// Client is a customer orders are placed for and delivered to.
type Client struct {
	entry
	address kernel.Address
	phone   string
}

func NewClient(id, tenantID kernel.UUID, fields ClientFields) (*Client, error) {
	var v errs.ValidationError
	c := &Client{entry: newEntry(id, tenantID, &v)}
	c.apply(fields, &v)
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the editable fields. On error the client is left unchanged.
func (c *Client) Update(fields ClientFields) error {
	var v errs.ValidationError
	next := *c
	next.apply(fields, &v)
	if err := v.ErrOrNil(); err != nil {
		return err
	}
	*c = next
	return nil
}

func (c *Client) Validate() error {
	if c == nil {
		return ErrClientIsNotConstructed
	}
	return c.validate(ErrClientIsNotConstructed)
}

func (c *Client) Address() kernel.Address {
	return c.address
}

func (c *Client) Phone() string {
	return c.phone
}

func (c *Client) Fields() ClientFields {
	return ClientFields{
		Code:      c.code.String(),
		Name:      c.name,
		Street:    c.address.Street(),
		District:  c.address.District(),
		Reference: c.address.Reference(),
		Phone:     c.phone,
	}
}

func (c *Client) apply(f ClientFields, v *errs.ValidationError) {
	c.setCodeAndName(f.Code, f.Name, v)
	addr, err := kernel.NewAddress(f.Street, f.District, f.Reference)
	v.Add("address", err)
	c.address = addr
	c.phone = optional(v, "phone", f.Phone, kernel.MaxPhoneLength)
}
