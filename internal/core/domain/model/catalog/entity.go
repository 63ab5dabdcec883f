package catalog

import (
	"errors"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/errs"
	"encomendas/internal/pkg/guard"
)

// entry holds what clients, suppliers and products have in common.
type entry struct {
	id       kernel.UUID
	tenantID kernel.UUID
	code     Code
	name     string
	guard    guard.ConstructorGuard
}

func newEntry(id, tenantID kernel.UUID, v *errs.ValidationError) entry {
	e := entry{guard: guard.NewConstructorGuard()}
	if err := id.Validate(); err != nil {
		v.Add("id", err)
	}
	if err := tenantID.Validate(); err != nil {
		v.Add("tenantId", err)
	}
	e.id = id
	e.tenantID = tenantID
	return e
}

func (e *entry) setCodeAndName(code, name string, v *errs.ValidationError) {
	c, err := NewCode(code)
	v.Add("code", err)
	n, err := kernel.RequiredText("name", name, kernel.MaxNameLength)
	v.Add("name", err)
	e.code = c
	e.name = n
}

func (e entry) validate(notConstructed error) error {
	return errors.Join(e.guard.Validate(notConstructed), e.code.Validate())
}

func (e entry) ID() kernel.UUID {
	return e.id
}

// TenantID is the tenant that owns the entry.
func (e entry) TenantID() kernel.UUID {
	return e.tenantID
}

func (e entry) Code() Code {
	return e.code
}

func (e entry) Name() string {
	return e.name
}

// optional validates an optional text field and records any violation under field.
func optional(v *errs.ValidationError, field, value string, maxLen int) string {
	s, err := kernel.OptionalText(field, value, maxLen)
	v.Add(field, err)
	return s
}
