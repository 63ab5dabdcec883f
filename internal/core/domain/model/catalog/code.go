package catalog

import (
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/errs"
	"encomendas/internal/pkg/guard"
)

var ErrCodeIsNotConstructed = errs.NewValueIsRequiredError("code must be created via NewCode")

// Code is the short human identifier of a catalog entry ("C001", "FORN-3").
// Codes are compared exactly after trimming surrounding spaces.
type Code struct {
	value string
	guard guard.ConstructorGuard
}

func NewCode(value string) (Code, error) {
	v, err := kernel.RequiredText("code", value, kernel.MaxCodeLength)
	if err != nil {
		return Code{}, err
	}
	return Code{value: v, guard: guard.NewConstructorGuard()}, nil
}

func (c Code) Validate() error {
	return c.guard.Validate(ErrCodeIsNotConstructed)
}

func (c Code) String() string {
	return c.value
}

func (c Code) IsEqual(other Code) bool {
	return c.value == other.value
}
