package queries

import (
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/errs"
)

func requireID(field string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(field, err)
	}
	return nil
}
