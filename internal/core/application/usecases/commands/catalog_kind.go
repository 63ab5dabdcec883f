package commands

import (
	"context"

	"encomendas/internal/core/domain/model/catalog"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/ports"
	"encomendas/internal/pkg/errs"
)

type catalogEntry[F any] interface {
	ID() kernel.UUID
	Code() catalog.Code
	Update(fields F) error
}

// CatalogKind binds the catalog command handlers to one entity type: its
// repository, its constructor and how orders reference it.
type CatalogKind[T catalogEntry[F], F any] struct {
	name      string
	reference ports.ReferenceKind
	repo      func(uow UoW) ports.CatalogRepository[T]
	build     func(id, tenantID kernel.UUID, fields F) (T, error)
}

// Name is the entity name used in error messages.
func (k CatalogKind[T, F]) Name() string {
	return k.name
}

var (
	ClientKind = CatalogKind[*catalog.Client, catalog.ClientFields]{
		name:      "client",
		reference: ports.ClientReference,
		repo:      func(uow UoW) ports.ClientRepository { return uow.ClientRepository() },
		build:     catalog.NewClient,
	}

	SupplierKind = CatalogKind[*catalog.Supplier, catalog.SupplierFields]{
		name:      "supplier",
		reference: ports.SupplierReference,
		repo:      func(uow UoW) ports.SupplierRepository { return uow.SupplierRepository() },
		build:     catalog.NewSupplier,
	}

	ProductKind = CatalogKind[*catalog.Product, catalog.ProductFields]{
		name:      "product",
		reference: ports.ProductReference,
		repo:      func(uow UoW) ports.ProductRepository { return uow.ProductRepository() },
		build:     catalog.NewProduct,
	}
)

// ensureCodeFree fails with a DuplicateCodeError when another entry of the
// tenant already uses code.
func (k CatalogKind[T, F]) ensureCodeFree(
	ctx context.Context, repo ports.CatalogRepository[T], tenantID kernel.UUID, code catalog.Code, exceptID kernel.UUID,
) error {
	taken, err := repo.CodeTaken(ctx, tenantID, code, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return errs.NewDuplicateCodeError(k.name, code.String())
	}
	return nil
}
