package commands

import (
	"context"
	"errors"

	"encomendas/internal/core/domain/model/catalog"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/guard"
)

var ErrCreateCatalogEntryCommandIsNotConstructed = errors.New(
	"CreateCatalogEntryCommand must be created via NewCreateCatalogEntryCommand constructor",
)

// CreateCatalogEntryCommand registers a client, supplier or product for the
// acting tenant. F is the fields type of the entity.
type CreateCatalogEntryCommand[F any] struct {
	tc     kernel.TenantContext
	fields F

	guard guard.ConstructorGuard
}

type (
	CreateClientCommand   = CreateCatalogEntryCommand[catalog.ClientFields]
	CreateSupplierCommand = CreateCatalogEntryCommand[catalog.SupplierFields]
	CreateProductCommand  = CreateCatalogEntryCommand[catalog.ProductFields]
)

func NewCreateCatalogEntryCommand[F any](tc kernel.TenantContext, fields F) (CreateCatalogEntryCommand[F], error) {
	if err := tc.Validate(); err != nil {
		return CreateCatalogEntryCommand[F]{}, err
	}
	return CreateCatalogEntryCommand[F]{tc: tc, fields: fields, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateCatalogEntryCommand[F]) Validate() error {
	return c.guard.Validate(ErrCreateCatalogEntryCommandIsNotConstructed)
}

func (c CreateCatalogEntryCommand[F]) Tenant() kernel.TenantContext {
	return c.tc
}

func (c CreateCatalogEntryCommand[F]) Fields() F {
	return c.fields
}

// CreateCatalogEntryCommandHandler validates and stores a new catalog entry.
// A code already used by the same entity type in the tenant fails with
// errs.ErrDuplicateCode, whether it is caught by the pre-check or, after a
// lost race, by the unique index.
//
// Example:
//
//	handler := NewCreateCatalogEntryCommandHandler(uowFactory, ProductKind)
//	cmd, _ := NewCreateCatalogEntryCommand(tc, catalog.ProductFields{
//	    Code: "P001", Name: "Bolo de cenoura", BasePrice: kernel.MustMoney("35.00"),
//	})
//	product, err := handler.Handle(ctx, cmd)
type CreateCatalogEntryCommandHandler[T catalogEntry[F], F any] struct {
	uowFactory UoWFactory
	kind       CatalogKind[T, F]
}

type (
	CreateClientCommandHandler   = CreateCatalogEntryCommandHandler[*catalog.Client, catalog.ClientFields]
	CreateSupplierCommandHandler = CreateCatalogEntryCommandHandler[*catalog.Supplier, catalog.SupplierFields]
	CreateProductCommandHandler  = CreateCatalogEntryCommandHandler[*catalog.Product, catalog.ProductFields]
)

func NewCreateCatalogEntryCommandHandler[T catalogEntry[F], F any](
	uowFactory UoWFactory, kind CatalogKind[T, F],
) CreateCatalogEntryCommandHandler[T, F] {
	return CreateCatalogEntryCommandHandler[T, F]{uowFactory: uowFactory, kind: kind}
}

func (h CreateCatalogEntryCommandHandler[T, F]) Handle(ctx context.Context, cmd CreateCatalogEntryCommand[F]) (T, error) {
	var zero T
	if err := cmd.Validate(); err != nil {
		return zero, err
	}

	tenantID := cmd.Tenant().TenantID()
	entry, err := h.kind.build(kernel.NewUUID(), tenantID, cmd.Fields())
	if err != nil {
		return zero, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return zero, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := h.kind.repo(uow)
	if err = h.kind.ensureCodeFree(ctx, repo, tenantID, entry.Code(), kernel.UUID{}); err != nil {
		return zero, err
	}
	if err = repo.Add(ctx, entry); err != nil {
		return zero, err
	}

	if err = uow.Commit(ctx); err != nil {
		return zero, err
	}

	return entry, nil
}
