package commands

import (
	"context"
	"errors"

	"encomendas/internal/core/domain/model/catalog"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/guard"
)

var ErrUpdateCatalogEntryCommandIsNotConstructed = errors.New(
	"UpdateCatalogEntryCommand must be created via NewUpdateCatalogEntryCommand constructor",
)

// UpdateCatalogEntryCommand replaces the fields of a catalog entry.
type UpdateCatalogEntryCommand[F any] struct {
	tc     kernel.TenantContext
	id     kernel.UUID
	fields F

	guard guard.ConstructorGuard
}

type (
	UpdateClientCommand   = UpdateCatalogEntryCommand[catalog.ClientFields]
	UpdateSupplierCommand = UpdateCatalogEntryCommand[catalog.SupplierFields]
	UpdateProductCommand  = UpdateCatalogEntryCommand[catalog.ProductFields]
)

func NewUpdateCatalogEntryCommand[F any](
	tc kernel.TenantContext, id kernel.UUID, fields F,
) (UpdateCatalogEntryCommand[F], error) {
	if err := errors.Join(tc.Validate(), requireID("id", id)); err != nil {
		return UpdateCatalogEntryCommand[F]{}, err
	}
	return UpdateCatalogEntryCommand[F]{tc: tc, id: id, fields: fields, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateCatalogEntryCommand[F]) Validate() error {
	return c.guard.Validate(ErrUpdateCatalogEntryCommandIsNotConstructed)
}

func (c UpdateCatalogEntryCommand[F]) Tenant() kernel.TenantContext {
	return c.tc
}

func (c UpdateCatalogEntryCommand[F]) ID() kernel.UUID {
	return c.id
}

func (c UpdateCatalogEntryCommand[F]) Fields() F {
	return c.fields
}

// UpdateCatalogEntryCommandHandler edits an entry of the acting tenant.
// Entries of other tenants are reported as not found.
type UpdateCatalogEntryCommandHandler[T catalogEntry[F], F any] struct {
	uowFactory UoWFactory
	kind       CatalogKind[T, F]
}

type (
	UpdateClientCommandHandler   = UpdateCatalogEntryCommandHandler[*catalog.Client, catalog.ClientFields]
	UpdateSupplierCommandHandler = UpdateCatalogEntryCommandHandler[*catalog.Supplier, catalog.SupplierFields]
	UpdateProductCommandHandler  = UpdateCatalogEntryCommandHandler[*catalog.Product, catalog.ProductFields]
)

func NewUpdateCatalogEntryCommandHandler[T catalogEntry[F], F any](
	uowFactory UoWFactory, kind CatalogKind[T, F],
) UpdateCatalogEntryCommandHandler[T, F] {
	return UpdateCatalogEntryCommandHandler[T, F]{uowFactory: uowFactory, kind: kind}
}

func (h UpdateCatalogEntryCommandHandler[T, F]) Handle(ctx context.Context, cmd UpdateCatalogEntryCommand[F]) (T, error) {
	var zero T
	if err := cmd.Validate(); err != nil {
		return zero, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return zero, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tenantID := cmd.Tenant().TenantID()
	repo := h.kind.repo(uow)
	entry, err := repo.Get(ctx, tenantID, cmd.ID())
	if err != nil {
		return zero, err
	}

	if err = entry.Update(cmd.Fields()); err != nil {
		return zero, err
	}
	if err = h.kind.ensureCodeFree(ctx, repo, tenantID, entry.Code(), entry.ID()); err != nil {
		return zero, err
	}
	if err = repo.Update(ctx, entry); err != nil {
		return zero, err
	}

	if err = uow.Commit(ctx); err != nil {
		return zero, err
	}

	return entry, nil
}
