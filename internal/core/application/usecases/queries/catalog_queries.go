package queries

import (
	"context"
	"errors"

	"encomendas/internal/core/domain/model/catalog"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/ports"
	"encomendas/internal/pkg/guard"
)

var (
	ErrGetCatalogEntryQueryIsNotConstructed = errors.New(
		"GetCatalogEntryQuery must be created via NewGetCatalogEntryQuery constructor",
	)
	ErrListCatalogEntriesQueryIsNotConstructed = errors.New(
		"ListCatalogEntriesQuery must be created via NewListCatalogEntriesQuery constructor",
	)
)

// GetCatalogEntryQuery reads one client, supplier or product of the acting
// tenant. For products it doubles as the price lookup used while quoting.
type GetCatalogEntryQuery struct {
	tc kernel.TenantContext
	id kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCatalogEntryQuery(tc kernel.TenantContext, id kernel.UUID) (GetCatalogEntryQuery, error) {
	if err := errors.Join(tc.Validate(), requireID("id", id)); err != nil {
		return GetCatalogEntryQuery{}, err
	}
	return GetCatalogEntryQuery{tc: tc, id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCatalogEntryQuery) Validate() error {
	return q.guard.Validate(ErrGetCatalogEntryQueryIsNotConstructed)
}

// GetCatalogEntryQueryHandler serves GetCatalogEntryQuery from a catalog repository.
type GetCatalogEntryQueryHandler[T any] struct {
	repo ports.CatalogRepository[T]
}

func NewGetCatalogEntryQueryHandler[T any](repo ports.CatalogRepository[T]) GetCatalogEntryQueryHandler[T] {
	return GetCatalogEntryQueryHandler[T]{repo: repo}
}

// Handle returns errs.ErrObjectNotFound for entries of other tenants.
func (h GetCatalogEntryQueryHandler[T]) Handle(ctx context.Context, query GetCatalogEntryQuery) (T, error) {
	if err := query.Validate(); err != nil {
		var zero T
		return zero, err
	}
	return h.repo.Get(ctx, query.tc.TenantID(), query.id)
}

// ListCatalogEntriesQuery pages through one catalog of the acting tenant,
// ordered by name.
type ListCatalogEntriesQuery struct {
	tc     kernel.TenantContext
	filter catalog.Filter

	guard guard.ConstructorGuard
}

func NewListCatalogEntriesQuery(tc kernel.TenantContext, filter catalog.Filter) (ListCatalogEntriesQuery, error) {
	if err := tc.Validate(); err != nil {
		return ListCatalogEntriesQuery{}, err
	}
	return ListCatalogEntriesQuery{tc: tc, filter: filter.Normalize(), guard: guard.NewConstructorGuard()}, nil
}

func (q ListCatalogEntriesQuery) Validate() error {
	return q.guard.Validate(ErrListCatalogEntriesQueryIsNotConstructed)
}

func (q ListCatalogEntriesQuery) Filter() catalog.Filter {
	return q.filter
}

// CatalogPage is one page of catalog entries plus the number of matches.
type CatalogPage[T any] struct {
	Entries []T
	Total   int64
	Limit   int
	Offset  int
}

type ListCatalogEntriesQueryHandler[T any] struct {
	repo ports.CatalogRepository[T]
}

func NewListCatalogEntriesQueryHandler[T any](repo ports.CatalogRepository[T]) ListCatalogEntriesQueryHandler[T] {
	return ListCatalogEntriesQueryHandler[T]{repo: repo}
}

func (h ListCatalogEntriesQueryHandler[T]) Handle(ctx context.Context, query ListCatalogEntriesQuery) (*CatalogPage[T], error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries, total, err := h.repo.List(ctx, query.tc.TenantID(), query.filter)
	if err != nil {
		return nil, err
	}
	return &CatalogPage[T]{Entries: entries, Total: total, Limit: query.filter.Limit, Offset: query.filter.Offset}, nil
}
