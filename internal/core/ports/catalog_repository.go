// Package ports defines the repository contracts of the encomendas domain.
// Every lookup of an addressed entity takes the acting tenant and reports
// entities of other tenants as not found.
package ports

import (
	"context"

	"encomendas/internal/core/domain/model/catalog"
	"encomendas/internal/core/domain/model/kernel"
)

// CatalogRepository is the persistence contract shared by clients, suppliers
// and products.
type CatalogRepository[T any] interface {
	// Add persists a new entry. A code already used in the tenant fails with
	// errs.ErrDuplicateCode.
	Add(ctx context.Context, entry T) error

	// Update persists changes to an existing entry.
	Update(ctx context.Context, entry T) error

	// Get returns the entry with id owned by tenantID, or errs.ErrObjectNotFound.
	Get(ctx context.Context, tenantID, id kernel.UUID) (T, error)

	// Find returns the entry with id whatever its tenant. It serves reference
	// checks, where an entry of another tenant must be told apart from a
	// missing one.
	Find(ctx context.Context, id kernel.UUID) (T, error)

	// List returns one page of the tenant's entries ordered by name, plus the
	// total number of matches.
	List(ctx context.Context, tenantID kernel.UUID, filter catalog.Filter) ([]T, int64, error)

	// Delete removes the entry with id owned by tenantID.
	Delete(ctx context.Context, tenantID, id kernel.UUID) error

	// CodeTaken reports whether another entry of the tenant, other than
	// exceptID, already uses code. Pass a zero exceptID on create.
	CodeTaken(ctx context.Context, tenantID kernel.UUID, code catalog.Code, exceptID kernel.UUID) (bool, error)
}

type (
	ClientRepository   = CatalogRepository[*catalog.Client]
	SupplierRepository = CatalogRepository[*catalog.Supplier]
	ProductRepository  = CatalogRepository[*catalog.Product]
)
