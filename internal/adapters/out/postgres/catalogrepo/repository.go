package catalogrepo

import (
	"context"
	"errors"
	"strings"

	"encomendas/internal/core/domain/model/catalog"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// entry is what the repository needs from a catalog entity.
type entry interface {
	ID() kernel.UUID
	TenantID() kernel.UUID
	Code() catalog.Code
	Validate() error
}

// mapping binds an entity type to its table.
type mapping[T entry, D any] struct {
	entity        string
	searchColumns []string
	fromDomain    func(T) D
	toDomain      func(D) (T, error)
}

// GormCatalogRepository implements ports.CatalogRepository using GORM.
type GormCatalogRepository[T entry, D any] struct {
	db      *gorm.DB
	tracker aggregateTracker
	m       mapping[T, D]
}

func NewGormClientRepository(db *gorm.DB, tracker aggregateTracker) *GormCatalogRepository[*catalog.Client, ClientDTO] {
	return &GormCatalogRepository[*catalog.Client, ClientDTO]{db: db, tracker: tracker, m: mapping[*catalog.Client, ClientDTO]{
		entity:        "client",
		searchColumns: []string{"code", "name", "address_street", "address_district"},
		fromDomain:    clientFromDomain,
		toDomain:      clientToDomain,
	}}
}

func NewGormSupplierRepository(db *gorm.DB, tracker aggregateTracker) *GormCatalogRepository[*catalog.Supplier, SupplierDTO] {
	return &GormCatalogRepository[*catalog.Supplier, SupplierDTO]{db: db, tracker: tracker, m: mapping[*catalog.Supplier, SupplierDTO]{
		entity:        "supplier",
		searchColumns: []string{"code", "name"},
		fromDomain:    supplierFromDomain,
		toDomain:      supplierToDomain,
	}}
}

func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormCatalogRepository[*catalog.Product, ProductDTO] {
	return &GormCatalogRepository[*catalog.Product, ProductDTO]{db: db, tracker: tracker, m: mapping[*catalog.Product, ProductDTO]{
		entity:        "product",
		searchColumns: []string{"code", "name"},
		fromDomain:    productFromDomain,
		toDomain:      productToDomain,
	}}
}

// Add saves a new entry. A unique index violation on (tenant_id, code) is
// reported as a DuplicateCodeError.
func (r *GormCatalogRepository[T, D]) Add(ctx context.Context, entry T) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := r.m.fromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return r.translate(entry, err)
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

// Update overwrites every editable column of an existing entry.
func (r *GormCatalogRepository[T, D]) Update(ctx context.Context, entry T) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := r.m.fromDomain(entry)
	result := r.db.WithContext(ctx).
		Model(new(D)).
		Where("id = ? AND tenant_id = ?", entry.ID().Bytes(), entry.TenantID().Bytes()).
		Select("*").
		Omit("id", "tenant_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return r.translate(entry, result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(r.m.entity, entry.ID().String())
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

// Get retrieves an entry of tenantID. Entries of other tenants are not found.
func (r *GormCatalogRepository[T, D]) Get(ctx context.Context, tenantID, id kernel.UUID) (T, error) {
	return r.first(ctx, id, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes())
}

// Find retrieves an entry regardless of its tenant.
func (r *GormCatalogRepository[T, D]) Find(ctx context.Context, id kernel.UUID) (T, error) {
	return r.first(ctx, id, "id = ?", id.Bytes())
}

func (r *GormCatalogRepository[T, D]) List(
	ctx context.Context, tenantID kernel.UUID, filter catalog.Filter,
) ([]T, int64, error) {
	filter = filter.Normalize()

	query := r.db.WithContext(ctx).Model(new(D)).Where("tenant_id = ?", tenantID.Bytes())
	if filter.Search != "" {
		query = query.Where(r.searchClause(), r.searchArgs(filter.Search)...)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dtos []D
	if err := query.Order("name").Order("code").Limit(filter.Limit).Offset(filter.Offset).Find(&dtos).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]T, 0, len(dtos))
	for _, dto := range dtos {
		e, err := r.m.toDomain(dto)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}

	return entries, total, nil
}

func (r *GormCatalogRepository[T, D]) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Delete(new(D))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(r.m.entity, id.String())
	}
	return nil
}

func (r *GormCatalogRepository[T, D]) CodeTaken(
	ctx context.Context, tenantID kernel.UUID, code catalog.Code, exceptID kernel.UUID,
) (bool, error) {
	query := r.db.WithContext(ctx).Model(new(D)).Where("tenant_id = ? AND code = ?", tenantID.Bytes(), code.String())
	if !exceptID.IsZero() {
		query = query.Where("id <> ?", exceptID.Bytes())
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCatalogRepository[T, D]) first(ctx context.Context, id kernel.UUID, cond string, args ...any) (T, error) {
	var zero T
	if err := id.Validate(); err != nil {
		return zero, err
	}

	var dto D
	if err := r.db.WithContext(ctx).Where(cond, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, errs.NewObjectNotFoundError(r.m.entity, id.String())
		}
		return zero, err
	}

	return r.m.toDomain(dto)
}

// searchClause matches any search column case-insensitively. LOWER plus LIKE
// works the same on postgres and sqlite.
func (r *GormCatalogRepository[T, D]) searchClause() string {
	parts := make([]string, len(r.m.searchColumns))
	for i, col := range r.m.searchColumns {
		parts[i] = "LOWER(" + col + ") LIKE ?"
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

func (r *GormCatalogRepository[T, D]) searchArgs(search string) []any {
	pattern := "%" + strings.ToLower(search) + "%"
	args := make([]any, len(r.m.searchColumns))
	for i := range args {
		args[i] = pattern
	}
	return args
}

func (r *GormCatalogRepository[T, D]) translate(entry T, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewDuplicateCodeErrorWithCause(r.m.entity, entry.Code().String(), err)
	}
	return err
}
