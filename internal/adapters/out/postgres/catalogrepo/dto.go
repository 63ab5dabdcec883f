// Package catalogrepo persists clients, suppliers and products. The three
// entity types share one generic repository and differ only in their DTO and
// mapping functions.
package catalogrepo

import (
	"time"

	"encomendas/internal/core/domain/model/catalog"
	"encomendas/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientDTO is the row of the clients table. Codes are unique per tenant.
type ClientDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_clients_tenant_code,priority:1"`
	Code             string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_clients_tenant_code,priority:2"`
	Name             string    `gorm:"type:varchar(200);not null;index"`
	AddressStreet    string    `gorm:"type:varchar(200);not null"`
	AddressDistrict  string    `gorm:"type:varchar(100);not null"`
	AddressReference string    `gorm:"type:varchar(200)"`
	Phone            string    `gorm:"type:varchar(20)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (ClientDTO) TableName() string {
	return "clients"
}

// SupplierDTO is the row of the suppliers table.
type SupplierDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_suppliers_tenant_code,priority:1"`
	Code      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_suppliers_tenant_code,priority:2"`
	Name      string    `gorm:"type:varchar(200);not null;index"`
	Contact   string    `gorm:"type:varchar(200)"`
	Phone     string    `gorm:"type:varchar(20)"`
	Email     string    `gorm:"type:varchar(254)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SupplierDTO) TableName() string {
	return "suppliers"
}

// ProductDTO is the row of the products table.
type ProductDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_products_tenant_code,priority:1"`
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_products_tenant_code,priority:2"`
	Name        string          `gorm:"type:varchar(200);not null;index"`
	Description string          `gorm:"type:text"`
	Category    string          `gorm:"type:varchar(100)"`
	BasePrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProductDTO) TableName() string {
	return "products"
}

func clientFromDomain(c *catalog.Client) ClientDTO {
	return ClientDTO{
		ID:               c.ID().Bytes(),
		TenantID:         c.TenantID().Bytes(),
		Code:             c.Code().String(),
		Name:             c.Name(),
		AddressStreet:    c.Address().Street(),
		AddressDistrict:  c.Address().District(),
		AddressReference: c.Address().Reference(),
		Phone:            c.Phone(),
	}
}

func clientToDomain(dto ClientDTO) (*catalog.Client, error) {
	return catalog.NewClient(kernel.UUIDFromGoogle(dto.ID), kernel.UUIDFromGoogle(dto.TenantID), catalog.ClientFields{
		Code:      dto.Code,
		Name:      dto.Name,
		Street:    dto.AddressStreet,
		District:  dto.AddressDistrict,
		Reference: dto.AddressReference,
		Phone:     dto.Phone,
	})
}

func supplierFromDomain(s *catalog.Supplier) SupplierDTO {
	return SupplierDTO{
		ID:       s.ID().Bytes(),
		TenantID: s.TenantID().Bytes(),
		Code:     s.Code().String(),
		Name:     s.Name(),
		Contact:  s.Contact(),
		Phone:    s.Phone(),
		Email:    s.Email(),
	}
}

func supplierToDomain(dto SupplierDTO) (*catalog.Supplier, error) {
	return catalog.NewSupplier(kernel.UUIDFromGoogle(dto.ID), kernel.UUIDFromGoogle(dto.TenantID), catalog.SupplierFields{
		Code:    dto.Code,
		Name:    dto.Name,
		Contact: dto.Contact,
		Phone:   dto.Phone,
		Email:   dto.Email,
	})
}

func productFromDomain(p *catalog.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID().Bytes(),
		TenantID:    p.TenantID().Bytes(),
		Code:        p.Code().String(),
		Name:        p.Name(),
		Description: p.Description(),
		Category:    p.Category(),
		BasePrice:   p.BasePrice().Decimal(),
	}
}

func productToDomain(dto ProductDTO) (*catalog.Product, error) {
	return catalog.NewProduct(kernel.UUIDFromGoogle(dto.ID), kernel.UUIDFromGoogle(dto.TenantID), catalog.ProductFields{
		Code:        dto.Code,
		Name:        dto.Name,
		Description: dto.Description,
		Category:    dto.Category,
		BasePrice:   kernel.NewMoney(dto.BasePrice),
	})
}
