package postgres

import (
	"encomendas/internal/adapters/out/postgres/catalogrepo"
	"encomendas/internal/adapters/out/postgres/deliveryrepo"
	"encomendas/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Models lists every persisted table in dependency order.
func Models() []any {
	return []any{
		&catalogrepo.ClientDTO{},
		&catalogrepo.SupplierDTO{},
		&catalogrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.OrderSequenceDTO{},
		&deliveryrepo.DeliveryDTO{},
	}
}

// Migrate creates or alters the schema to match the models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
