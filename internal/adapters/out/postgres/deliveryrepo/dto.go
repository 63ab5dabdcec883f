// Package deliveryrepo persists delivery records, at most one per order.
package deliveryrepo

import (
	"time"

	"encomendas/internal/core/domain/model/delivery"
	"encomendas/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO is the row of the deliveries table.
type DeliveryDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Responsible   string     `gorm:"type:varchar(100);not null"`
	ScheduledDate *time.Time `gorm:"type:date"`
	DeliveredDate *time.Time `gorm:"type:date"`
	DeliveredTime string     `gorm:"type:varchar(5)"`
	DeliveredBy   string     `gorm:"type:varchar(100)"`
	Signature     string     `gorm:"type:text"`
	Notes         string     `gorm:"type:text"`
	RealizedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	s := d.State()
	return DeliveryDTO{
		ID:            d.ID().Bytes(),
		TenantID:      d.TenantID().Bytes(),
		OrderID:       d.OrderID().Bytes(),
		Responsible:   s.Responsible,
		ScheduledDate: s.ScheduledDate,
		DeliveredDate: s.DeliveredDate,
		DeliveredTime: s.DeliveredTime,
		DeliveredBy:   s.DeliveredBy,
		Signature:     s.Signature,
		Notes:         s.Notes,
		RealizedAt:    s.RealizedAt,
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	return delivery.RestoreDelivery(
		kernel.UUIDFromGoogle(dto.ID),
		kernel.UUIDFromGoogle(dto.TenantID),
		kernel.UUIDFromGoogle(dto.OrderID),
		delivery.State{
			Responsible:   dto.Responsible,
			ScheduledDate: dto.ScheduledDate,
			DeliveredDate: dto.DeliveredDate,
			DeliveredTime: dto.DeliveredTime,
			DeliveredBy:   dto.DeliveredBy,
			Signature:     dto.Signature,
			Notes:         dto.Notes,
			RealizedAt:    dto.RealizedAt,
		},
	)
}
