package queries

import (
	"errors"
	"fmt"
	"time"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderSummary is one row of an order listing.
type OrderSummary struct {
	ID                   kernel.UUID
	Number               int64
	ClientID             kernel.UUID
	ClientCode           string
	ClientName           string
	Responsible          string
	OrderedAt            time.Time
	ExpectedDeliveryDate *time.Time
	Status               order.Status
	Total                kernel.Money
	AdvancePaid          kernel.Money
	RemainingBalance     kernel.Money
}

// ErrUnreadableRow reports a stored row that no longer maps onto the domain.
// Its cause is flattened so it is never taken for bad client input.
var ErrUnreadableRow = errors.New("stored row could not be read")

// orderSummaryRow mirrors the columns selected by summaryColumns.
type orderSummaryRow struct {
	ID                   uuid.UUID
	Number               int64
	ClientID             uuid.UUID
	ClientCode           string
	ClientName           string
	Responsible          string
	OrderedAt            time.Time
	ExpectedDeliveryDate *time.Time
	Status               string
	Total                decimal.Decimal
	AdvancePaid          decimal.Decimal
}

const summaryColumns = `orders.id, orders.number, orders.client_id,
	clients.code AS client_code, clients.name AS client_name,
	orders.responsible, orders.ordered_at, orders.expected_delivery_date,
	orders.status, orders.total, orders.advance_paid`

// tenantOrders starts a query over the tenant's orders joined with their client.
func tenantOrders(db *gorm.DB, tenantID kernel.UUID) *gorm.DB {
	return db.Table("orders").
		Joins("JOIN clients ON clients.id = orders.client_id").
		Where("orders.tenant_id = ?", tenantID.Bytes())
}

// scanSummaries runs q, newest order number first.
func scanSummaries(q *gorm.DB) ([]OrderSummary, error) {
	var rows []orderSummaryRow
	if err := q.Select(summaryColumns).Order("orders.number DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]OrderSummary, 0, len(rows))
	for _, row := range rows {
		s, err := row.toSummary()
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func (row orderSummaryRow) toSummary() (OrderSummary, error) {
	status, err := order.ParseStatus(row.Status)
	if err != nil {
		return OrderSummary{}, fmt.Errorf("%w: order %s: %v", ErrUnreadableRow, row.ID, err)
	}

	total := kernel.NewMoney(row.Total)
	advance := kernel.NewMoney(row.AdvancePaid)
	return OrderSummary{
		ID:                   kernel.UUIDFromGoogle(row.ID),
		Number:               row.Number,
		ClientID:             kernel.UUIDFromGoogle(row.ClientID),
		ClientCode:           row.ClientCode,
		ClientName:           row.ClientName,
		Responsible:          row.Responsible,
		OrderedAt:            row.OrderedAt,
		ExpectedDeliveryDate: row.ExpectedDeliveryDate,
		Status:               status,
		Total:                total,
		AdvancePaid:          advance,
		RemainingBalance:     total.Sub(advance),
	}, nil
}
