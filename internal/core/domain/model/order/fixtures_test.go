package order_test

import (
	"testing"
	"time"

	"encomendas/internal/core/domain/model/catalog"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	tc       kernel.TenantContext
	client   *catalog.Client
	product  *catalog.Product
	product2 *catalog.Product
	supplier *catalog.Supplier
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	tenantID := kernel.NewUUID()
	tc, err := kernel.NewTenantContext(tenantID, "maria")
	require.NoError(t, err)

	return fixture{
		tc:       tc,
		client:   newClient(t, tenantID, "C001"),
		product:  newProduct(t, tenantID, "P-01", "12.00"),
		product2: newProduct(t, tenantID, "P-02", "24.90"),
		supplier: newSupplier(t, tenantID, "F01"),
	}
}

func newClient(t *testing.T, tenantID kernel.UUID, code string) *catalog.Client {
	t.Helper()
	c, err := catalog.NewClient(kernel.NewUUID(), tenantID, catalog.ClientFields{
		Code: code, Name: "Cliente " + code, Street: "Rua A, 1", District: "Centro",
	})
	require.NoError(t, err)
	return c
}

func newProduct(t *testing.T, tenantID kernel.UUID, code, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(kernel.NewUUID(), tenantID, catalog.ProductFields{
		Code: code, Name: "Produto " + code, BasePrice: kernel.MustMoney(price),
	})
	require.NoError(t, err)
	return p
}

func newSupplier(t *testing.T, tenantID kernel.UUID, code string) *catalog.Supplier {
	t.Helper()
	s, err := catalog.NewSupplier(kernel.NewUUID(), tenantID, catalog.SupplierFields{Code: code, Name: "Fornecedor " + code})
	require.NoError(t, err)
	return s
}

func validHeader() order.Header {
	return order.Header{
		Responsible: "Ana",
		OrderedAt:   time.Date(2024, 4, 20, 15, 30, 0, 0, time.UTC),
		AdvancePaid: kernel.MustMoney("10.00"),
	}
}

func (f fixture) newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), f.tc, f.client, validHeader())
	require.NoError(t, err)
	return o
}

func (f fixture) input(product *catalog.Product, quantity int, price string) order.ItemInput {
	return order.ItemInput{
		Product:     product,
		Supplier:    f.supplier,
		Quantity:    quantity,
		QuotedPrice: kernel.MustMoney(price),
	}
}
