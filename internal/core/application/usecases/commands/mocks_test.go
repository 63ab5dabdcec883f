package commands_test

import (
	"context"
	"testing"
	"time"

	"encomendas/internal/core/application/usecases/commands"
	"encomendas/internal/core/domain/model/catalog"
	"encomendas/internal/core/domain/model/delivery"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogRepository[T any] struct{ mock.Mock }

func (m *MockCatalogRepository[T]) Add(ctx context.Context, entry T) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCatalogRepository[T]) Update(ctx context.Context, entry T) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCatalogRepository[T]) Get(ctx context.Context, tenantID, id kernel.UUID) (T, error) {
	args := m.Called(ctx, tenantID, id)
	var entry T
	if v := args.Get(0); v != nil {
		entry = v.(T)
	}
	return entry, args.Error(1)
}

func (m *MockCatalogRepository[T]) Find(ctx context.Context, id kernel.UUID) (T, error) {
	args := m.Called(ctx, id)
	var entry T
	if v := args.Get(0); v != nil {
		entry = v.(T)
	}
	return entry, args.Error(1)
}

func (m *MockCatalogRepository[T]) List(
	ctx context.Context, tenantID kernel.UUID, filter catalog.Filter,
) ([]T, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]T), args.Get(1).(int64), args.Error(2)
}

func (m *MockCatalogRepository[T]) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockCatalogRepository[T]) CodeTaken(
	ctx context.Context, tenantID kernel.UUID, code catalog.Code, exceptID kernel.UUID,
) (bool, error) {
	args := m.Called(ctx, tenantID, code, exceptID)
	return args.Bool(0), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockOrderRepository) NextNumber(ctx context.Context, tenantID kernel.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) AddItem(ctx context.Context, item *order.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateItem(ctx context.Context, item *order.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderRepository) RemoveItem(ctx context.Context, orderID, itemID kernel.UUID) error {
	args := m.Called(ctx, orderID, itemID)
	return args.Error(0)
}

// ListItems accepts either a slice or a func returning one, so a test can
// hand back the items as they are when the handler asks.
func (m *MockOrderRepository) ListItems(ctx context.Context, orderID kernel.UUID) ([]*order.Item, error) {
	args := m.Called(ctx, orderID)
	if fn, ok := args.Get(0).(func() []*order.Item); ok {
		return fn(), args.Error(1)
	}
	items, _ := args.Get(0).([]*order.Item)
	return items, args.Error(1)
}

func (m *MockOrderRepository) FindIDsReferencing(
	ctx context.Context, tenantID kernel.UUID, kind ports.ReferenceKind, id kernel.UUID,
) ([]kernel.UUID, error) {
	args := m.Called(ctx, tenantID, kind, id)
	ids, _ := args.Get(0).([]kernel.UUID)
	return ids, args.Error(1)
}

func (m *MockOrderRepository) RemoveItemsReferencing(
	ctx context.Context, tenantID kernel.UUID, kind ports.ReferenceKind, id kernel.UUID,
) error {
	args := m.Called(ctx, tenantID, kind, id)
	return args.Error(0)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) GetByOrder(
	ctx context.Context, tenantID, orderID kernel.UUID,
) (*delivery.Delivery, error) {
	args := m.Called(ctx, tenantID, orderID)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

func (m *MockDeliveryRepository) ExistsForOrder(ctx context.Context, tenantID, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeliveryRepository) DeleteByOrder(ctx context.Context, tenantID, orderID kernel.UUID) error {
	args := m.Called(ctx, tenantID, orderID)
	return args.Error(0)
}

// MockUoW satisfies every unit of work interface of the package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ClientRepository() ports.ClientRepository {
	args := m.Called()
	return args.Get(0).(ports.ClientRepository)
}

func (m *MockUoW) SupplierRepository() ports.SupplierRepository {
	args := m.Called()
	return args.Get(0).(ports.SupplierRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

// env wires a MockUoW with every repository mock. Repository getters may be
// called any number of times; transaction calls are asserted per test.
type env struct {
	tc        kernel.TenantContext
	clients   *MockCatalogRepository[*catalog.Client]
	suppliers *MockCatalogRepository[*catalog.Supplier]
	products  *MockCatalogRepository[*catalog.Product]
	orders    *MockOrderRepository
	delivery  *MockDeliveryRepository
	uow       *MockUoW
}

func newEnv(t *testing.T) *env {
	t.Helper()
	tc, err := kernel.NewTenantContext(kernel.NewUUID(), "maria")
	require.NoError(t, err)

	e := &env{
		tc:        tc,
		clients:   new(MockCatalogRepository[*catalog.Client]),
		suppliers: new(MockCatalogRepository[*catalog.Supplier]),
		products:  new(MockCatalogRepository[*catalog.Product]),
		orders:    new(MockOrderRepository),
		delivery:  new(MockDeliveryRepository),
		uow:       new(MockUoW),
	}
	e.uow.On("ClientRepository").Return(ports.ClientRepository(e.clients)).Maybe()
	e.uow.On("SupplierRepository").Return(ports.SupplierRepository(e.suppliers)).Maybe()
	e.uow.On("ProductRepository").Return(ports.ProductRepository(e.products)).Maybe()
	e.uow.On("OrderRepository").Return(ports.OrderRepository(e.orders)).Maybe()
	e.uow.On("DeliveryRepository").Return(ports.DeliveryRepository(e.delivery)).Maybe()
	return e
}

// committed expects a successful transaction: Begin, Commit, then the
// deferred Rollback.
func (e *env) committed(ctx context.Context) {
	mock.InOrder(
		e.uow.On("Begin", ctx).Return(nil).Once(),
		e.uow.On("Commit", ctx).Return(nil).Once(),
		e.uow.On("Rollback", ctx).Return(nil).Once(),
	)
}

// rolledBack expects Begin and Rollback only.
func (e *env) rolledBack(ctx context.Context) {
	mock.InOrder(
		e.uow.On("Begin", ctx).Return(nil).Once(),
		e.uow.On("Rollback", ctx).Return(nil).Once(),
	)
}

func (e *env) factory() *MockUoWFactory {
	f := new(MockUoWFactory)
	f.On("Create").Return(e.uow).Once()
	return f
}

func (e *env) orderFactory() *MockOrderUoWFactory {
	f := new(MockOrderUoWFactory)
	f.On("Create").Return(e.uow).Once()
	return f
}

func (e *env) deliveryFactory() *MockDeliveryUoWFactory {
	f := new(MockDeliveryUoWFactory)
	f.On("Create").Return(e.uow).Once()
	return f
}

func (e *env) assert(t *testing.T) {
	t.Helper()
	e.uow.AssertExpectations(t)
	e.clients.AssertExpectations(t)
	e.suppliers.AssertExpectations(t)
	e.products.AssertExpectations(t)
	e.orders.AssertExpectations(t)
	e.delivery.AssertExpectations(t)
}

func (e *env) newClient(t *testing.T, tenantID kernel.UUID, code string) *catalog.Client {
	t.Helper()
	c, err := catalog.NewClient(kernel.NewUUID(), tenantID, catalog.ClientFields{
		Code: code, Name: "Cliente " + code, Street: "Rua A, 1", District: "Centro",
	})
	require.NoError(t, err)
	return c
}

func (e *env) newProduct(t *testing.T, tenantID kernel.UUID, code string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(kernel.NewUUID(), tenantID, catalog.ProductFields{
		Code: code, Name: "Produto " + code, BasePrice: kernel.MustMoney("10.00"),
	})
	require.NoError(t, err)
	return p
}

func (e *env) newSupplier(t *testing.T, tenantID kernel.UUID, code string) *catalog.Supplier {
	t.Helper()
	s, err := catalog.NewSupplier(kernel.NewUUID(), tenantID, catalog.SupplierFields{Code: code, Name: "Fornecedor " + code})
	require.NoError(t, err)
	return s
}

// stored returns an order of the env tenant as a repository would load it.
func (e *env) stored(t *testing.T, status order.Status, items ...order.ItemFields) *order.Order {
	t.Helper()
	id := kernel.NewUUID()
	restored := make([]*order.Item, 0, len(items))
	total := kernel.ZeroMoney()
	for _, f := range items {
		it, err := order.RestoreItem(kernel.NewUUID(), id, f)
		require.NoError(t, err)
		restored = append(restored, it)
		total = total.Add(it.LineTotal())
	}

	o, err := order.RestoreOrder(order.Snapshot{
		ID:       id,
		TenantID: e.tc.TenantID(),
		ClientID: kernel.NewUUID(),
		Number:   1,
		Header:   order.Header{Responsible: "Ana", OrderedAt: time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)},
		Status:   status,
		Total:    total,
		Items:    restored,
		Version:  3,
	})
	require.NoError(t, err)
	return o
}

func itemFields(quantity int, price string) order.ItemFields {
	return order.ItemFields{
		ProductID:   kernel.NewUUID(),
		SupplierID:  kernel.NewUUID(),
		Quantity:    quantity,
		QuotedPrice: kernel.MustMoney(price),
	}
}

func ptr[T any](v T) *T {
	return &v
}
