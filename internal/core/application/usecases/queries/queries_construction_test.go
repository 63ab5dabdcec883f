package queries_test

import (
	"context"
	"testing"

	"encomendas/internal/core/application/usecases/queries"
	"encomendas/internal/core/domain/model/catalog"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tenant(t *testing.T) kernel.TenantContext {
	t.Helper()
	tc, err := kernel.NewTenantContext(kernel.NewUUID(), "ana")
	require.NoError(t, err)
	return tc
}

func TestNewListOrdersQuery(t *testing.T) {
	t.Run("normalizes the filter", func(t *testing.T) {
		query, err := queries.NewListOrdersQuery(tenant(t), queries.OrderFilter{
			Status: "pronta", Search: "  Padaria ", Limit: 1000, Offset: -3,
		})

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, order.Ready, query.Status())
		assert.Equal(t, "padaria", query.Filter().Search)
		assert.Equal(t, catalog.MaxPageSize, query.Filter().Limit)
		assert.Zero(t, query.Filter().Offset)
	})

	t.Run("unknown status is invalid", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(tenant(t), queries.OrderFilter{Status: "shipped"})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("requires a tenant context", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(kernel.TenantContext{}, queries.OrderFilter{})

		require.ErrorIs(t, err, kernel.ErrTenantContextIsNotConstructed)
	})
}

func TestNewGetOrderDetailQuery_RequiresOrderID(t *testing.T) {
	_, err := queries.NewGetOrderDetailQuery(tenant(t), kernel.UUID{})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	ctx := context.Background()

	_, err := queries.NewGetOrderDetailQueryHandler(nil).Handle(ctx, queries.GetOrderDetailQuery{})
	assert.ErrorIs(t, err, queries.ErrGetOrderDetailQueryIsNotConstructed)

	_, err = queries.NewListOrdersQueryHandler(nil).Handle(ctx, queries.ListOrdersQuery{})
	assert.ErrorIs(t, err, queries.ErrListOrdersQueryIsNotConstructed)

	_, err = queries.NewGetDashboardQueryHandler(nil).Handle(ctx, queries.GetDashboardQuery{})
	assert.ErrorIs(t, err, queries.ErrGetDashboardQueryIsNotConstructed)

	assert.ErrorIs(t, queries.GetCatalogEntryQuery{}.Validate(), queries.ErrGetCatalogEntryQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListCatalogEntriesQuery{}.Validate(), queries.ErrListCatalogEntriesQueryIsNotConstructed)
}
