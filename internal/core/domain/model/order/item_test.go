package order_test

import (
	"testing"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	fields := order.ItemFields{
		ProductID:   kernel.NewUUID(),
		SupplierID:  kernel.NewUUID(),
		Quantity:    3,
		QuotedPrice: kernel.MustMoney("0.335"),
		Notes:       " embrulhar ",
	}

	t.Run("line total is quantity times rounded price", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), fields)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.Equal(t, "0.34", item.QuotedPrice().String())
		assert.Equal(t, "1.02", item.LineTotal().String())
		assert.Equal(t, "embrulhar", item.Notes())
	})

	t.Run("restore recomputes the line total", func(t *testing.T) {
		item, err := order.RestoreItem(kernel.NewUUID(), kernel.NewUUID(), fields)

		require.NoError(t, err)
		assert.Equal(t, "1.02", item.LineTotal().String())
	})

	t.Run("missing ids", func(t *testing.T) {
		_, err := order.NewItem(kernel.UUID{}, kernel.UUID{}, order.ItemFields{Quantity: 1, QuotedPrice: kernel.MustMoney("1")})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		var v *errs.ValidationError
		require.ErrorAs(t, err, &v)
		assert.Len(t, v.Fields, 4)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var item order.Item
		assert.Equal(t, order.ErrItemIsNotConstructed, item.Validate())
	})
}
