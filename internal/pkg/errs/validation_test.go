package errs_test

import (
	"errors"
	"testing"

	"encomendas/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_ErrOrNil(t *testing.T) {
	t.Run("empty returns nil", func(t *testing.T) {
		var v errs.ValidationError
		v.Add("name", nil)

		require.NoError(t, v.ErrOrNil())
	})

	t.Run("nil receiver returns nil", func(t *testing.T) {
		var v *errs.ValidationError
		require.NoError(t, v.ErrOrNil())
	})
}

func TestValidationError_Add(t *testing.T) {
	t.Run("collects every violation", func(t *testing.T) {
		var v errs.ValidationError
		v.Add("code", errs.NewValueIsRequiredError("code"))
		v.Add("basePrice", errs.NewInvalidPriceError("0.00"))

		err := v.ErrOrNil()
		require.Error(t, err)
		require.Len(t, v.Fields, 2)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrInvalidPrice)
		assert.Equal(t,
			"validation failed: code: value is required: code; basePrice: invalid price: 0.00 must be greater than 0",
			err.Error())
	})

	t.Run("flattens joined errors", func(t *testing.T) {
		var v errs.ValidationError
		v.Add("item", errors.Join(
			errs.NewFieldError("quantity", errs.NewInvalidQuantityOrPriceError("quantity", 0)),
			errs.NewFieldError("quotedPrice", errs.NewInvalidQuantityOrPriceError("quotedPrice", "-1.00")),
		))

		require.Len(t, v.Fields, 2)
		assert.Equal(t, "item.quantity", v.Fields[0].Field)
		assert.Equal(t, "item.quotedPrice", v.Fields[1].Field)
	})

	t.Run("prefixes nested validation errors", func(t *testing.T) {
		var inner errs.ValidationError
		inner.Add("quantity", errs.NewInvalidQuantityOrPriceError("quantity", 0))

		var outer errs.ValidationError
		outer.Add("items[1]", &inner)

		require.Len(t, outer.Fields, 1)
		assert.Equal(t, "items[1].quantity", outer.Fields[0].Field)
		require.ErrorIs(t, outer.ErrOrNil(), errs.ErrInvalidQuantityOrPrice)
	})

	t.Run("indexes append without a dot", func(t *testing.T) {
		var v errs.ValidationError
		v.Add("items", errs.NewFieldError("[0]", errs.ErrValueIsRequired))

		assert.Equal(t, "items[0]", v.Fields[0].Field)
	})

	t.Run("keeps status transition errors whole", func(t *testing.T) {
		var v errs.ValidationError
		v.Add("status", errs.NewStatusTransitionErrorWithCause("criada", "cotacao", errors.New("order has no items")))

		require.Len(t, v.Fields, 1)
		var target *errs.StatusTransitionError
		require.ErrorAs(t, v.ErrOrNil(), &target)
	})
}

func TestValidationError_AddIfAbsent(t *testing.T) {
	var v errs.ValidationError
	v.Add("items[0].productId", errs.NewObjectNotFoundError("product", "42"))

	var inner errs.ValidationError
	inner.Add("productId", errs.NewValueIsRequiredError("productId"))
	inner.Add("quantity", errs.NewInvalidQuantityOrPriceError("quantity", 0))
	v.AddIfAbsent("items[0]", &inner)

	require.Len(t, v.Fields, 2)
	assert.True(t, v.Has("items[0].quantity"))
	require.ErrorIs(t, v.ErrOrNil(), errs.ErrObjectNotFound)
	require.NotErrorIs(t, v.ErrOrNil(), errs.ErrValueIsRequired)
}
