package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"encomendas/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossTenantReferenceError(t *testing.T) {
	err := errs.NewCrossTenantReferenceError("product", "42")

	assert.Equal(t, "cross-tenant reference: product 42 belongs to another tenant", err.Error())
	require.ErrorIs(t, err, errs.ErrCrossTenantReference)
}

func TestStatusTransitionError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewStatusTransitionError("criada", "entregue")

		assert.Equal(t, "criada", err.From)
		assert.Equal(t, "entregue", err.To)
		assert.Equal(t, "invalid status transition: criada -> entregue", err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidStatusTransition)
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("order has no items")
		err := errs.NewStatusTransitionErrorWithCause("criada", "cotacao", cause)

		assert.Equal(t,
			"invalid status transition: criada -> cotacao (cause: order has no items)",
			err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidStatusTransition)
		require.ErrorIs(t, err, cause)
	})
}

func TestInvalidQuantityOrPriceError(t *testing.T) {
	err := errs.NewInvalidQuantityOrPriceError("quantity", 0)

	assert.Equal(t, "invalid quantity or price: quantity is 0", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidQuantityOrPrice)
	assert.NotErrorIs(t, err, errs.ErrInvalidPrice)
}

func TestInvalidPriceError(t *testing.T) {
	err := errs.NewInvalidPriceError("0.00")

	assert.Equal(t, "invalid price: 0.00 must be greater than 0", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidPrice)
}

func TestDuplicateCodeError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewDuplicateCodeError("product", "P-01")

		assert.Equal(t, `duplicate code: product code "P-01" already exists`, err.Error())
		require.ErrorIs(t, err, errs.ErrDuplicateCode)
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewDuplicateCodeErrorWithCause("client", "C1", errors.New("unique violation"))

		assert.Contains(t, err.Error(), "(cause: unique violation)")
		require.ErrorIs(t, err, errs.ErrDuplicateCode)
	})
}

func TestMissingRequiredDeliveryFieldError(t *testing.T) {
	err := errs.NewMissingRequiredDeliveryFieldError("responsible")

	assert.Equal(t, "missing required delivery field: responsible", err.Error())
	require.ErrorIs(t, err, errs.ErrMissingRequiredDeliveryField)
}

func TestOrderHasDeliveryError(t *testing.T) {
	err := errs.NewOrderHasDeliveryError("abc")

	assert.Equal(t, "order has a delivery: order abc must have its delivery deleted first", err.Error())
	require.ErrorIs(t, err, errs.ErrOrderHasDelivery)
}

func TestEntityInUseError(t *testing.T) {
	err := errs.NewEntityInUseError("client", "7", 3)

	assert.Equal(t, "entity is in use: client 7 is referenced by 3 order(s)", err.Error())
	require.ErrorIs(t, err, errs.ErrEntityInUse)
}

func TestConcurrencyConflictError(t *testing.T) {
	err := errs.NewConcurrencyConflictError("order", "abc", 4)

	assert.Equal(t, "concurrency conflict: order abc was modified after version 4", err.Error())
	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)

	wrapped := fmt.Errorf("update order: %w", err)
	var target *errs.ConcurrencyConflictError
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, 4, target.Version)
}
