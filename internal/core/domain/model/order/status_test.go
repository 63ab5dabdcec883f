package order_test

import (
	"testing"

	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, "criada", order.Created.String())
	assert.Equal(t, "cotacao", order.Quoting.String())
	assert.Equal(t, "aprovada", order.Approved.String())
	assert.Equal(t, "em_andamento", order.InProgress.String())
	assert.Equal(t, "pronta", order.Ready.String())
	assert.Equal(t, "entregue", order.Delivered.String())
	assert.Equal(t, "cancelada", order.Cancelled.String())
	assert.Len(t, order.All(), 7)
}

func TestParseStatus(t *testing.T) {
	t.Run("known values", func(t *testing.T) {
		for _, s := range order.All() {
			parsed, err := order.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("unknown value", func(t *testing.T) {
		_, err := order.ParseStatus("Created")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), `"Created" is not a valid status`)
	})
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "Em cotação", order.Quoting.Label())
	assert.Equal(t, "desconhecido", order.Status("desconhecido").Label())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	legal := map[order.Status][]order.Status{
		order.Created:    {order.Quoting, order.Cancelled},
		order.Quoting:    {order.Approved, order.Cancelled},
		order.Approved:   {order.InProgress, order.Cancelled},
		order.InProgress: {order.Ready, order.Cancelled},
		order.Ready:      {order.Delivered, order.Cancelled},
		order.Delivered:  {},
		order.Cancelled:  {},
	}

	for from, targets := range legal {
		for _, to := range order.All() {
			want := false
			for _, l := range targets {
				if l == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("forward step", func(t *testing.T) {
		next, err := order.Created.TransitionTo(order.Quoting)

		require.NoError(t, err)
		assert.Equal(t, order.Quoting, next)
	})

	t.Run("cancelled to delivered is rejected", func(t *testing.T) {
		next, err := order.Cancelled.TransitionTo(order.Delivered)

		require.ErrorIs(t, err, errs.ErrInvalidStatusTransition)
		assert.Equal(t, order.Cancelled, next)
		assert.Equal(t, "invalid status transition: cancelada -> entregue", err.Error())
	})

	t.Run("skipping a step is rejected", func(t *testing.T) {
		_, err := order.Created.TransitionTo(order.Approved)
		require.ErrorIs(t, err, errs.ErrInvalidStatusTransition)
	})

	t.Run("going back is rejected", func(t *testing.T) {
		_, err := order.Approved.TransitionTo(order.Quoting)
		require.ErrorIs(t, err, errs.ErrInvalidStatusTransition)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := order.Created.TransitionTo(order.Status("perdida"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	for _, s := range order.Pending() {
		assert.False(t, s.IsTerminal())
	}
	assert.False(t, order.Ready.IsTerminal())
}
