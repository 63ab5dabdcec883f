package commands_test

import (
	"errors"
	"testing"
	"time"

	"encomendas/internal/core/application/usecases/commands"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewSetOrderStatusCommand(t *testing.T) {
	e := newEnv(t)

	cmd, err := commands.NewSetOrderStatusCommand(e.tc, kernel.NewUUID(), "em_andamento")
	require.NoError(t, err)
	assert.Equal(t, order.InProgress, cmd.Target())

	_, err = commands.NewSetOrderStatusCommand(e.tc, kernel.NewUUID(), "shipped")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestSetOrderStatusCommandHandler_Handle(t *testing.T) {
	t.Run("criada to cotacao with items", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		o := e.stored(t, order.Created, itemFields(1, "5.00"))
		cmd, err := commands.NewSetOrderStatusCommand(e.tc, o.ID(), "cotacao")
		require.NoError(t, err)

		e.committed(ctx)
		e.orders.On("GetForUpdate", ctx, e.tc.TenantID(), o.ID()).Return(o, nil).Once()
		e.orders.On("Update", ctx, o).Return(nil).Once()

		got, err := commands.NewSetOrderStatusCommandHandler(e.orderFactory()).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Quoting, got.Status())
		e.assert(t)
	})

	t.Run("cancelada to entregue is rejected", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		o := e.stored(t, order.Cancelled, itemFields(1, "5.00"))
		cmd, err := commands.NewSetOrderStatusCommand(e.tc, o.ID(), "entregue")
		require.NoError(t, err)

		e.rolledBack(ctx)
		e.orders.On("GetForUpdate", ctx, e.tc.TenantID(), o.ID()).Return(o, nil).Once()

		_, err = commands.NewSetOrderStatusCommandHandler(e.orderFactory()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidStatusTransition)
		assert.Equal(t, order.Cancelled, o.Status())
		e.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		e.assert(t)
	})

	t.Run("quoting an empty order names the missing items", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		o := e.stored(t, order.Created)
		cmd, err := commands.NewSetOrderStatusCommand(e.tc, o.ID(), "cotacao")
		require.NoError(t, err)

		e.rolledBack(ctx)
		e.orders.On("GetForUpdate", ctx, e.tc.TenantID(), o.ID()).Return(o, nil).Once()

		_, err = commands.NewSetOrderStatusCommandHandler(e.orderFactory()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidStatusTransition)
		require.ErrorIs(t, err, order.ErrOrderHasNoItems)
		e.assert(t)
	})

	t.Run("lost version check surfaces as a conflict", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		o := e.stored(t, order.Quoting, itemFields(1, "5.00"))
		cmd, err := commands.NewSetOrderStatusCommand(e.tc, o.ID(), "aprovada")
		require.NoError(t, err)

		e.rolledBack(ctx)
		e.orders.On("GetForUpdate", ctx, e.tc.TenantID(), o.ID()).Return(o, nil).Once()
		e.orders.On("Update", ctx, o).Return(errs.NewConcurrencyConflictError("order", o.ID(), o.Version())).Once()

		_, err = commands.NewSetOrderStatusCommandHandler(e.orderFactory()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
		e.assert(t)
	})
}

func TestUpdateOrderCommandHandler_Handle(t *testing.T) {
	t.Run("patches header fields", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		o := e.stored(t, order.Created, itemFields(2, "30.00"))
		expected := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, o.UpdateHeader(order.Header{
			Responsible: "Ana", OrderedAt: o.Header().OrderedAt, ExpectedDeliveryDate: &expected,
		}))

		cmd, err := commands.NewUpdateOrderCommand(e.tc, o.ID(), commands.OrderPatch{
			Responsible:               ptr("Bia"),
			AdvancePaid:               ptr(kernel.MustMoney("20.00")),
			ClearExpectedDeliveryDate: true,
		})
		require.NoError(t, err)

		e.committed(ctx)
		e.orders.On("GetForUpdate", ctx, e.tc.TenantID(), o.ID()).Return(o, nil).Once()
		e.orders.On("Update", ctx, o).Return(nil).Once()

		got, err := commands.NewUpdateOrderCommandHandler(e.factory()).Handle(ctx, cmd)

		require.NoError(t, err)
		h := got.Header()
		assert.Equal(t, "Bia", h.Responsible)
		assert.Nil(t, h.ExpectedDeliveryDate)
		assert.Equal(t, "40.00", got.RemainingBalance().String())
		e.assert(t)
	})

	t.Run("client of another tenant is a cross-tenant reference", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		o := e.stored(t, order.Created)
		foreign := e.newClient(t, kernel.NewUUID(), "C009")
		clientID := foreign.ID()

		cmd, err := commands.NewUpdateOrderCommand(e.tc, o.ID(), commands.OrderPatch{ClientID: &clientID})
		require.NoError(t, err)

		e.rolledBack(ctx)
		e.orders.On("GetForUpdate", ctx, e.tc.TenantID(), o.ID()).Return(o, nil).Once()
		e.clients.On("Find", ctx, clientID).Return(foreign, nil).Once()

		_, err = commands.NewUpdateOrderCommandHandler(e.factory()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrCrossTenantReference)
		assert.False(t, o.ClientID().IsEqual(clientID))
		e.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		e.assert(t)
	})

	t.Run("negative advance is rejected", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		o := e.stored(t, order.Created)
		cmd, err := commands.NewUpdateOrderCommand(e.tc, o.ID(), commands.OrderPatch{
			AdvancePaid: ptr(kernel.MustMoney("-1.00")),
		})
		require.NoError(t, err)

		e.rolledBack(ctx)
		e.orders.On("GetForUpdate", ctx, e.tc.TenantID(), o.ID()).Return(o, nil).Once()

		_, err = commands.NewUpdateOrderCommandHandler(e.factory()).Handle(ctx, cmd)

		var verr *errs.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("advancePaid"))
		e.assert(t)
	})
}

func TestDeleteOrderCommandHandler_Handle(t *testing.T) {
	t.Run("deletes an order without delivery", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		o := e.stored(t, order.Created)
		cmd, err := commands.NewDeleteOrderCommand(e.tc, o.ID())
		require.NoError(t, err)

		e.committed(ctx)
		e.orders.On("GetForUpdate", ctx, e.tc.TenantID(), o.ID()).Return(o, nil).Once()
		e.delivery.On("ExistsForOrder", ctx, e.tc.TenantID(), o.ID()).Return(false, nil).Once()
		e.orders.On("Delete", ctx, e.tc.TenantID(), o.ID()).Return(nil).Once()

		err = commands.NewDeleteOrderCommandHandler(e.deliveryFactory()).Handle(ctx, cmd)

		require.NoError(t, err)
		e.assert(t)
	})

	t.Run("an existing delivery blocks deletion", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		o := e.stored(t, order.Delivered)
		cmd, err := commands.NewDeleteOrderCommand(e.tc, o.ID())
		require.NoError(t, err)

		e.rolledBack(ctx)
		e.orders.On("GetForUpdate", ctx, e.tc.TenantID(), o.ID()).Return(o, nil).Once()
		e.delivery.On("ExistsForOrder", ctx, e.tc.TenantID(), o.ID()).Return(true, nil).Once()

		err = commands.NewDeleteOrderCommandHandler(e.deliveryFactory()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrOrderHasDelivery)
		e.orders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
		e.assert(t)
	})

	t.Run("storage failure is returned as is", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		o := e.stored(t, order.Created)
		cmd, err := commands.NewDeleteOrderCommand(e.tc, o.ID())
		require.NoError(t, err)

		e.rolledBack(ctx)
		e.orders.On("GetForUpdate", ctx, e.tc.TenantID(), o.ID()).Return(o, nil).Once()
		e.delivery.On("ExistsForOrder", ctx, e.tc.TenantID(), o.ID()).Return(false, errors.New("db down")).Once()

		err = commands.NewDeleteOrderCommandHandler(e.deliveryFactory()).Handle(ctx, cmd)

		require.EqualError(t, err, "db down")
		e.assert(t)
	})
}
