package commands_test

import (
	"testing"

	"encomendas/internal/core/application/usecases/commands"
	"encomendas/internal/core/domain/model/catalog"
	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/core/domain/model/order"
	"encomendas/internal/core/ports"
	"encomendas/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCatalogEntryCommandHandler_Handle(t *testing.T) {
	t.Run("creates a product", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		cmd, err := commands.NewCreateCatalogEntryCommand(e.tc, catalog.ProductFields{
			Code: "P001", Name: "Bolo", BasePrice: kernel.MustMoney("35.00"),
		})
		require.NoError(t, err)

		e.committed(ctx)
		e.products.On("CodeTaken", ctx, e.tc.TenantID(), mock.AnythingOfType("catalog.Code"), kernel.UUID{}).
			Return(false, nil).Once()
		e.products.On("Add", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil).Once()

		p, err := commands.NewCreateCatalogEntryCommandHandler(e.factory(), commands.ProductKind).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "P001", p.Code().String())
		assert.True(t, e.tc.TenantID().IsEqual(p.TenantID()))
		e.assert(t)
	})

	t.Run("duplicate code in the tenant", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		cmd, err := commands.NewCreateCatalogEntryCommand(e.tc, catalog.ClientFields{
			Code: "C001", Name: "Cliente", Street: "Rua A", District: "Centro",
		})
		require.NoError(t, err)

		e.rolledBack(ctx)
		e.clients.On("CodeTaken", ctx, e.tc.TenantID(), mock.AnythingOfType("catalog.Code"), kernel.UUID{}).
			Return(true, nil).Once()

		_, err = commands.NewCreateCatalogEntryCommandHandler(e.factory(), commands.ClientKind).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrDuplicateCode)
		e.clients.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		e.assert(t)
	})

	t.Run("invalid price fails before the transaction", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		cmd, err := commands.NewCreateCatalogEntryCommand(e.tc, catalog.ProductFields{
			Code: "P001", Name: "Bolo", BasePrice: kernel.MustMoney("0"),
		})
		require.NoError(t, err)

		factory := new(MockUoWFactory)
		_, err = commands.NewCreateCatalogEntryCommandHandler(factory, commands.ProductKind).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidPrice)
		factory.AssertNotCalled(t, "Create")
	})
}

func TestUpdateCatalogEntryCommandHandler_Handle(t *testing.T) {
	t.Run("renames a supplier keeping its code", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		s := e.newSupplier(t, e.tc.TenantID(), "F01")
		cmd, err := commands.NewUpdateCatalogEntryCommand(e.tc, s.ID(), catalog.SupplierFields{
			Code: "F01", Name: "Doces da Vila", Email: "contato@docesdavila.com.br",
		})
		require.NoError(t, err)

		e.committed(ctx)
		e.suppliers.On("Get", ctx, e.tc.TenantID(), s.ID()).Return(s, nil).Once()
		e.suppliers.On("CodeTaken", ctx, e.tc.TenantID(), mock.AnythingOfType("catalog.Code"), s.ID()).
			Return(false, nil).Once()
		e.suppliers.On("Update", ctx, s).Return(nil).Once()

		got, err := commands.NewUpdateCatalogEntryCommandHandler(e.factory(), commands.SupplierKind).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "Doces da Vila", got.Name())
		assert.Equal(t, "contato@docesdavila.com.br", got.Email())
		e.assert(t)
	})

	t.Run("code taken by another entry", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		p := e.newProduct(t, e.tc.TenantID(), "P001")
		cmd, err := commands.NewUpdateCatalogEntryCommand(e.tc, p.ID(), catalog.ProductFields{
			Code: "P002", Name: "Torta", BasePrice: kernel.MustMoney("40.00"),
		})
		require.NoError(t, err)

		e.rolledBack(ctx)
		e.products.On("Get", ctx, e.tc.TenantID(), p.ID()).Return(p, nil).Once()
		e.products.On("CodeTaken", ctx, e.tc.TenantID(), mock.AnythingOfType("catalog.Code"), p.ID()).
			Return(true, nil).Once()

		_, err = commands.NewUpdateCatalogEntryCommandHandler(e.factory(), commands.ProductKind).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrDuplicateCode)
		e.assert(t)
	})

	t.Run("entry of another tenant is not found", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		id := kernel.NewUUID()
		cmd, err := commands.NewUpdateCatalogEntryCommand(e.tc, id, catalog.ClientFields{Code: "C1", Name: "X"})
		require.NoError(t, err)

		e.rolledBack(ctx)
		e.clients.On("Get", ctx, e.tc.TenantID(), id).Return(nil, errs.NewObjectNotFoundError("client", id)).Once()

		_, err = commands.NewUpdateCatalogEntryCommandHandler(e.factory(), commands.ClientKind).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		e.assert(t)
	})
}

func TestDeleteCatalogEntryCommandHandler_Handle(t *testing.T) {
	t.Run("unreferenced entry is deleted", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		p := e.newProduct(t, e.tc.TenantID(), "P001")
		cmd, err := commands.NewDeleteCatalogEntryCommand(e.tc, p.ID(), false)
		require.NoError(t, err)

		e.committed(ctx)
		e.products.On("Get", ctx, e.tc.TenantID(), p.ID()).Return(p, nil).Once()
		e.orders.On("FindIDsReferencing", ctx, e.tc.TenantID(), ports.ProductReference, p.ID()).
			Return([]kernel.UUID{}, nil).Once()
		e.products.On("Delete", ctx, e.tc.TenantID(), p.ID()).Return(nil).Once()

		err = commands.NewDeleteCatalogEntryCommandHandler(e.factory(), commands.ProductKind).Handle(ctx, cmd)

		require.NoError(t, err)
		e.assert(t)
	})

	t.Run("referenced entry is in use without cascade", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		c := e.newClient(t, e.tc.TenantID(), "C001")
		cmd, err := commands.NewDeleteCatalogEntryCommand(e.tc, c.ID(), false)
		require.NoError(t, err)

		e.rolledBack(ctx)
		e.clients.On("Get", ctx, e.tc.TenantID(), c.ID()).Return(c, nil).Once()
		e.orders.On("FindIDsReferencing", ctx, e.tc.TenantID(), ports.ClientReference, c.ID()).
			Return([]kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}, nil).Once()

		err = commands.NewDeleteCatalogEntryCommandHandler(e.factory(), commands.ClientKind).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrEntityInUse)
		var inUse *errs.EntityInUseError
		require.ErrorAs(t, err, &inUse)
		assert.Equal(t, 2, inUse.References)
		e.clients.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
		e.assert(t)
	})

	t.Run("cascading a client deletes its orders and deliveries", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		tenantID := e.tc.TenantID()
		c := e.newClient(t, tenantID, "C001")
		withDelivery, withoutDelivery := kernel.NewUUID(), kernel.NewUUID()
		cmd, err := commands.NewDeleteCatalogEntryCommand(e.tc, c.ID(), true)
		require.NoError(t, err)

		e.committed(ctx)
		e.clients.On("Get", ctx, tenantID, c.ID()).Return(c, nil).Once()
		e.orders.On("FindIDsReferencing", ctx, tenantID, ports.ClientReference, c.ID()).
			Return([]kernel.UUID{withDelivery, withoutDelivery}, nil).Once()
		e.delivery.On("DeleteByOrder", ctx, tenantID, withDelivery).Return(nil).Once()
		e.delivery.On("DeleteByOrder", ctx, tenantID, withoutDelivery).
			Return(errs.NewObjectNotFoundError("delivery", withoutDelivery)).Once()
		e.orders.On("Delete", ctx, tenantID, withDelivery).Return(nil).Once()
		e.orders.On("Delete", ctx, tenantID, withoutDelivery).Return(nil).Once()
		e.clients.On("Delete", ctx, tenantID, c.ID()).Return(nil).Once()

		err = commands.NewDeleteCatalogEntryCommandHandler(e.factory(), commands.ClientKind).Handle(ctx, cmd)

		require.NoError(t, err)
		e.assert(t)
	})

	t.Run("cascading a product removes its items and recomputes totals", func(t *testing.T) {
		ctx := t.Context()
		e := newEnv(t)
		tenantID := e.tc.TenantID()
		p := e.newProduct(t, tenantID, "P001")
		o := e.stored(t, order.Approved, itemFields(2, "12.00"), itemFields(1, "24.90"))
		kept := o.Items()[0]
		cmd, err := commands.NewDeleteCatalogEntryCommand(e.tc, p.ID(), true)
		require.NoError(t, err)

		e.committed(ctx)
		e.products.On("Get", ctx, tenantID, p.ID()).Return(p, nil).Once()
		e.orders.On("FindIDsReferencing", ctx, tenantID, ports.ProductReference, p.ID()).
			Return([]kernel.UUID{o.ID()}, nil).Once()
		e.orders.On("RemoveItemsReferencing", ctx, tenantID, ports.ProductReference, p.ID()).Return(nil).Once()
		e.orders.On("GetForUpdate", ctx, tenantID, o.ID()).Return(o, nil).Once()
		e.orders.On("ListItems", ctx, o.ID()).Return([]*order.Item{kept}, nil).Once()
		e.orders.On("Update", ctx, o).Return(nil).Once()
		e.products.On("Delete", ctx, tenantID, p.ID()).Return(nil).Once()

		err = commands.NewDeleteCatalogEntryCommandHandler(e.factory(), commands.ProductKind).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "24.00", o.Total().String())
		e.assert(t)
	})
}
