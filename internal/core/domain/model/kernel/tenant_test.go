package kernel_test

import (
	"testing"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenantContext(t *testing.T) {
	t.Run("valid tenant and actor", func(t *testing.T) {
		tenantID := kernel.NewUUID()

		tc, err := kernel.NewTenantContext(tenantID, " maria ")

		require.NoError(t, err)
		require.NoError(t, tc.Validate())
		assert.True(t, tenantID.IsEqual(tc.TenantID()))
		assert.Equal(t, "maria", tc.Actor())
	})

	t.Run("empty actor defaults to system", func(t *testing.T) {
		tc, err := kernel.NewTenantContext(kernel.NewUUID(), "")

		require.NoError(t, err)
		assert.Equal(t, kernel.SystemActor, tc.Actor())
	})

	t.Run("zero tenant is rejected", func(t *testing.T) {
		_, err := kernel.NewTenantContext(kernel.UUID{}, "maria")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var tc kernel.TenantContext
		assert.Equal(t, kernel.ErrTenantContextIsNotConstructed, tc.Validate())
	})
}

func TestTenantContext_RequireOwnership(t *testing.T) {
	tenantA := kernel.NewUUID()
	tenantB := kernel.NewUUID()
	tc, err := kernel.NewTenantContext(tenantA, "maria")
	require.NoError(t, err)

	productID := kernel.NewUUID()

	t.Run("same tenant passes", func(t *testing.T) {
		assert.True(t, tc.Owns(tenantA))
		require.NoError(t, tc.RequireOwnership("product", productID, tenantA))
	})

	t.Run("other tenant is a cross-tenant reference", func(t *testing.T) {
		err := tc.RequireOwnership("product", productID, tenantB)

		require.ErrorIs(t, err, errs.ErrCrossTenantReference)
		assert.Contains(t, err.Error(), productID.String())
	})
}
