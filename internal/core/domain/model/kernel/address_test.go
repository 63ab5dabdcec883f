package kernel_test

import (
	"strings"
	"testing"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("valid address is trimmed", func(t *testing.T) {
		addr, err := kernel.NewAddress(" Rua das Flores, 10 ", "Centro", "perto da praça")

		require.NoError(t, err)
		require.NoError(t, addr.Validate())
		assert.Equal(t, "Rua das Flores, 10", addr.Street())
		assert.Equal(t, "Centro", addr.District())
		assert.Equal(t, "perto da praça", addr.Reference())
		assert.Equal(t, "Rua das Flores, 10 - Centro (perto da praça)", addr.String())
	})

	t.Run("reference is optional", func(t *testing.T) {
		addr, err := kernel.NewAddress("Rua A", "Centro", "")

		require.NoError(t, err)
		assert.Equal(t, "Rua A - Centro", addr.String())
	})

	t.Run("reports every missing part", func(t *testing.T) {
		_, err := kernel.NewAddress("", " ", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "street")
		assert.Contains(t, err.Error(), "district")
	})

	t.Run("district too long", func(t *testing.T) {
		_, err := kernel.NewAddress("Rua A", strings.Repeat("x", kernel.MaxShortTextLength+1), "")

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var addr kernel.Address
		assert.Equal(t, kernel.ErrAddressIsNotConstructed, addr.Validate())
	})

	t.Run("equality by value", func(t *testing.T) {
		a, _ := kernel.NewAddress("Rua A", "Centro", "")
		b, _ := kernel.NewAddress("Rua A", "Centro", "")
		c, _ := kernel.NewAddress("Rua B", "Centro", "")

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(c))
	})
}
