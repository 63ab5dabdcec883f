package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"encomendas/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 200*time.Millisecond, cfg.DBSlowQuery)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.DeliveryStrictMode)
}

func TestLoadConfig_EnvFileAndEnvironment(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"HTTP_PORT=9090\nDB_NAME=pedidos\nDELIVERY_STRICT_MODE=true\nDB_SLOW_QUERY_MS=50\n",
	), 0o600))
	t.Setenv("DB_NAME", "from_env")
	t.Cleanup(func() {
		_ = os.Unsetenv("HTTP_PORT")
		_ = os.Unsetenv("DELIVERY_STRICT_MODE")
		_ = os.Unsetenv("DB_SLOW_QUERY_MS")
	})

	cfg, err := cmd.LoadConfig(envFile)

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "from_env", cfg.DBName)
	assert.True(t, cfg.DeliveryStrictMode)
	assert.Equal(t, 50*time.Millisecond, cfg.DBSlowQuery)
	assert.Contains(t, cfg.DSN(), "dbname=from_env")
}
