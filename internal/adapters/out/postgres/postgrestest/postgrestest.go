// Package postgrestest opens migrated databases for tests: a throwaway
// PostgreSQL container for integration suites and an in-memory sqlite
// database for fast application-level tests.
package postgrestest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"encomendas/internal/adapters/out/postgres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Tables lists every table, dependents first.
var Tables = []string{"deliveries", "order_items", "orders", "order_sequences", "products", "suppliers", "clients"}

// Container is a running PostgreSQL test container with a migrated schema.
type Container struct {
	container *tcpostgres.PostgresContainer
	DB        *gorm.DB
}

// StartPostgres starts postgres:15-alpine and migrates every model.
func StartPostgres(ctx context.Context) (*Container, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := postgres.Migrate(db); err != nil {
		return nil, err
	}

	return &Container{container: container, DB: db}, nil
}

// Truncate empties every table.
func (c *Container) Truncate() error {
	return c.DB.Exec("TRUNCATE TABLE " + strings.Join(Tables, ", ")).Error
}

func (c *Container) Terminate(ctx context.Context) error {
	if c == nil || c.container == nil {
		return nil
	}
	return c.container.Terminate(ctx)
}

// OpenSQLite returns a migrated in-memory database private to t. It holds a
// single connection, so a transaction must end before the pool is used again.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.Migrate(db))
	return db
}

// Reset deletes every row. It works on both postgres and sqlite.
func Reset(db *gorm.DB) error {
	for _, table := range Tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
