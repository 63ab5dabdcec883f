package cmd

import (
	"encomendas/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	envFile string
	cfg     Config
	log     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "encomendas",
	Short:         "Order lifecycle service for small delivery businesses",
	Long:          `Tracks clients, suppliers, products, orders and their deliveries for many tenants.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var err error
		if cfg, err = LoadConfig(envFile); err != nil {
			return err
		}
		log, err = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
		return err
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// Execute runs the command selected on the command line.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded into the environment when present")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func openDatabase(cfg Config, log *zap.Logger) (*gorm.DB, error) {
	return gorm.Open(postgresdriver.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.NewGormLogger(log, cfg.DBSlowQuery),
	})
}
