package cmd

import (
	"encomendas/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := openDatabase(cfg, log)
		if err != nil {
			return err
		}
		if err := postgres.Migrate(db); err != nil {
			return err
		}
		log.Info("schema migrated")
		return nil
	},
}
