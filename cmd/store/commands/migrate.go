package commands

import (
	"github.com/spf13/cobra"

	"github.com/matheusmosca/store-backend/internal/seeder"
)

// migrateCmd creates or updates the schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		pool, db, err := openDatabase(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := seeder.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		log.Info("✅ Schema migrated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
