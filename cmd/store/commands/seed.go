package commands

import (
	"github.com/spf13/cobra"

	"github.com/matheusmosca/store-backend/internal/seeder"
)

var resetBeforeSeed bool

// seedCmd loads the initial catalog
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the initial categories and products",
	Long: `Load the initial categories and products.

Examples:
  store seed           # Migrate and insert the catalog
  store seed --reset   # Drop every table first, then migrate and insert`,
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

		s := seeder.New(db, log)
		if resetBeforeSeed {
			err = s.Reset(cmd.Context())
		} else {
			err = seeder.Migrate(cmd.Context(), db)
		}
		if err != nil {
			return err
		}
		return s.Seed(cmd.Context())
	},
}

func init() {
	seedCmd.Flags().BoolVar(&resetBeforeSeed, "reset", false, "Drop all tables before seeding")
	rootCmd.AddCommand(seedCmd)
}
