package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matheusmosca/store-backend/internal/config"
	"github.com/matheusmosca/store-backend/internal/database"
	"github.com/matheusmosca/store-backend/internal/logging"
)

var (
	// Global flags
	logLevel  string
	logFormat string
	dbDebug   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "store",
	Short: "Store backend - catalog, coupons and sales API",
	Long: `Store backend serves the HTTP API for categories, products, coupons and
sales transactions backed by PostgreSQL.

Configuration is read from the environment (DATABASE_*, PORT, STORE_TIMEZONE,
OTEL_*); flags override the matching variables.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (json, console)")
	rootCmd.PersistentFlags().BoolVar(&dbDebug, "db-debug", false, "Log every SQL statement")
}

// bootstrap carrega a configuração e aplica os flags globais
func bootstrap() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if dbDebug {
		cfg.DBDebug = true
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

func openDatabase(ctx context.Context, cfg config.Config, log *zap.Logger) (*pgxpool.Pool, *gorm.DB, error) {
	pool, err := database.NewPool(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.OpenGorm(pool, cfg.DBDebug)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return pool, db, nil
}
