package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/matheusmosca/store-backend/internal/app"
	"github.com/matheusmosca/store-backend/internal/config"
	"github.com/matheusmosca/store-backend/internal/seeder"
	"github.com/matheusmosca/store-backend/internal/telemetry"
)

const instrumentationName = "store-backend"

var port string

// serveCmd starts the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		if port != "" {
			cfg.Port = port
		}
		if cfg.LogLevel != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		exitCode := serve(cmd.Context(), cfg, log)
		if exitCode != 0 {
			return fmt.Errorf("server exited with code %d", exitCode)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&port, "port", "", "HTTP port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg config.Config, log *zap.Logger) int {
	operations := map[string]gfshutdown.Operation{}
	fail := func(msg string, err error) int {
		log.Error(msg, zap.Error(err))
		release(log, cfg.ShutdownTimeout, operations)
		return 1
	}

	if cfg.OTelEnabled {
		providers, err := telemetry.Init(ctx, telemetry.Config{
			Endpoint:    cfg.OTLPEndpoint,
			ServiceName: cfg.ServiceName,
			SampleRatio: cfg.OTelSampleRatio,
		})
		if err != nil {
			return fail("Failed to initialize telemetry", err)
		}
		operations["telemetry"] = providers.Shutdown
	}

	pool, db, err := openDatabase(ctx, cfg, log)
	if err != nil {
		return fail("Failed to initialize database", err)
	}
	operations["database"] = func(context.Context) error {
		pool.Close()
		return nil
	}

	if err := seeder.Migrate(ctx, db); err != nil {
		return fail("Failed to migrate schema", err)
	}

	router, err := app.NewRouter(app.Deps{
		DB:          db,
		Logger:      log,
		Tracer:      otel.Tracer(instrumentationName),
		Meter:       otel.Meter(instrumentationName),
		Location:    cfg.Location,
		UploadDir:   cfg.UploadDir,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return fail("Failed to build router", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fail("Failed to listen on "+srv.Addr, err)
	}
	operations["http-server"] = srv.Shutdown

	serveErr := make(chan error, 1)
	go func() {
		log.Info("🚀 Store backend listening", zap.String("port", cfg.Port))
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	wait := gfshutdown.GracefulShutdown(ctx, cfg.ShutdownTimeout, operations)
	exitCode := awaitExit(log, wait, serveErr, cfg.ShutdownTimeout, operations)
	log.Info("Application exited", zap.Int("exit_code", exitCode))
	return exitCode
}
