package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"encomendas/internal/adapters/out/postgres"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "migrate the schema before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	if migrateOnStart {
		if err := postgres.Migrate(db); err != nil {
			return fmt.Errorf("migrating: %w", err)
		}
	}

	app := NewCompositionRoot(cfg, db, log)
	server, err := app.CreateHTTPServer(ctx)
	if err != nil {
		return err
	}
	e := echo.New()
	if err := server.Register(e); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("port", cfg.HTTPPort), zap.Bool("strict_delivery", cfg.DeliveryStrictMode))
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort))
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
