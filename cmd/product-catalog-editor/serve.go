package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/product-catalog-editor/internal/config"
	httpapi "github.com/fairyhunter13/product-catalog-editor/internal/http"
	"github.com/fairyhunter13/product-catalog-editor/internal/obs"
	"github.com/fairyhunter13/product-catalog-editor/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the in-memory product service simulator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(config.Load())
		},
	}
}

func serve(cfg config.Config) error {
	obs.Logger.Info("service_starting", "seeded", cfg.SimSeed, "latency_ms", cfg.SimLatency.Milliseconds())

	st := store.New()
	if cfg.SimSeed {
		st = store.Seed()
	}
	app := httpapi.NewApp(cfg, st)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)
	select {
	case err := <-errc:
		obs.Logger.Error("http_server_error", "error", err)
		return err
	case s := <-sigc:
		obs.Logger.Info("shutdown_signal", "signal", s.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
		return err
	}
	obs.Logger.Info("service_stopped")
	return nil
}
