package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/get-hunter/hero365-app-sub011/internal/api"
	"github.com/get-hunter/hero365-app-sub011/internal/logger"
)

// serveCommand returns the serve command, which runs the HTTP service: tenant
// page serving, run management, health, and metrics.
func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the page serving and generation HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck // stdout sync failure is benign

			application, err := newApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer application.Close()

			handler := api.NewHandler(
				application.resolver,
				application.store,
				application.repo,
				application.orchestrator,
				application.loader,
				application.runConfig(false),
				cfg.Server.OnDemand,
				log,
			)
			server := api.NewServer(handler, api.ServerConfig{
				Address:      cfg.Server.Address,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				Debug:        cfg.Debug,
			}, log)

			serverErrors := make(chan error, 1)
			go func() {
				serverErrors <- server.Start()
			}()

			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-serverErrors:
				return err
			case sig := <-shutdown:
				log.Info("shutdown signal received", logger.String("signal", sig.String()))

				ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()
				return server.Shutdown(ctx)
			}
		},
	}
}
