package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RamiAldahir/Pokedex-Tracker/internal/catalog"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/logger"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/metrics"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/server"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/source"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the catalog and serve the HTTP API",
	Long: `Serve loads the configured catalog source and starts the HTTP server.

Endpoints:
  GET  /                      index.html from the static directory
  GET  /api/generation/{n}    records of generation n (1-10)
  GET  /api/generations       per-generation counts
  GET  /api/status            current snapshot metadata
  POST /api/reload            re-read the configured source
  POST /api/upload            load an uploaded .xlsx or .csv file
  POST /api/update            set the collected flag of one record
  GET  /healthz, /metrics     health check and Prometheus metrics

A failed startup load is logged and the server starts with an empty catalog.
SIGINT or SIGTERM shuts the server down gracefully.

Example:
  pokedex serve --config pokedex.yaml --addr :8080`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Override listen address (e.g. :5000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(serveAddr)
	if err != nil {
		return err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Close() }()

	ctx, cancel := server.SignalContext(context.Background(), func(sig os.Signal) {
		log.Infow("Received shutdown signal", "signal", sig.String())
	})
	defer cancel()

	m := metrics.New()
	svc := newCatalog(cfg, m, log)

	reader, err := source.FromConfig(cfg)
	if err != nil {
		return err
	}
	if _, err := svc.Load(ctx, catalog.TriggerStartup, reader); err != nil {
		log.Warnw("Starting with an empty catalog", "error", err)
	}

	return server.New(cfg, svc, m, log).Run(ctx)
}
