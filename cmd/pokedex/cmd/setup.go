package cmd

import (
	"fmt"

	"github.com/RamiAldahir/Pokedex-Tracker/internal/catalog"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/config"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/generation"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/logger"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/metrics"
)

// loadConfig loads the config file, applies CLI overrides and validates the result.
func loadConfig(addr string) (*config.Config, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat, overrides.Source, addr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newCatalog wires a store, loader and service over the default range table.
func newCatalog(cfg *config.Config, m *metrics.Collector, log *logger.Logger) *catalog.Service {
	ranges := generation.Default()
	return catalog.NewService(
		catalog.NewStore(ranges),
		catalog.NewLoader(ranges, cfg.Catalog.Columns, log),
		m,
		log,
	)
}
