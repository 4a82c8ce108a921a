// Package sheet parses sheet service flags and launches the service.
package sheet

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/sheetkeeper/internal/platform/cmd"
	server "github.com/louisbranch/sheetkeeper/internal/services/sheet/app"
)

// Config holds sheet command configuration.
type Config struct {
	Addr        string `env:"SHEET_ADDR" envDefault:":8090"`
	CatalogPath string `env:"CATALOG_DB_PATH" envDefault:"data/catalog.db"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "domain card catalog database; empty disables catalog endpoints")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the sheet HTTP API.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSheet, func(ctx context.Context) error {
		return server.Run(ctx, server.Config{Addr: cfg.Addr, CatalogPath: cfg.CatalogPath})
	})
}
