// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"strings"

	entrypoint "github.com/louisbranch/sheetkeeper/internal/platform/cmd"
	"github.com/louisbranch/sheetkeeper/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Transport    string   `env:"MCP_TRANSPORT"     envDefault:"stdio"`
	HTTPAddr     string   `env:"MCP_HTTP_ADDR"     envDefault:"localhost:8091"`
	CatalogPath  string   `env:"CATALOG_DB_PATH"`
	AllowedHosts []string `env:"MCP_ALLOWED_HOSTS" envSeparator:","`
	AuthToken    string   `env:"MCP_AUTH_TOKEN"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "domain card catalog database; empty disables catalog tools")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Transport = strings.ToLower(strings.TrimSpace(cfg.Transport))
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return service.Run(ctx, service.Config{
			Transport:    service.TransportKind(cfg.Transport),
			HTTPAddr:     cfg.HTTPAddr,
			CatalogPath:  cfg.CatalogPath,
			AllowedHosts: cfg.AllowedHosts,
			AuthToken:    cfg.AuthToken,
		})
	})
}
