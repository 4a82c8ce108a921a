package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/sheetkeeper/internal/platform/branding"
	catalogsqlite "github.com/louisbranch/sheetkeeper/internal/services/catalog/storage/sqlite"
	"github.com/louisbranch/sheetkeeper/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = branding.AppName + " MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves MCP over streamable HTTP.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	// HTTPAddr is the listen address for the HTTP transport. Defaults to
	// localhost:8091.
	HTTPAddr string
	// CatalogPath is the SQLite catalog file. Empty leaves the catalog tools
	// and resources unregistered.
	CatalogPath string
	// AllowedHosts extends the loopback-only Host/Origin allowlist.
	AllowedHosts []string
	// AuthToken, when set, is required as a bearer token on HTTP requests.
	AuthToken string
}

// Server hosts the MCP server and the catalog store behind its card tools.
type Server struct {
	mcpServer *mcp.Server
	store     *catalogsqlite.Store
}

// New opens the catalog (when configured) and registers every tool.
func New(ctx context.Context, catalogPath string) (*Server, error) {
	store, err := openCatalog(ctx, catalogPath)
	if err != nil {
		return nil, err
	}
	var cards domain.CardStore
	if store != nil {
		cards = store
	}
	server, err := newServer(cards)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, err
	}
	server.store = store
	return server, nil
}

// newServer registers tool and resource handlers once. A nil card store
// leaves the catalog module out.
func newServer(cards domain.CardStore) (*Server, error) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	for _, module := range newRegistrationModules(cards) {
		if err := module.register(mcpServerRegistrationAdapter{server: mcpServer}); err != nil {
			return nil, fmt.Errorf("register MCP module %q: %w", module.name, err)
		}
	}
	return &Server{mcpServer: mcpServer}, nil
}

func openCatalog(ctx context.Context, path string) (*catalogsqlite.Store, error) {
	if strings.TrimSpace(path) == "" {
		log.Printf("catalog path not set; catalog tools disabled")
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", filepath.Clean(path), err)
	}
	store, err := catalogsqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open catalog sqlite store: %w", err)
	}
	return store, nil
}
