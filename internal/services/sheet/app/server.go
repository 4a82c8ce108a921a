// Package server wires the sheet HTTP API to its catalog store and owns the
// listener lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/sheetkeeper/internal/platform/metrics"
	"github.com/louisbranch/sheetkeeper/internal/platform/timeouts"
	catalogsqlite "github.com/louisbranch/sheetkeeper/internal/services/catalog/storage/sqlite"
	"github.com/louisbranch/sheetkeeper/internal/services/sheet/api/httpapi"
)

// Config configures a sheet server.
type Config struct {
	// Addr is the TCP listen address, e.g. ":8090".
	Addr string
	// CatalogPath is the SQLite catalog file. Empty disables the catalog
	// endpoints.
	CatalogPath string
}

// Server hosts the sheet HTTP API and its catalog store.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	store      *catalogsqlite.Store
}

// New opens the catalog (when configured) and binds the listener.
func New(ctx context.Context, cfg Config) (*Server, error) {
	store, err := openCatalog(ctx, cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	opts := httpapi.Options{Metrics: metrics.NewRecorder("sheet")}
	if store != nil {
		opts.Cards = store
	}
	return &Server{
		listener: listener,
		httpServer: &http.Server{
			Handler:           httpapi.New(opts),
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		store: store,
	}, nil
}

// Addr returns the listener address.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates a server and serves until ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	srv, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

// Serve handles requests until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("sheet server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case err := <-serveErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the listener and catalog store.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close catalog store: %v", err)
		}
		s.store = nil
	}
}

func openCatalog(ctx context.Context, path string) (*catalogsqlite.Store, error) {
	if strings.TrimSpace(path) == "" {
		log.Printf("catalog path not set; catalog endpoints disabled")
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create catalog dir: %w", err)
		}
	}
	store, err := catalogsqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open catalog sqlite store: %w", err)
	}
	return store, nil
}
