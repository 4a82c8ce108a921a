package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Run is the service entrypoint for MCP and blocks until ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		return runWithTransport(ctx, cfg.CatalogPath, &mcp.StdioTransport{})
	case TransportHTTP:
		return runWithHTTPTransport(ctx, cfg)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// runWithHTTPTransport serves the same handlers as stdio over streamable HTTP.
func runWithHTTPTransport(ctx context.Context, cfg Config) error {
	server, err := New(ctx, cfg.CatalogPath)
	if err != nil {
		return err
	}
	defer server.Close()

	transport := NewHTTPTransport(cfg.HTTPAddr, server.mcpServer)
	transport.applyConfig(cfg)
	return transport.Start(ctx)
}

// runWithTransport creates a server and serves it over the provided transport.
func runWithTransport(ctx context.Context, catalogPath string, transport mcp.Transport) error {
	server, err := New(ctx, catalogPath)
	if err != nil {
		return err
	}
	return server.serveWithTransport(ctx, transport)
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Close releases the catalog store held by the server.
func (s *Server) Close() error {
	if s == nil || s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return err
	}
	s.store = nil
	return nil
}

// serveWithTransport runs the MCP session and closes the store on every exit path.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close catalog store: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close catalog store: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
