package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/louisbranch/sheetkeeper/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var listenTCP = net.Listen

// defaultHTTPAddr keeps the HTTP transport on loopback unless configured.
const defaultHTTPAddr = "localhost:8091"

// HTTPTransport serves an MCP server over streamable HTTP on /mcp.
// Requests are checked against a Host/Origin allowlist and, when configured,
// a static bearer token before reaching the MCP handler.
type HTTPTransport struct {
	addr         string
	allowedHosts map[string]struct{}
	apiToken     string
	handler      http.Handler
	httpServer   *http.Server
}

// NewHTTPTransport creates an HTTP transport for server.
func NewHTTPTransport(addr string, server *mcp.Server) *HTTPTransport {
	if strings.TrimSpace(addr) == "" {
		addr = defaultHTTPAddr
	}
	return &HTTPTransport{
		addr:         addr,
		allowedHosts: map[string]struct{}{},
		handler: mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return server
		}, nil),
	}
}

func (t *HTTPTransport) applyConfig(cfg Config) {
	if t == nil {
		return
	}
	t.allowedHosts = parseAllowedHosts(cfg.AllowedHosts)
	t.apiToken = strings.TrimSpace(cfg.AuthToken)
}

// Handler returns the routed HTTP handler.
func (t *HTTPTransport) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/mcp/health", t.handleHealth)
	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if err := t.validateLocalRequest(r); err != nil {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		if !t.authorizeRequest(w, r) {
			return
		}
		t.handler.ServeHTTP(w, r)
	})
	return mux
}

// Start serves HTTP until ctx is canceled, then shuts down gracefully.
func (t *HTTPTransport) Start(ctx context.Context) error {
	listener, err := listenTCP("tcp", t.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", t.addr, err)
	}
	t.httpServer = &http.Server{
		Handler:           t.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	log.Printf("MCP HTTP server listening at %v", listener.Addr())
	errChan := make(chan error, 1)
	go func() {
		errChan <- t.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := t.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server error: %w", err)
	}
}
