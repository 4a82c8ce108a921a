package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestIsLoopbackHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"LOCALHOST", true},
		{"127.0.0.1", true},
		{"::1", true},
		{" localhost ", true},
		{"example.com", false},
		{"127.0.0.2", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := isLoopbackHost(tt.host); got != tt.want {
				t.Errorf("isLoopbackHost(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOk bool
	}{
		{"localhost:8091", "localhost", true},
		{"example.com:443", "example.com", true},
		{"[::1]:8091", "::1", true},
		{"[::1]", "::1", true},
		{"::1", "::1", true},
		{"example.com", "example.com", true},
		{"", "", false},
		{"  ", "", false},
		{"[::1", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := normalizeHost(tt.input)
			if got != tt.want || ok != tt.wantOk {
				t.Errorf("normalizeHost(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestValidateLocalRequest(t *testing.T) {
	transport := NewHTTPTransport("", mcp.NewServer(&mcp.Implementation{Name: "test"}, nil))
	transport.applyConfig(Config{AllowedHosts: []string{" Sheets.Example.com ", ""}})

	tests := []struct {
		name    string
		host    string
		origin  string
		wantErr bool
	}{
		{name: "loopback", host: "localhost:8091"},
		{name: "allowed host", host: "sheets.example.com"},
		{name: "unknown host", host: "evil.example.com", wantErr: true},
		{name: "allowed origin", host: "localhost", origin: "https://sheets.example.com"},
		{name: "foreign origin", host: "localhost", origin: "https://evil.example.com", wantErr: true},
		{name: "malformed origin", host: "localhost", origin: "::", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
			req.Host = tt.host
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			err := transport.validateLocalRequest(req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateLocalRequest() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHandlerEnforcesBearerToken(t *testing.T) {
	transport := NewHTTPTransport("", mcp.NewServer(&mcp.Implementation{Name: "test"}, nil))
	transport.applyConfig(Config{AuthToken: "secret"})
	handler := transport.Handler()

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing"},
		{name: "wrong scheme", header: "Basic secret"},
		{name: "wrong token", header: "Bearer nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
			req.Host = "localhost"
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			if rec.Header().Get("WWW-Authenticate") == "" {
				t.Fatal("missing WWW-Authenticate header")
			}
		})
	}

	t.Run("forbidden host", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		req.Host = "evil.example.com"
		req.Header.Set("Authorization", "Bearer secret")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})
}

func TestHandleHealth(t *testing.T) {
	handler := NewHTTPTransport("", mcp.NewServer(&mcp.Implementation{Name: "test"}, nil)).Handler()

	req := httptest.NewRequest(http.MethodGet, "/mcp/health", nil)
	req.Host = "localhost"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("health = %d %q", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/mcp/health", nil)
	req.Host = "localhost"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestHTTPTransportServesTools(t *testing.T) {
	server, err := newServer(nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	transport := NewHTTPTransport("", server.mcpServer)
	transport.applyConfig(Config{AuthToken: "secret"})
	httpServer := httptest.NewServer(transport.Handler())
	defer httpServer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint:   httpServer.URL + "/mcp",
		HTTPClient: &http.Client{Transport: bearerTransport{token: "secret"}},
	}, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "thresholds_ds",
		Arguments: map[string]any{"severe": 10, "override": true, "ds": "15"},
	})
	if err != nil {
		t.Fatalf("call thresholds_ds: %v", err)
	}
	if result.IsError {
		t.Fatalf("thresholds_ds returned error content: %+v", result.Content)
	}
	out := decodeStructuredContent[struct {
		DS int `json:"ds"`
	}](t, result.StructuredContent)
	if out.DS != 15 {
		t.Fatalf("ds = %d, want 15", out.DS)
	}
}

type bearerTransport struct {
	token string
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return http.DefaultTransport.RoundTrip(req)
}
