package mcp

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.HTTPAddr != "localhost:8091" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.CatalogPath != "" {
		t.Fatalf("expected no default catalog, got %q", cfg.CatalogPath)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("SHEETKEEPER_MCP_HTTP_ADDR", "env-http")
	t.Setenv("SHEETKEEPER_MCP_ALLOWED_HOSTS", "a.example.com,b.example.com")
	t.Setenv("SHEETKEEPER_CATALOG_DB_PATH", "env.db")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	args := []string{"-http-addr", "flag-http", "-transport", " HTTP "}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "flag-http" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected transport http, got %q", cfg.Transport)
	}
	if cfg.CatalogPath != "env.db" {
		t.Fatalf("expected env catalog, got %q", cfg.CatalogPath)
	}
	if len(cfg.AllowedHosts) != 2 || cfg.AllowedHosts[1] != "b.example.com" {
		t.Fatalf("allowed hosts = %v", cfg.AllowedHosts)
	}
}
