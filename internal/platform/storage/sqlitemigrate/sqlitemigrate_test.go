package sqlitemigrate

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func count(t *testing.T, db *sql.DB, query string) int {
	t.Helper()
	var n int
	if err := db.QueryRow(query).Scan(&n); err != nil {
		t.Fatalf("query %q: %v", query, err)
	}
	return n
}

func TestApplyRunsFilesInOrderOnce(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	fsys := fstest.MapFS{
		"migrations/002_seed.sql":   {Data: []byte("-- +migrate Up\nINSERT INTO items (id) VALUES ('a');\n-- +migrate Down\nDELETE FROM items;")},
		"migrations/001_create.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE items (id TEXT PRIMARY KEY);")},
		"migrations/README.md":      {Data: []byte("ignored")},
	}

	applied, err := Apply(ctx, db, fsys, "migrations")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(applied) != 2 || applied[0] != "001_create.sql" || applied[1] != "002_seed.sql" {
		t.Fatalf("applied = %v", applied)
	}

	again, err := Apply(ctx, db, fsys, "migrations")
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("second Apply applied %v, want none", again)
	}
	if got := count(t, db, "SELECT COUNT(*) FROM items"); got != 1 {
		t.Fatalf("items = %d, want 1", got)
	}
	if got := count(t, db, "SELECT COUNT(*) FROM schema_migrations"); got != 2 {
		t.Fatalf("history rows = %d, want 2", got)
	}
}

func TestApplyLeavesFailedMigrationUnrecorded(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	bad := fstest.MapFS{"001_bad.sql": {Data: []byte("CREAT TABLE things (id INT);")}}

	if _, err := Apply(ctx, db, bad, ""); err == nil {
		t.Fatal("expected failure for invalid SQL")
	}
	if got := count(t, db, "SELECT COUNT(*) FROM schema_migrations"); got != 0 {
		t.Fatalf("history rows = %d, want 0", got)
	}

	fixed := fstest.MapFS{"001_bad.sql": {Data: []byte("CREATE TABLE things (id INT);")}}
	if _, err := Apply(ctx, db, fixed, ""); err != nil {
		t.Fatalf("Apply fixed: %v", err)
	}
}

func TestApplyToleratesExistingObjects(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	if _, err := db.Exec("CREATE TABLE items (id TEXT PRIMARY KEY)"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	fsys := fstest.MapFS{"001_create.sql": {Data: []byte("CREATE TABLE items (id TEXT PRIMARY KEY);")}}
	if _, err := Apply(ctx, db, fsys, "."); err != nil {
		t.Fatalf("Apply: %v", err)
	}
}

func TestApplyRequiresDB(t *testing.T) {
	if _, err := Apply(context.Background(), nil, fstest.MapFS{}, ""); err == nil {
		t.Fatal("expected error for nil db")
	}
}

func TestUpSection(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no markers", in: "SELECT 1;", want: "SELECT 1;"},
		{name: "up only", in: "-- +migrate Up\nSELECT 1;", want: "\nSELECT 1;"},
		{name: "up and down", in: "-- +migrate Up\nSELECT 1;\n-- +migrate Down\nSELECT 2;", want: "\nSELECT 1;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UpSection(tt.in); got != tt.want {
				t.Fatalf("UpSection() = %q, want %q", got, tt.want)
			}
		})
	}
}
