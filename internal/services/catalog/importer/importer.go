// Package importer loads domain card packs into the catalog store.
package importer

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	platformcmd "github.com/louisbranch/sheetkeeper/internal/platform/cmd"
	"github.com/louisbranch/sheetkeeper/internal/services/catalog/storage"
	catalogsqlite "github.com/louisbranch/sheetkeeper/internal/services/catalog/storage/sqlite"
)

// Config holds importer settings. Env values are defaults; flags win.
type Config struct {
	Dir         string `env:"CATALOG_IMPORT_DIR"`
	Source      string `env:"CATALOG_IMPORT_SOURCE"`
	DBPath      string `env:"CATALOG_DB_PATH" envDefault:"data/catalog.db"`
	DryRun      bool   `env:"CATALOG_IMPORT_DRY_RUN"`
	S3Region    string `env:"CATALOG_S3_REGION" envDefault:"us-east-1"`
	S3Endpoint  string `env:"CATALOG_S3_ENDPOINT"`
	S3PathStyle bool   `env:"CATALOG_S3_PATH_STYLE"`
}

// ParseConfig reads env defaults then CLI flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "local directory containing a domain card pack")
	fs.StringVar(&cfg.Source, "source", cfg.Source, "remote pack location, e.g. s3://bucket/prefix")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "catalog database path")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "validate without writing to the database")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "custom S3 endpoint, e.g. MinIO")
	fs.BoolVar(&cfg.S3PathStyle, "s3-path-style", cfg.S3PathStyle, "use path-style S3 addressing")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	dir, source := strings.TrimSpace(cfg.Dir), strings.TrimSpace(cfg.Source)
	switch {
	case dir == "" && source == "":
		return Config{}, errors.New("one of -dir or -source is required")
	case dir != "" && source != "":
		return Config{}, errors.New("-dir and -source are mutually exclusive")
	}
	if !cfg.DryRun && strings.TrimSpace(cfg.DBPath) == "" {
		return Config{}, errors.New("db-path is required")
	}
	return cfg, nil
}

// Result summarizes one import.
type Result struct {
	File     string
	Cards    int
	Imported int
}

// Run resolves the configured source, imports its pack, and reports to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	src, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}

	var store storage.DomainCardStore
	if !cfg.DryRun {
		if err := ensureParentDir(cfg.DBPath); err != nil {
			return err
		}
		sqliteStore, err := catalogsqlite.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open catalog store: %w", err)
		}
		defer sqliteStore.Close()
		store = sqliteStore
	}

	res, err := Import(ctx, src, store)
	if err != nil {
		return err
	}
	if cfg.DryRun {
		_, err = fmt.Fprintf(out, "validated %d card(s) from %s/%s\n", res.Cards, src, res.File)
		return err
	}
	_, err = fmt.Fprintf(out, "imported %d card(s) from %s/%s into %s\n", res.Imported, src, res.File, cfg.DBPath)
	return err
}

// Import reads, validates and stores the pack in src. A nil store validates
// without writing.
func Import(ctx context.Context, src Source, store storage.DomainCardStore) (Result, error) {
	name, data, err := readPack(ctx, src)
	if err != nil {
		return Result{}, err
	}
	pack, err := decodePack(name, data)
	if err != nil {
		return Result{}, err
	}
	if err := validatePack(&pack); err != nil {
		return Result{}, fmt.Errorf("validate %s: %w", name, err)
	}

	res := Result{File: name, Cards: len(pack.Items)}
	if store == nil {
		return res, nil
	}
	for _, card := range pack.Items {
		if err := store.PutDomainCard(ctx, card); err != nil {
			return res, fmt.Errorf("put domain card %s: %w", card.ID, err)
		}
		res.Imported++
	}
	log.Printf("imported %d domain cards from %s", res.Imported, src)
	return res, nil
}

func openSource(ctx context.Context, cfg Config) (Source, error) {
	if dir := strings.TrimSpace(cfg.Dir); dir != "" {
		return DirSource{Dir: dir}, nil
	}
	bucket, prefix, err := ParseS3URI(cfg.Source)
	if err != nil {
		return nil, err
	}
	return NewS3Source(ctx, S3Config{
		Bucket:    bucket,
		Prefix:    prefix,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		PathStyle: cfg.S3PathStyle,
	})
}

func ensureParentDir(dbPath string) error {
	dir := filepath.Dir(filepath.Clean(dbPath))
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	return nil
}
