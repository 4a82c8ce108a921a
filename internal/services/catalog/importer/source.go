package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrPackNotFound is returned when a source holds none of the pack files.
var ErrPackNotFound = errors.New("no domain_cards.json, domain_cards.yaml or domain_cards.yml found")

// Source reads named files from a card-pack location.
type Source interface {
	// Read returns the file contents, or an error wrapping fs.ErrNotExist.
	Read(ctx context.Context, name string) ([]byte, error)
	// String describes the location for log output.
	String() string
}

// readPack returns the first pack file present in src.
func readPack(ctx context.Context, src Source) (string, []byte, error) {
	for _, name := range packFileNames {
		data, err := src.Read(ctx, name)
		if err == nil {
			return name, data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("read %s from %s: %w", name, src, err)
		}
	}
	return "", nil, fmt.Errorf("%s: %w", src, ErrPackNotFound)
}

// DirSource reads packs from a local directory.
type DirSource struct {
	Dir string
}

func (d DirSource) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(d.Dir, name))
}

func (d DirSource) String() string { return d.Dir }

// S3Config locates a pack under an S3 (or S3-compatible) prefix.
type S3Config struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	PathStyle bool
}

// ParseS3URI splits s3://bucket/prefix into bucket and prefix.
func ParseS3URI(uri string) (bucket, prefix string, err error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), "s3://")
	if !ok {
		return "", "", fmt.Errorf("source %q must start with s3://", uri)
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("source %q has no bucket", uri)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads packs from objects under a bucket prefix.
type S3Source struct {
	client objectGetter
	bucket string
	prefix string
}

// NewS3Source builds an S3 client from the default AWS credential chain.
// Endpoint and PathStyle support MinIO and other S3-compatible stores.
func NewS3Source(ctx context.Context, cfg S3Config) (*S3Source, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("s3 bucket is required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Source{client: client, bucket: cfg.Bucket, prefix: strings.Trim(cfg.Prefix, "/")}, nil
}

func (s *S3Source) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func (s *S3Source) Read(ctx context.Context, name string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("%s: %w", s.key(name), fs.ErrNotExist)
		}
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *S3Source) String() string {
	return "s3://" + path.Join(s.bucket, s.prefix)
}
