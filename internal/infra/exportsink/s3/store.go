// Package s3 writes catalog exports to an S3-compatible backend (AWS S3 or
// MinIO). Minimal surface area: single bucket, keys map to object keys.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config holds explicit construction parameters (mostly for tests). For prod
// we rely primarily on environment variables.
type Config struct {
	Region          string
	Bucket          string
	Endpoint        string // optional; if set enables custom endpoint (e.g. MinIO)
	AccessKeyID     string // optional (falls back to default credentials chain)
	SecretAccessKey string // optional
	SessionToken    string // optional
	PathStyle       bool
}

// objectPutter is the slice of the S3 client the store needs; tests inject a
// fake implementation.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store writes export documents to a single S3 bucket.
type Store struct {
	client objectPutter
	bucket string
}

// Environment variables:
//   UNITGLASS_EXPORT_SINK=s3
//   UNITGLASS_EXPORT_S3_BUCKET=<bucket> (required)
//   UNITGLASS_EXPORT_S3_REGION=<region> (default us-east-1)
//   UNITGLASS_EXPORT_S3_ENDPOINT=<url> (optional, for MinIO)
//   UNITGLASS_EXPORT_S3_PATH_STYLE=true|false (default false)
//   AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY / AWS_SESSION_TOKEN (optional)

// New creates an S3 export store from Config.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// NewWithClient constructs a store around an existing client, for tests.
func NewWithClient(client objectPutter, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// OpenFromEnv constructs an S3 store from process environment.
func OpenFromEnv(ctx context.Context) (*Store, error) {
	bucket := os.Getenv("UNITGLASS_EXPORT_S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("UNITGLASS_EXPORT_S3_BUCKET required for s3 sink")
	}
	cfg := Config{
		Bucket:    bucket,
		Region:    os.Getenv("UNITGLASS_EXPORT_S3_REGION"),
		Endpoint:  os.Getenv("UNITGLASS_EXPORT_S3_ENDPOINT"),
		PathStyle: strings.EqualFold(os.Getenv("UNITGLASS_EXPORT_S3_PATH_STYLE"), "true"),
	}
	return New(ctx, cfg)
}

// Put uploads one export document and returns the number of bytes written.
// The body is buffered so the SDK can sign a known-length payload.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, contentType string) (int64, error) {
	if key == "" {
		return 0, fmt.Errorf("empty key")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	input := &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = &contentType
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}
