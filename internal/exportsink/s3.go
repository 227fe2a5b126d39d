package exportsink

import (
	"context"
	"io"
	"time"

	infraS3 "unitglass/internal/infra/exportsink/s3"
)

// S3Config re-exports the infra S3 configuration type.
type S3Config = infraS3.Config

// NewS3 constructs an S3-backed Sink from the provided configuration.
func NewS3(ctx context.Context, cfg S3Config) (Sink, error) {
	store, err := infraS3.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return s3Sink{store: store}, nil
}

// OpenS3FromEnv constructs an S3 sink using environment variables.
func OpenS3FromEnv(ctx context.Context) (Sink, error) {
	store, err := infraS3.OpenFromEnv(ctx)
	if err != nil {
		return nil, err
	}
	return s3Sink{store: store}, nil
}

type s3Sink struct {
	store *infraS3.Store
}

func (s3Sink) Driver() Driver { return DriverS3 }

func (s s3Sink) Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error) {
	size, err := s.store.Put(ctx, key, r, contentType)
	if err != nil {
		return Info{}, err
	}
	return Info{Key: key, Size: size, ContentType: contentType, WrittenAt: time.Now().UTC()}, nil
}
