// Package exportsink stores rendered catalog exports (registry snapshots,
// dimension tables) produced by the export tooling. Higher layers depend on
// the Sink interface; concrete backends live under internal/infra/exportsink.
package exportsink

import (
	"context"
	"io"
	"time"
)

// Driver identifies a concrete export sink backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"     // local directory (default, dev)
	DriverS3         Driver = "s3"     // S3 / MinIO compatible
	DriverMemory     Driver = "memory" // in-memory (tests)
)

// Info describes a stored export.
type Info struct {
	Key         string    `json:"key"`
	Size        int64     `json:"size_bytes"`
	ContentType string    `json:"content_type,omitempty"`
	WrittenAt   time.Time `json:"written_at"`
}

// Sink persists one export document per key. Writing an existing key
// replaces it; exports are idempotent renders of the same catalog.
type Sink interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error)
	Driver() Driver
}
