package exportsink

import (
	"context"
	"fmt"
	"os"
)

// Open selects a Sink implementation using environment variables.
//
//	UNITGLASS_EXPORT_SINK: fs|s3|memory (default fs)
//	UNITGLASS_EXPORT_FS_ROOT: directory root when sink=fs (default ./exports)
//	(S3 specific variables documented in the infra s3 package)
func Open(ctx context.Context) (Sink, error) {
	driver := os.Getenv("UNITGLASS_EXPORT_SINK")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		return NewFilesystem(os.Getenv("UNITGLASS_EXPORT_FS_ROOT"))
	case DriverS3:
		return OpenS3FromEnv(ctx)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown export sink %s", driver)
	}
}
