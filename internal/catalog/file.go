package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"unitglass/pkg/units"
)

// FileSource reads the dimension table from a JSON file shaped like
// units.Table: {"pressure": {"si": "pascal", ...}, ...}.
type FileSource struct {
	path string
}

// NewFile constructs a file-backed source.
func NewFile(path string) *FileSource {
	return &FileSource{path: path}
}

// Driver implements Source.
func (s *FileSource) Driver() Driver { return DriverFile }

// Load implements Source.
func (s *FileSource) Load(context.Context) (units.Table, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var table units.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", s.path, err)
	}
	return table, nil
}

// SaveFile writes a table as JSON, creating parent directories, so
// provisioning tooling can seed file catalogs.
func SaveFile(path string, table units.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create dirs: %w", err)
	}
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write catalog file: %w", err)
	}
	return nil
}
