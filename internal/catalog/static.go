package catalog

import (
	"context"

	"unitglass/pkg/units"
)

// StaticSource serves a fixed in-memory table.
type StaticSource struct {
	table units.Table
}

// NewStatic wraps a table as a source; nil means the built-in default
// catalog.
func NewStatic(table units.Table) *StaticSource {
	if table == nil {
		table = units.DefaultTable()
	}
	return &StaticSource{table: table}
}

// Driver implements Source.
func (s *StaticSource) Driver() Driver { return DriverStatic }

// Load implements Source. Callers get a copy, never the backing table.
func (s *StaticSource) Load(context.Context) (units.Table, error) {
	return s.table.Clone(), nil
}
