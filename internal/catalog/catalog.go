// Package catalog loads the dimension table the unit registry is built from.
// It re-exports the infra-backed sources so the rest of the tree depends on
// the Source interface instead of importing driver packages directly.
package catalog

import (
	"context"
	"fmt"
	"os"

	"unitglass/pkg/units"
)

// Driver identifies a catalog source driver.
type Driver string

const (
	// DriverStatic serves the compiled-in default table.
	DriverStatic Driver = "static"
	// DriverFile reads the table from a JSON file.
	DriverFile Driver = "file"
	// DriverSQLite reads the table from a SQLite database.
	DriverSQLite Driver = "sqlite"
	// DriverPostgres reads the table from a Postgres database.
	DriverPostgres Driver = "postgres"
)

// Source yields the dimension table used to build a units.Registry.
type Source interface {
	Driver() Driver
	Load(ctx context.Context) (units.Table, error)
}

// Open selects a catalog source from environment variables.
//
//	UNITGLASS_CATALOG_DRIVER: static|file|sqlite|postgres (default static)
//	UNITGLASS_CATALOG_FILE: path when driver=file
//	UNITGLASS_CATALOG_SQLITE_PATH: path when driver=sqlite
//	UNITGLASS_CATALOG_POSTGRES_DSN: DSN when driver=postgres
func Open(ctx context.Context) (Source, error) {
	driver := os.Getenv("UNITGLASS_CATALOG_DRIVER")
	if driver == "" {
		driver = string(DriverStatic)
	}
	switch Driver(driver) {
	case DriverStatic:
		return NewStatic(nil), nil
	case DriverFile:
		path := os.Getenv("UNITGLASS_CATALOG_FILE")
		if path == "" {
			return nil, fmt.Errorf("UNITGLASS_CATALOG_FILE required for file driver")
		}
		return NewFile(path), nil
	case DriverSQLite:
		return NewSQLite(os.Getenv("UNITGLASS_CATALOG_SQLITE_PATH"))
	case DriverPostgres:
		return NewPostgres(ctx, os.Getenv("UNITGLASS_CATALOG_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown catalog driver %s", driver)
	}
}
