// Package sqlite stores the dimension catalog as (dimension, system, unit)
// rows in a SQLite database, one row per cell of the table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"unitglass/pkg/units"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const schema = `CREATE TABLE IF NOT EXISTS unit_catalog (
	dimension TEXT NOT NULL,
	system TEXT NOT NULL,
	unit TEXT NOT NULL,
	PRIMARY KEY (dimension, system)
)`

// Source reads and writes the unit catalog in a SQLite file.
type Source struct {
	db   *sql.DB
	path string
}

// NewSource opens (creating if needed) a SQLite-backed catalog.
func NewSource(path string) (*Source, error) {
	if path == "" {
		path = "unitglass.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create unit_catalog table: %w", err)
	}
	return &Source{db: db, path: path}, nil
}

// Load reads the full catalog. An empty database yields an empty table; the
// registry's own validation rejects that downstream.
func (s *Source) Load(ctx context.Context) (units.Table, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT dimension, system, unit FROM unit_catalog`)
	if err != nil {
		return nil, fmt.Errorf("select unit_catalog: %w", err)
	}
	defer func() { _ = rows.Close() }()

	table := units.Table{}
	for rows.Next() {
		var dimension, system, unit string
		if err := rows.Scan(&dimension, &system, &unit); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		entry, ok := table[dimension]
		if !ok {
			entry = units.SystemUnits{}
			table[dimension] = entry
		}
		entry[units.SystemID(system)] = unit
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unit_catalog: %w", err)
	}
	return table, nil
}

// Save replaces the stored catalog with the given table in one transaction.
func (s *Source) Save(ctx context.Context, table units.Table) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM unit_catalog`); err != nil {
		return fmt.Errorf("clear unit_catalog: %w", err)
	}
	for dimension, entry := range table {
		for system, unit := range entry {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO unit_catalog (dimension, system, unit) VALUES (?, ?, ?)`,
				dimension, string(system), unit); err != nil {
				return fmt.Errorf("insert %s/%s: %w", dimension, system, err)
			}
		}
	}
	return tx.Commit()
}

// Close releases the database handle.
func (s *Source) Close() error {
	return s.db.Close()
}
