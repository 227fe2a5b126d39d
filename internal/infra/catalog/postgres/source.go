// Package postgres reads the dimension catalog from a Postgres database,
// mirroring the SQLite layout for deployments with a shared config store.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"unitglass/pkg/units"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/unitglass?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

const schema = `CREATE TABLE IF NOT EXISTS unit_catalog (
	dimension TEXT NOT NULL,
	system TEXT NOT NULL,
	unit TEXT NOT NULL,
	PRIMARY KEY (dimension, system)
)`

// Source reads and writes the unit catalog in Postgres.
type Source struct {
	db *sql.DB
}

// NewSource opens a Postgres-backed catalog using the provided DSN (falls
// back to defaultDSN) and ensures the catalog table exists.
func NewSource(ctx context.Context, dsn string) (*Source, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create unit_catalog table: %w", err)
	}
	return &Source{db: db}, nil
}

// Load reads the full catalog.
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
				`INSERT INTO unit_catalog (dimension, system, unit) VALUES ($1, $2, $3)`,
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

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
