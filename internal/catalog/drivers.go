package catalog

import (
	"context"

	infrapostgres "unitglass/internal/infra/catalog/postgres"
	infrasqlite "unitglass/internal/infra/catalog/sqlite"
)

// NewSQLite constructs a SQLite-backed catalog source.
func NewSQLite(path string) (Source, error) {
	src, err := infrasqlite.NewSource(path)
	if err != nil {
		return nil, err
	}
	return sqliteSource{src}, nil
}

// NewPostgres constructs a Postgres-backed catalog source.
func NewPostgres(ctx context.Context, dsn string) (Source, error) {
	src, err := infrapostgres.NewSource(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return postgresSource{src}, nil
}

type sqliteSource struct {
	*infrasqlite.Source
}

func (sqliteSource) Driver() Driver { return DriverSQLite }

type postgresSource struct {
	*infrapostgres.Source
}

func (postgresSource) Driver() Driver { return DriverPostgres }
