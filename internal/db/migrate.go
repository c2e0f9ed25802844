package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	stdfs "io/fs"

	"github.com/pressly/goose/v3"
)

// Versioned goose files under internal/db/migrations follow the pattern:
//
//	00001_name.sql  with "-- +goose Up" / "-- +goose Down" sections
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationsTable is goose's default version table.
const migrationsTable = "goose_db_version"

// ErrNoSchema is returned when migrating before the users table was created.
var ErrNoSchema = errors.New("users table does not exist; run the schema tool first")

// MigrationState is a flattened view of one migration for printing.
type MigrationState struct {
	Version int64
	Name    string
	Applied bool
}

func newProvider(d *sql.DB) (*goose.Provider, error) {
	if d == nil {
		return nil, errors.New("nil db")
	}
	fsys, err := stdfs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(goose.DialectSQLite3, d, fsys, goose.WithDisableGlobalRegistry(true))
}

func requireSchema(ctx context.Context, d *sql.DB) error {
	ok, err := TableExists(ctx, d, "users")
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoSchema
	}
	return nil
}

// MigrateUp applies every pending migration and returns the versions applied.
func MigrateUp(ctx context.Context, d *sql.DB) ([]int64, error) {
	p, err := newProvider(d)
	if err != nil {
		return nil, err
	}
	if err := requireSchema(ctx, d); err != nil {
		return nil, err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate up: %w", err)
	}
	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
	}
	return applied, nil
}

// RollbackLast rolls back the most recently applied migration.
// It returns the reverted version, or 0 when nothing was applied.
func RollbackLast(ctx context.Context, d *sql.DB) (int64, error) {
	p, err := newProvider(d)
	if err != nil {
		return 0, err
	}
	if err := requireSchema(ctx, d); err != nil {
		return 0, err
	}
	res, err := p.Down(ctx)
	if err != nil {
		if errors.Is(err, goose.ErrNoNextVersion) {
			return 0, nil // nothing to rollback
		}
		return 0, fmt.Errorf("migrate down: %w", err)
	}
	if res == nil || res.Source == nil {
		return 0, nil
	}
	return res.Source.Version, nil
}

// SchemaVersion returns the highest applied migration version (0 if none).
func SchemaVersion(ctx context.Context, d *sql.DB) (int64, error) {
	p, err := newProvider(d)
	if err != nil {
		return 0, err
	}
	return p.GetDBVersion(ctx)
}

// MigrationStatus lists every known migration with its applied state.
func MigrationStatus(ctx context.Context, d *sql.DB) ([]MigrationState, error) {
	p, err := newProvider(d)
	if err != nil {
		return nil, err
	}
	statuses, err := p.Status(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MigrationState, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationState{
			Version: s.Source.Version,
			Name:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}
