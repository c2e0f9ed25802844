package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Options control how the SQLite file is opened.
type Options struct {
	Driver string // "sqlite3" (mattn) or "sqlite" (modernc); defaults to "sqlite3"
	Path   string // file path or file: URI; defaults to "production.db"
	// CaseSensitiveLike turns on PRAGMA case_sensitive_like, which lets SQLite
	// satisfy a prefix LIKE through a plain index on the column.
	CaseSensitiveLike bool
}

// Open opens (or creates) a local SQLite database file with the default driver.
// The schema is not touched; see EnsureSchema and MigrateUp.
func Open(path string) (*sql.DB, error) {
	return OpenWith(Options{Path: path})
}

// OpenWith opens (or creates) a local SQLite database file.
// The pool is pinned to one connection because pragmas are per-connection and
// every tool in this module runs sequentially.
func OpenWith(o Options) (*sql.DB, error) {
	if o.Driver == "" {
		o.Driver = "sqlite3"
	}
	if o.Path == "" {
		o.Path = "production.db"
	}
	d, err := sql.Open(o.Driver, o.Path)
	if err != nil {
		return nil, err
	}
	d.SetMaxOpenConns(1)
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, err
	}
	// journal_mode may not be supported in some contexts (e.g., in-memory). Ignore errors.
	_, _ = d.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := d.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = d.Close()
		return nil, err
	}
	if o.CaseSensitiveLike {
		if _, err := d.Exec(`PRAGMA case_sensitive_like=ON`); err != nil {
			_ = d.Close()
			return nil, err
		}
	}
	return d, nil
}

const createUsersTable = `CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY,
    full_name TEXT,
    email TEXT UNIQUE,
    bio TEXT
)`

// EnsureSchema creates the users table if it does not exist yet.
// Existing rows, indexes and migrated columns are left alone.
func EnsureSchema(ctx context.Context, d *sql.DB) error {
	if d == nil {
		return errors.New("nil db")
	}
	if _, err := d.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

// ResetSchema drops the users table together with the migration history and
// recreates the base table.
func ResetSchema(ctx context.Context, d *sql.DB) error {
	if d == nil {
		return errors.New("nil db")
	}
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS users`,
		`DROP TABLE IF EXISTS ` + migrationsTable,
		createUsersTable,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("reset schema: %w", err)
		}
	}
	return tx.Commit()
}

// TableExists reports whether a table with the given name exists.
func TableExists(ctx context.Context, d *sql.DB, table string) (bool, error) {
	var n int
	err := d.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
