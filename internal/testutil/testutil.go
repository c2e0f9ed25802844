package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"indexBenchmark/internal/db"
	"indexBenchmark/models"
)

// OpenInMemoryDB opens an in-memory SQLite database with the users table created.
// Caller is responsible for closing the DB, typically via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	d := OpenEmptyDB(t, name)
	if err := db.EnsureSchema(context.Background(), d); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return d
}

// OpenEmptyDB opens an in-memory SQLite database without any tables.
func OpenEmptyDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// Shared cache keeps the database alive across connections of the same name.
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// Users returns n deterministic users with unique emails.
func Users(n int) []models.User {
	out := make([]models.User, n)
	for i := range out {
		out[i] = models.User{
			FullName: fmt.Sprintf("User %05d", i),
			Email:    fmt.Sprintf("user%05d@example.test", i),
			Bio:      "bio",
		}
	}
	return out
}
