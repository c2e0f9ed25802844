package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"indexBenchmark/models"
)

const (
	insertUserSQL   = `INSERT INTO users (full_name, email, bio) VALUES (?, ?, ?)`
	selectUserCols  = `SELECT id, full_name, email, bio FROM users`
	batchTimeout    = 2 * time.Minute
	searchTimeout   = time.Minute
	rowQueryTimeout = 3 * time.Second
)

type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository wraps db for struct scanning. Queries use '?' placeholders,
// which both SQLite drivers accept.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: sqlx.NewDb(db, "sqlite3")}
}

// InsertBatch writes users in one transaction with a single prepared insert.
// Any failure rolls back the whole batch; earlier batches are unaffected.
func (r *UserRepository) InsertBatch(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, batchTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PreparexContext(ctx, insertUserSQL)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for i := range users {
		u := &users[i]
		if _, err := stmt.ExecContext(ctx, u.FullName, u.Email, u.Bio); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert user %q: %w", u.Email, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of rows in users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, rowQueryTimeout)
	defer cancel()

	var u models.User
	err := r.db.GetContext(ctx, &u, selectUserCols+` WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, rowQueryTimeout)
	defer cancel()

	var u models.User
	err := r.db.GetContext(ctx, &u, selectUserCols+` WHERE email = ?`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out []models.User
	if err := r.db.SelectContext(ctx, &out, selectUserCols+` ORDER BY id LIMIT ? OFFSET ?`, limit, offset); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByName returns every user whose full_name matches the LIKE pattern,
// in whatever order the planner produces. No ORDER BY is applied so the
// statement measures only the lookup.
func (r *UserRepository) SearchByName(ctx context.Context, pattern string) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	var out []models.User
	if err := r.db.SelectContext(ctx, &out, SearchByNameSQL, pattern); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByNameSQL is the benchmark statement, exported for query plan inspection.
const SearchByNameSQL = selectUserCols + ` WHERE full_name LIKE ?`
