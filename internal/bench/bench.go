package bench

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"indexBenchmark/internal/db"
	"indexBenchmark/models"
	"indexBenchmark/repository"
)

// DefaultPattern matches names starting with "Michael"; without an index the
// database has to scan every row to answer it.
const DefaultPattern = "Michael%"

// Searcher runs the timed lookup. repository.UserRepository satisfies it.
type Searcher interface {
	SearchByName(ctx context.Context, pattern string) ([]models.User, error)
}

// Recorder receives the query measurement. observability.Metrics satisfies it.
type Recorder interface {
	ObserveQuery(rows int, d time.Duration, indexed bool)
}

// Runner times one pattern-match query against users.full_name.
type Runner struct {
	DB       *sql.DB // used for index detection and the query plan
	Users    Searcher
	Pattern  string
	Log      *slog.Logger
	Recorder Recorder // optional
}

// Result is the outcome of one benchmark query.
type Result struct {
	Pattern string
	Rows    []models.User
	Elapsed time.Duration
	Indexed bool     // ix_users_full_name existed when the query ran
	Plan    []string // EXPLAIN QUERY PLAN detail lines
}

// Label is the human tag printed next to the timing.
func (r Result) Label() string {
	if r.Indexed {
		return "Index"
	}
	return "No Index"
}

// Summary renders the two result lines of the benchmark.
func (r Result) Summary() string {
	return fmt.Sprintf("Found %d records.\nQuery Time (%s): %.5f seconds", len(r.Rows), r.Label(), r.Elapsed.Seconds())
}

// Run executes the query once and measures only its wall-clock time.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	pattern := r.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	log := r.Log
	if log == nil {
		log = slog.Default()
	}
	res := Result{Pattern: pattern}

	if r.DB != nil {
		indexed, err := db.HasIndex(ctx, r.DB, models.UsersTable, models.FullNameIndex)
		if err != nil {
			return res, fmt.Errorf("inspect indexes: %w", err)
		}
		res.Indexed = indexed
		plan, err := db.QueryPlan(ctx, r.DB, repository.SearchByNameSQL, pattern)
		if err != nil {
			return res, fmt.Errorf("query plan: %w", err)
		}
		res.Plan = plan
		log.Debug("query plan", "plan", plan)
	}

	start := time.Now()
	rows, err := r.Users.SearchByName(ctx, pattern)
	res.Elapsed = time.Since(start)
	if err != nil {
		return res, fmt.Errorf("search %q: %w", pattern, err)
	}
	res.Rows = rows

	if r.Recorder != nil {
		r.Recorder.ObserveQuery(len(rows), res.Elapsed, res.Indexed)
	}
	log.Info("benchmark query finished", "pattern", pattern, "rows", len(rows),
		"indexed", res.Indexed, "seconds", fmt.Sprintf("%.5f", res.Elapsed.Seconds()))
	return res, nil
}
