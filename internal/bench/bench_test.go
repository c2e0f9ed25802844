package bench

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"indexBenchmark/internal/db"
	"indexBenchmark/internal/seed"
	"indexBenchmark/internal/testutil"
	"indexBenchmark/models"
	"indexBenchmark/repository"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubSearcher struct {
	rows []models.User
	err  error
	got  string
}

func (s *stubSearcher) SearchByName(_ context.Context, pattern string) ([]models.User, error) {
	s.got = pattern
	return s.rows, s.err
}

type queryRecorder struct {
	rows    int
	indexed bool
	calls   int
}

func (r *queryRecorder) ObserveQuery(rows int, _ time.Duration, indexed bool) {
	r.rows, r.indexed = rows, indexed
	r.calls++
}

func TestRunner_DefaultsAndSummary(t *testing.T) {
	s := &stubSearcher{rows: make([]models.User, 3)}
	rec := &queryRecorder{}
	r := &Runner{Users: s, Log: quiet, Recorder: rec}

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, DefaultPattern, s.got)
	require.Len(t, res.Rows, 3)
	require.Equal(t, "No Index", res.Label())
	require.True(t, strings.HasPrefix(res.Summary(), "Found 3 records.\nQuery Time (No Index): "))
	require.Equal(t, 1, rec.calls)
	require.Equal(t, 3, rec.rows)
}

func TestRunner_PropagatesSearchError(t *testing.T) {
	boom := errors.New("no such table: users")
	r := &Runner{Users: &stubSearcher{err: boom}, Log: quiet}
	_, err := r.Run(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestRunner_SameRowsBeforeAndAfterMigration(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "bench_migration")
	ctx := context.Background()
	repo := repository.NewUserRepository(d)

	s := &seed.Seeder{Gen: seed.NewFakeGenerator(3), Writer: repo, BatchSize: 500, Log: quiet}
	_, err := s.Run(ctx, 2000)
	require.NoError(t, err)
	// Guarantee a non-empty match set regardless of the faker's draw.
	require.NoError(t, repo.InsertBatch(ctx, []models.User{
		{FullName: "Michael Bluth", Email: "michael.bluth@example.test", Bio: "x"},
		{FullName: "Michaela Quinn", Email: "mq@example.test", Bio: "y"},
	}))

	r := &Runner{DB: d, Users: repo, Pattern: "Michael%", Log: quiet}
	before, err := r.Run(ctx)
	require.NoError(t, err)
	require.False(t, before.Indexed)
	require.NotEmpty(t, before.Plan)
	require.GreaterOrEqual(t, len(before.Rows), 2)

	_, err = db.MigrateUp(ctx, d)
	require.NoError(t, err)

	after, err := r.Run(ctx)
	require.NoError(t, err)
	require.True(t, after.Indexed)
	require.Equal(t, "Index", after.Label())

	sortByID(before.Rows)
	sortByID(after.Rows)
	require.Equal(t, before.Rows, after.Rows)
}

func sortByID(s []models.User) {
	sort.Slice(s, func(i, j int) bool { return s[i].ID < s[j].ID })
}
