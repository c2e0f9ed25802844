package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"indexBenchmark/internal/testutil"
	"indexBenchmark/models"
	"indexBenchmark/repository"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// seqGen hands out cheap deterministic users.
type seqGen struct{ n int }

func (g *seqGen) Next() (models.User, error) {
	g.n++
	return models.User{
		FullName: fmt.Sprintf("User %d", g.n),
		Email:    fmt.Sprintf("u%d@example.test", g.n),
		Bio:      "bio",
	}, nil
}

// recWriter records batch sizes and keeps copies of every row.
type recWriter struct {
	sizes  []int
	rows   []models.User
	failAt int // 1-based batch number that fails; 0 never
}

func (w *recWriter) InsertBatch(_ context.Context, users []models.User) error {
	if w.failAt != 0 && len(w.sizes)+1 == w.failAt {
		return errors.New("disk full")
	}
	w.sizes = append(w.sizes, len(users))
	w.rows = append(w.rows, users...)
	return nil
}

type recRecorder struct{ rows, batches int }

func (r *recRecorder) ObserveBatch(rows int, _ time.Duration) {
	r.rows += rows
	r.batches++
}

func TestSeeder_BatchBoundaries(t *testing.T) {
	cases := []struct {
		name string
		n    int
		size int
		want []int
	}{
		{"25k", 25000, 10000, []int{10000, 10000, 5000}},
		{"default", DefaultCount, DefaultBatchSize, []int{10000, 10000, 10000, 10000, 10000, 10000, 10000, 10000, 10000, 10000, 300}},
		{"exact multiple", 20000, 10000, []int{10000, 10000}},
		{"below threshold", 7, 10000, []int{7}},
		{"zero", 0, 10000, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := &recWriter{}
			rec := &recRecorder{}
			s := &Seeder{Gen: &seqGen{}, Writer: w, BatchSize: tc.size, Log: quiet, Recorder: rec}
			res, err := s.Run(context.Background(), tc.n)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if !reflect.DeepEqual(w.sizes, tc.want) {
				t.Fatalf("batch sizes = %v, want %v", w.sizes, tc.want)
			}
			if !reflect.DeepEqual(res.Batches, tc.want) {
				t.Fatalf("result batches = %v, want %v", res.Batches, tc.want)
			}
			if res.Inserted != tc.n || len(w.rows) != tc.n {
				t.Fatalf("inserted=%d rows=%d, want %d", res.Inserted, len(w.rows), tc.n)
			}
			if rec.rows != tc.n || rec.batches != len(tc.want) {
				t.Fatalf("recorder saw rows=%d batches=%d", rec.rows, rec.batches)
			}
		})
	}
}

func TestSeeder_DefaultBatchSize(t *testing.T) {
	w := &recWriter{}
	s := &Seeder{Gen: &seqGen{}, Writer: w, Log: quiet}
	if _, err := s.Run(context.Background(), 10001); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(w.sizes, []int{10000, 1}) {
		t.Fatalf("batch sizes = %v", w.sizes)
	}
}

func TestSeeder_WriteFailureAbortsRun(t *testing.T) {
	w := &recWriter{failAt: 2}
	s := &Seeder{Gen: &seqGen{}, Writer: w, BatchSize: 10, Log: quiet}
	res, err := s.Run(context.Background(), 35)
	if err == nil {
		t.Fatalf("expected error")
	}
	if res.Inserted != 10 || !reflect.DeepEqual(w.sizes, []int{10}) {
		t.Fatalf("only the first batch should be written: res=%+v sizes=%v", res, w.sizes)
	}
}

type failingGen struct{}

func (failingGen) Next() (models.User, error) { return models.User{}, ErrUniqueExhausted }

func TestSeeder_GeneratorFailureAbortsRun(t *testing.T) {
	s := &Seeder{Gen: failingGen{}, Writer: &recWriter{}, Log: quiet}
	if _, err := s.Run(context.Background(), 5); !errors.Is(err, ErrUniqueExhausted) {
		t.Fatalf("expected ErrUniqueExhausted, got %v", err)
	}
}

func TestSeeder_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &Seeder{Gen: &seqGen{}, Writer: &recWriter{}, Log: quiet}
	if _, err := s.Run(ctx, 5); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFakeGenerator_UniqueEmails(t *testing.T) {
	g := NewFakeGenerator(7)
	seen := map[string]bool{}
	for i := 0; i < 5000; i++ {
		u, err := g.Next()
		if err != nil {
			t.Fatalf("Next #%d: %v", i, err)
		}
		if u.FullName == "" || u.Email == "" || u.Bio == "" {
			t.Fatalf("incomplete user: %+v", u)
		}
		if seen[u.Email] {
			t.Fatalf("duplicate email %q", u.Email)
		}
		seen[u.Email] = true
	}
	if g.Issued() != 5000 {
		t.Fatalf("issued = %d", g.Issued())
	}
}

func TestSeeder_PersistsExactCount(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "seed_sqlite")
	repo := repository.NewUserRepository(d)
	ctx := context.Background()

	s := &Seeder{Gen: NewFakeGenerator(1), Writer: repo, BatchSize: 1000, Log: quiet}
	res, err := s.Run(ctx, 2500)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(res.Batches, []int{1000, 1000, 500}) {
		t.Fatalf("batches = %v", res.Batches)
	}
	n, err := repo.Count(ctx)
	if err != nil || n != 2500 {
		t.Fatalf("count: n=%d err=%v", n, err)
	}
	var distinct int
	if err := d.QueryRow(`SELECT COUNT(DISTINCT email) FROM users`).Scan(&distinct); err != nil || distinct != 2500 {
		t.Fatalf("distinct emails: %d err=%v", distinct, err)
	}
}

func TestSeeder_RejectsNegativeCount(t *testing.T) {
	s := &Seeder{Gen: &seqGen{}, Writer: &recWriter{}, Log: quiet}
	if _, err := s.Run(context.Background(), -1); err == nil {
		t.Fatalf("expected error for negative count")
	}
}
