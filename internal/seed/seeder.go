package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"indexBenchmark/models"
)

// Defaults for a full benchmark load.
const (
	DefaultCount     = 100300
	DefaultBatchSize = 10000
)

// BatchWriter persists one batch of users as a single write.
type BatchWriter interface {
	InsertBatch(ctx context.Context, users []models.User) error
}

// Recorder receives per-batch measurements. observability.Metrics satisfies it.
type Recorder interface {
	ObserveBatch(rows int, d time.Duration)
}

// Seeder fills the users table with synthetic records in fixed-size batches.
type Seeder struct {
	Gen       Generator
	Writer    BatchWriter
	BatchSize int
	Log       *slog.Logger
	Recorder  Recorder // optional
}

// Result summarises a seeding run.
type Result struct {
	Inserted int
	Batches  []int // size of each batch write, in order
	Elapsed  time.Duration
}

// Run generates n users and writes them every BatchSize records, flushing the
// remainder at the end. The first generator or write error aborts the run;
// batches already written stay committed.
func (s *Seeder) Run(ctx context.Context, n int) (Result, error) {
	if s.Gen == nil || s.Writer == nil {
		return Result{}, errors.New("seeder needs a generator and a writer")
	}
	if n < 0 {
		return Result{}, fmt.Errorf("negative record count %d", n)
	}
	size := s.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	log := s.Log
	if log == nil {
		log = slog.Default()
	}

	log.Info("generating users", "count", n, "batch_size", size)
	start := time.Now()
	var res Result

	buf := make([]models.User, 0, min(size, n))
	flush := func() error {
		t := time.Now()
		if err := s.Writer.InsertBatch(ctx, buf); err != nil {
			return fmt.Errorf("write batch %d: %w", len(res.Batches)+1, err)
		}
		d := time.Since(t)
		res.Inserted += len(buf)
		res.Batches = append(res.Batches, len(buf))
		if s.Recorder != nil {
			s.Recorder.ObserveBatch(len(buf), d)
		}
		log.Info("saved batch", "batch", len(res.Batches), "rows", len(buf), "total", res.Inserted, "took", d.String())
		buf = buf[:0]
		return nil
	}

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		u, err := s.Gen.Next()
		if err != nil {
			return res, fmt.Errorf("generate user %d: %w", i+1, err)
		}
		buf = append(buf, u)
		if len(buf) >= size {
			if err := flush(); err != nil {
				return res, err
			}
		}
	}
	if len(buf) > 0 {
		if err := flush(); err != nil {
			return res, err
		}
	}

	res.Elapsed = time.Since(start)
	log.Info("seeding finished", "inserted", res.Inserted, "batches", len(res.Batches),
		"seconds", fmt.Sprintf("%.3f", res.Elapsed.Seconds()))
	return res, nil
}
