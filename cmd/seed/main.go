// Command seed fills the users table with synthetic records in batches.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"indexBenchmark/internal/config"
	"indexBenchmark/internal/db"
	"indexBenchmark/internal/observability"
	"indexBenchmark/internal/seed"
	"indexBenchmark/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := observability.NewLogger(cfg.Env, "seed")
	logger.Debug("configuration loaded", "config", cfg.String())
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := db.OpenWith(db.Options{Driver: cfg.Database.Driver, Path: cfg.Database.Path})
	if err != nil {
		logger.Error("open db", "path", cfg.Database.Path, "err", err)
		os.Exit(1)
	}
	defer d.Close()

	s := &seed.Seeder{
		Gen:       seed.NewFakeGenerator(cfg.Seed.RandomSeed),
		Writer:    repository.NewUserRepository(d),
		BatchSize: cfg.Seed.BatchSize,
		Log:       logger,
		Recorder:  metrics,
	}
	res, err := s.Run(ctx, cfg.Seed.Count)
	if werr := metrics.WriteTextfile(cfg.Metrics.File); werr != nil {
		logger.Warn("write metrics textfile", "path", cfg.Metrics.File, "err", werr)
	}
	if err != nil {
		logger.Error("seeding aborted", "inserted", res.Inserted, "err", err)
		os.Exit(1)
	}
}
