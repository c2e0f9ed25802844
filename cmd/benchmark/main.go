// Command benchmark times one full_name LIKE query against the users table.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"indexBenchmark/internal/bench"
	"indexBenchmark/internal/config"
	"indexBenchmark/internal/db"
	"indexBenchmark/internal/observability"
	"indexBenchmark/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := observability.NewLogger(cfg.Env, "benchmark")
	logger.Debug("configuration loaded", "config", cfg.String())
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := db.OpenWith(db.Options{
		Driver:            cfg.Database.Driver,
		Path:              cfg.Database.Path,
		CaseSensitiveLike: cfg.Bench.CaseSensitiveLike,
	})
	if err != nil {
		logger.Error("open db", "path", cfg.Database.Path, "err", err)
		os.Exit(1)
	}
	defer d.Close()

	r := &bench.Runner{
		DB:       d,
		Users:    repository.NewUserRepository(d),
		Pattern:  cfg.Bench.Pattern,
		Log:      logger,
		Recorder: metrics,
	}
	res, err := r.Run(ctx)
	if err != nil {
		logger.Error("benchmark failed", "err", err)
		os.Exit(1)
	}
	if err := metrics.WriteTextfile(cfg.Metrics.File); err != nil {
		logger.Warn("write metrics textfile", "path", cfg.Metrics.File, "err", err)
	}
	fmt.Println(res.Summary())
}
