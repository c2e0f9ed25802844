// Command schema creates the SQLite file and the users table if they are missing.
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
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := observability.NewLogger(cfg.Env, "schema")
	logger.Debug("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := db.OpenWith(db.Options{Driver: cfg.Database.Driver, Path: cfg.Database.Path})
	if err != nil {
		logger.Error("open db", "path", cfg.Database.Path, "err", err)
		os.Exit(1)
	}
	defer d.Close()

	if cfg.Database.Reset {
		err = db.ResetSchema(ctx, d)
	} else {
		err = db.EnsureSchema(ctx, d)
	}
	if err != nil {
		logger.Error("define schema", "err", err)
		os.Exit(1)
	}
	logger.Info("schema ready", "path", cfg.Database.Path, "reset", cfg.Database.Reset)
}
