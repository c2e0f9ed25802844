// Command migrate applies or reverts the users schema migrations.
//
//	migrate [up|down|status]
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
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
	logger := observability.NewLogger(cfg.Env, "migrate")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := db.OpenWith(db.Options{Driver: cfg.Database.Driver, Path: cfg.Database.Path})
	if err != nil {
		logger.Error("open db", "path", cfg.Database.Path, "err", err)
		os.Exit(1)
	}
	defer d.Close()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if err := run(ctx, d, cmd, logger); err != nil {
		logger.Error("migrate "+cmd, "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, d *sql.DB, cmd string, logger *slog.Logger) error {
	switch cmd {
	case "up":
		applied, err := db.MigrateUp(ctx, d)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", "versions", applied)
	case "down":
		v, err := db.RollbackLast(ctx, d)
		if err != nil {
			return err
		}
		if v == 0 {
			logger.Info("nothing to roll back")
			return nil
		}
		logger.Info("migration rolled back", "version", v)
	case "status":
		states, err := db.MigrationStatus(ctx, d)
		if err != nil {
			return err
		}
		for _, s := range states {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Printf("%05d  %-8s %s\n", s.Version, state, s.Name)
		}
	default:
		return fmt.Errorf("unknown command %q (want up, down or status)", cmd)
	}
	return nil
}
