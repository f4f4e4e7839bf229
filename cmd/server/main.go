// Package main implements the entry point for the contacts API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/contacts-api/internal/config"
	"github.com/phrazzld/contacts-api/internal/platform/logger"
	"github.com/phrazzld/contacts-api/internal/platform/postgres"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code: 0 after a signal-driven shutdown, 1
// after a failed start or a shutdown triggered by a non-operational error.
func run() int {
	migrateOnly := flag.Bool("migrate-only", false, "apply database migrations and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	log, closeLog, err := logger.Setup(*cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logger: %v\n", err)
		return 1
	}
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close log file: %v\n", err)
		}
	}()

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"log_file_enabled", cfg.Log.File.Enabled)

	ctx := context.Background()

	db, err := postgres.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		return 1
	}

	if cfg.Database.MigrateOnStart || *migrateOnly {
		if err := postgres.Migrate(ctx, db, log); err != nil {
			log.Error("Failed to apply migrations", "error", err)
			_ = db.Close()
			return 1
		}
	}
	if *migrateOnly {
		_ = db.Close()
		return 0
	}

	app, err := newApplication(cfg, log, db, newPostgresDependencies(db, log))
	if err != nil {
		log.Error("Failed to initialize application", "error", err)
		_ = db.Close()
		return 1
	}

	if err := app.Run(ctx); err != nil {
		if errors.Is(err, errFatalShutdown) {
			log.Error("Server stopped after a non-operational error")
		} else {
			log.Error("Server error", "error", err)
		}
		return 1
	}
	slog.Info("Server exited cleanly")
	return 0
}
