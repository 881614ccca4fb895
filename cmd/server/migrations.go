package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/wanderlist-api/internal/config"
	"github.com/phrazzld/wanderlist-api/internal/platform/postgres/migrations"
	"github.com/pressly/goose/v3"
)

// Migration commands accepted by -migrate.
const (
	migrateUp     = "up"
	migrateDown   = "down"
	migrateStatus = "status"
)

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at INFO.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at ERROR and does NOT exit, so main keeps control of the
// process exit code.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// handleMigrations runs one goose command against the configured PostgreSQL
// database. Only the postgres driver has schema migrations.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, verbose bool, logger *slog.Logger) error {
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations require the %q driver, configured driver is %q",
			config.DriverPostgres, cfg.Database.Driver)
	}
	switch command {
	case migrateUp, migrateDown, migrateStatus:
	default:
		return fmt.Errorf("unknown migration command %q (want up, down or status)", command)
	}

	log := logger.With("component", "migrations", "command", command)

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("failed to close database", "error", cerr)
		}
	}()

	return runMigrations(ctx, db, command, verbose, log)
}

// runMigrations executes command through a goose provider over the
// embedded migration files.
func runMigrations(ctx context.Context, db *sql.DB, command string, verbose bool, log *slog.Logger) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS,
		goose.WithVerbose(verbose),
		goose.WithLogger(&slogGooseLogger{logger: log}),
	)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	start := time.Now()
	switch command {
	case migrateUp:
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("migration up failed: %w", err)
		}
		for _, r := range results {
			log.Info("migration applied", "version", r.Source.Version, "path", r.Source.Path, "duration", r.Duration)
		}

	case migrateDown:
		result, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("migration down failed: %w", err)
		}
		if result != nil {
			log.Info("migration rolled back", "version", result.Source.Version, "path", result.Source.Path)
		}

	case migrateStatus:
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("migration status failed: %w", err)
		}
		for _, s := range statuses {
			log.Info("migration status",
				"version", s.Source.Version,
				"path", s.Source.Path,
				"state", string(s.State),
				"applied_at", s.AppliedAt)
		}
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	log.Info("migration command completed", "schema_version", version, "elapsed", time.Since(start))
	return nil
}
