package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_kv_entries",
		SQL: `CREATE TABLE IF NOT EXISTS kv_entries (
  key        TEXT        PRIMARY KEY,
  value      TEXT        NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_kv_entries_updated_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_kv_entries_updated_at ON kv_entries (updated_at);`,
	},
}

// EnsureMigrated checks if the 'kv_entries' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *slog.Logger, dbHost string) error {
	start := time.Now()

	log.Info("checking database schema", "db_host", dbHost)

	var exists bool
	query := "SELECT to_regclass('public.kv_entries') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("schema check failed",
			"db_host", dbHost,
			"error", err.Error(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("schema already exists, skipping migration",
			"db_host", dbHost,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("migration step failed",
				"migration_step", step.Name,
				"db_host", dbHost,
				"error", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("migration step applied",
			"migration_step", step.Name,
			"db_host", dbHost,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("database schema migrated",
		"db_host", dbHost,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}
