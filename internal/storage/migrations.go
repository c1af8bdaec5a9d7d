package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS batches (
					id TEXT PRIMARY KEY,
					created_at DATETIME NOT NULL,
					total_records INTEGER NOT NULL DEFAULT 0,
					compliant_count INTEGER NOT NULL DEFAULT 0,
					violation_count INTEGER NOT NULL DEFAULT 0,
					high_risk_count INTEGER NOT NULL DEFAULT 0,
					total_amount REAL NOT NULL DEFAULT 0
				)`,
				`CREATE INDEX idx_batches_created ON batches(created_at)`,

				`CREATE TABLE IF NOT EXISTS memos (
					batch_id TEXT NOT NULL,
					position INTEGER NOT NULL,
					memo_id TEXT NOT NULL,
					customer_name TEXT,
					created_by TEXT,
					reason_text TEXT,
					amount REAL,
					approval_date TEXT,
					memo_date TEXT,
					approvals TEXT NOT NULL DEFAULT '[]',
					reason_class TEXT NOT NULL,
					required_levels TEXT NOT NULL DEFAULT '[]',
					present_levels TEXT NOT NULL DEFAULT '[]',
					missing_levels TEXT NOT NULL DEFAULT '[]',
					business_days INTEGER,
					timeline_status TEXT NOT NULL,
					violation_count INTEGER NOT NULL DEFAULT 0,
					risk_level TEXT NOT NULL,
					sox_status TEXT NOT NULL,
					violation_reason TEXT NOT NULL DEFAULT 'None',
					violation_reasons TEXT NOT NULL DEFAULT '[]',
					warnings TEXT NOT NULL DEFAULT '[]',
					PRIMARY KEY (batch_id, position),
					FOREIGN KEY (batch_id) REFERENCES batches(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_memos_memo_id ON memos(memo_id)`,
				`CREATE INDEX idx_memos_sox_status ON memos(sox_status)`,
				`CREATE INDEX idx_memos_risk_level ON memos(risk_level)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add duplicate, sequence, and separation-of-duties flags",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`ALTER TABLE memos ADD COLUMN duplicate_memo INTEGER NOT NULL DEFAULT 0`,
				`ALTER TABLE memos ADD COLUMN approval_after_memo INTEGER NOT NULL DEFAULT 0`,
				`ALTER TABLE memos ADD COLUMN sod_status TEXT NOT NULL DEFAULT 'OK'`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_versions (
		version INTEGER PRIMARY KEY,
		description TEXT,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create schema_versions table: %w", err)
	}

	current, err := s.currentSchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		slog.Info("Applying migration",
			"version", migration.Version,
			"description", migration.Description)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec(`INSERT INTO schema_versions (version, description) VALUES (?, ?)`,
			migration.Version, migration.Description); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	final, err := s.currentSchemaVersion(ctx)
	if err != nil {
		return err
	}
	if final != ExpectedSchemaVersion {
		return fmt.Errorf("schema version %d does not match expected %d", final, ExpectedSchemaVersion)
	}

	return nil
}

func (s *SQLiteStorage) currentSchemaVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_versions`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}
