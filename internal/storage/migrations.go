package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
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
				`CREATE TABLE IF NOT EXISTS folders (
					id TEXT PRIMARY KEY,
					parent_id TEXT REFERENCES folders(id),
					name TEXT NOT NULL,
					created_at DATETIME NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS tables (
					id TEXT PRIMARY KEY,
					parent_id TEXT REFERENCES folders(id),
					name TEXT NOT NULL,
					created_at DATETIME NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS table_tabs (
					table_id TEXT NOT NULL REFERENCES tables(id),
					name TEXT NOT NULL,
					position INTEGER NOT NULL,
					PRIMARY KEY (table_id, name)
				)`,

				`CREATE TABLE IF NOT EXISTS table_rows (
					table_id TEXT NOT NULL,
					tab TEXT NOT NULL,
					row_num INTEGER NOT NULL,
					cells TEXT NOT NULL,
					created_at DATETIME NOT NULL,
					PRIMARY KEY (table_id, tab, row_num),
					FOREIGN KEY (table_id, tab) REFERENCES table_tabs(table_id, name)
				)`,

				`CREATE TABLE IF NOT EXISTS documents (
					id TEXT PRIMARY KEY,
					parent_id TEXT REFERENCES folders(id),
					title TEXT NOT NULL,
					body TEXT NOT NULL,
					created_at DATETIME NOT NULL,
					updated_at DATETIME NOT NULL
				)`,
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
		Description: "Add parent indexes",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE INDEX IF NOT EXISTS idx_folders_parent ON folders(parent_id)`,
				`CREATE INDEX IF NOT EXISTS idx_tables_parent ON tables(parent_id)`,
				`CREATE INDEX IF NOT EXISTS idx_documents_parent ON documents(parent_id)`,
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

// SchemaVersion returns the database's current schema version.
func (s *SQLiteStore) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// Migrate applies all pending database migrations.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		s.logger.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
