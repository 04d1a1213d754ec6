package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/capture/internal/cli"
	"github.com/Veraticus/capture/internal/config"
	"github.com/Veraticus/capture/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run local database migrations",
		Long: `Initialize or update the local backend's database schema.

Only the local backend keeps a database; the Google backend needs no
migrations.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	status, _ := cmd.Flags().GetBool("status")
	dbPath := config.LoadCaptureConfig().DatabasePath
	out := cmd.OutOrStdout()

	slog.Info("Starting database migration", "database", dbPath, "status_only", status)

	store, err := storage.NewSQLiteStore(dbPath, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if status {
		current, err := store.SchemaVersion(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, cli.FormatKeyValues([][2]string{
			{"Database", dbPath},
			{"Current version", fmt.Sprint(current)},
			{"Latest version", fmt.Sprint(storage.ExpectedSchemaVersion)},
		}))
		return nil
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess("Database migrations completed"))
	return nil
}
