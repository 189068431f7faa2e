package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/safarshare/safar/internal/cli"
	"github.com/safarshare/safar/internal/config"
	"github.com/safarshare/safar/internal/storage"
)

func migrateCmd() *cobra.Command {
	var status bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}
			store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() {
				if err := store.Close(); err != nil {
					slog.Error("failed to close storage", "error", err)
				}
			}()

			ctx := cmd.Context()
			current, err := store.SchemaVersion(ctx)
			if err != nil {
				return err
			}

			if status {
				outf(cmd, "Database: %s\n", store.Path())
				outf(cmd, "Schema version: %d (latest %d)\n", current, storage.ExpectedSchemaVersion)
				if current < storage.ExpectedSchemaVersion {
					outln(cmd, cli.FormatWarning("Migrations pending. Run: safar migrate"))
				} else {
					outln(cmd, cli.FormatSuccess("Up to date"))
				}
				return nil
			}

			if current >= storage.ExpectedSchemaVersion {
				outln(cmd, cli.FormatSuccess(fmt.Sprintf("Schema already at version %d", current)))
				return nil
			}
			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			outln(cmd, cli.FormatSuccess(fmt.Sprintf("Migrated schema from version %d to %d", current, storage.ExpectedSchemaVersion)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "show the schema version without migrating")
	return cmd
}
