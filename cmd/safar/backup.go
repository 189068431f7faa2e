package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/safarshare/safar/internal/cli"
	"github.com/safarshare/safar/internal/storage"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage database backups",
		Long: `Snapshot the local database and restore snapshots.

Backups are kept in backup.dir, or in a "backups" directory next to the
database when unset.`,
	}
	cmd.AddCommand(backupCreateCmd())
	cmd.AddCommand(backupListCmd())
	cmd.AddCommand(backupRestoreCmd())
	cmd.AddCommand(backupDeleteCmd())
	return cmd
}

// withBackups runs fn with the configured backup manager.
func withBackups(cmd *cobra.Command, fn func(ctx context.Context, bm *storage.BackupManager) error) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		bm, err := a.store.NewBackupManager(a.cfg.BackupDir)
		if err != nil {
			return err
		}
		return fn(ctx, bm)
	})
}

func backupCreateCmd() *cobra.Command {
	var tag, description string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackups(cmd, func(ctx context.Context, bm *storage.BackupManager) error {
				info, err := bm.Create(ctx, tag, description)
				if err != nil {
					return err
				}
				outln(cmd, cli.FormatSuccess(fmt.Sprintf("Created backup %s (%s)", info.ID, humanSize(info.FileSize))))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "backup id (default: timestamp)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "what the backup is for")
	return cmd
}

func backupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackups(cmd, func(ctx context.Context, bm *storage.BackupManager) error {
				backups, err := bm.List(ctx)
				if err != nil {
					return err
				}
				if len(backups) == 0 {
					outln(cmd, cli.FormatInfo("No backups in "+bm.Dir()))
					return nil
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, cli.BoldStyle.Render("ID")+"\t"+cli.BoldStyle.Render("CREATED")+"\t"+
					cli.BoldStyle.Render("RECORDS")+"\t"+cli.BoldStyle.Render("SIZE")+"\t"+cli.BoldStyle.Render("DESCRIPTION"))
				for _, b := range backups {
					records := b.JoinCount
					for _, n := range b.RecordCounts {
						records += n
					}
					id := b.ID
					if b.IsAuto {
						id += " (auto)"
					}
					fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", id, b.CreatedAt.Local().Format(time.DateTime),
						records, humanSize(b.FileSize), b.Description)
				}
				return w.Flush()
			})
		},
	}
}

func backupRestoreCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Replace the database contents with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackups(cmd, func(ctx context.Context, bm *storage.BackupManager) error {
				if !force {
					outln(cmd, cli.FormatWarning("Restoring replaces every saved record."))
					p := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
					ok, err := p.Confirm(ctx, fmt.Sprintf("Restore backup %s?", args[0]), false)
					if err != nil {
						return err
					}
					if !ok {
						outln(cmd, cli.FormatInfo("Restore cancelled."))
						return nil
					}
				}
				if err := bm.Restore(ctx, args[0]); err != nil {
					return err
				}
				outln(cmd, cli.FormatSuccess("Restored backup "+args[0]))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}

func backupDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackups(cmd, func(ctx context.Context, bm *storage.BackupManager) error {
				if err := bm.Delete(ctx, args[0]); err != nil {
					return err
				}
				outln(cmd, cli.FormatSuccess("Deleted backup "+args[0]))
				return nil
			})
		},
	}
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
