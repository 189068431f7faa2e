package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/safarshare/safar/internal/cli"
	"github.com/safarshare/safar/internal/flow"
)

func contactCmd() *cobra.Command {
	def := mustFlow(flow.NameContact)
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send and review support messages",
	}
	cmd.AddCommand(wizardCmd("send", "Send a message to the safar team", def))
	cmd.AddCommand(listCmd(def))
	cmd.AddCommand(contactClearCmd(def))
	return cmd
}

func contactClearCmd(def *flow.Definition) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved message",
		Long: `Delete every saved message.

A backup of the database is taken first and can be restored with
"safar backup restore".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				n, err := a.store.Count(ctx, def.Key)
				if err != nil {
					return err
				}
				if n == 0 {
					outln(cmd, cli.EmptyListMessage)
					return nil
				}

				if !force {
					outln(cmd, cli.FormatWarning(fmt.Sprintf("This will delete %d message(s).", n)))
					p := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
					ok, err := p.Confirm(ctx, "Are you sure you want to clear all messages?", false)
					if err != nil {
						return err
					}
					if !ok {
						outln(cmd, cli.FormatInfo("Nothing was deleted."))
						return nil
					}
				}

				bm, err := a.store.NewBackupManager(a.cfg.BackupDir)
				if err != nil {
					return err
				}
				backup, err := bm.Auto(ctx, "contact-clear")
				if err != nil {
					return fmt.Errorf("failed to back up before clearing: %w", err)
				}

				cleared, err := a.store.Clear(ctx, def.Key)
				if err != nil {
					return err
				}
				outln(cmd, cli.FormatSuccess(fmt.Sprintf("Cleared %d message(s).", cleared)))
				outln(cmd, cli.FormatInfo("Backup saved as "+backup.ID))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}
