package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/safarshare/safar/internal/cli"
	"github.com/safarshare/safar/internal/storage"
)

func exportCmd() *cobra.Command {
	var output string
	keys := append(storage.RecordKeys(), storage.KeyJoinedCommutes)
	cmd := &cobra.Command{
		Use:   "export <key>",
		Short: "Export a stored list as JSON",
		Long: fmt.Sprintf(`Export a stored list as a JSON array, oldest first.

Keys: %s`, strings.Join(keys, ", ")),
		Args:      cobra.ExactArgs(1),
		ValidArgs: keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				data, err := a.store.Export(ctx, args[0])
				if err != nil {
					return err
				}
				if output == "" {
					outln(cmd, string(data))
					return nil
				}
				if err := os.WriteFile(output, append(data, '\n'), 0o600); err != nil {
					return fmt.Errorf("failed to write export: %w", err)
				}
				outln(cmd, cli.FormatSuccess(fmt.Sprintf("Exported %s to %s", args[0], output)))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
