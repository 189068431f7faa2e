package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/safarshare/safar/internal/cli"
	"github.com/safarshare/safar/internal/common"
	"github.com/safarshare/safar/internal/flow"
)

func trackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Look up requests by tracking ID",
	}
	cmd.AddCommand(trackLastCmd())
	cmd.AddCommand(trackFindCmd())
	return cmd
}

func trackLastCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "last <parcel|document|shopping>",
		Short:     "Show the most recent request of a delivery flow",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{flow.NameParcel, flow.NameDocument, flow.NameShopping},
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := flow.Lookup(args[0])
			if err != nil {
				return err
			}
			if !def.Delivery() {
				return fmt.Errorf("%s records have no tracking history", def.Name)
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				id, err := a.store.GetValue(ctx, def.LastIDKey)
				if errors.Is(err, common.ErrNotFound) {
					outln(cmd, cli.FormatInfo(fmt.Sprintf("No %s requests yet.", def.Name)))
					return nil
				}
				if err != nil {
					return err
				}
				return showTracked(ctx, cmd, a, id)
			})
		},
	}
}

func trackFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <tracking-id>",
		Short: "Show the record with a tracking ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				return showTracked(ctx, cmd, a, args[0])
			})
		},
	}
}

func showTracked(ctx context.Context, cmd *cobra.Command, a *app, id string) error {
	sub, err := a.store.FindByTrackingID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewUserError(fmt.Sprintf("No request with tracking ID %s", id), err)
		}
		return err
	}
	outln(cmd, cli.RenderSubmission(*sub))
	if line := summary(*sub); line != "" {
		outln(cmd, "    "+cli.SubtleStyle.Render(line))
	}
	return nil
}
