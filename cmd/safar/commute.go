package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/safarshare/safar/internal/catalog"
	"github.com/safarshare/safar/internal/cli"
	"github.com/safarshare/safar/internal/flow"
	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/storage"
)

func commuteCmd() *cobra.Command {
	def := mustFlow(flow.NameCommute)
	cmd := &cobra.Command{
		Use:   "commute",
		Short: "Share daily commutes",
		Long: `Offer seats on your daily commute or join someone else's.

Schedules you create are listed first on the commute board with the
"You" badge.`,
	}

	schedule := &cobra.Command{
		Use:   "schedule",
		Short: "Manage your commute schedules",
	}
	schedule.AddCommand(wizardCmd("new", "Create a commute schedule", def))
	schedule.AddCommand(listCmd(def))

	cmd.AddCommand(schedule)
	cmd.AddCommand(commuteSearchCmd())
	cmd.AddCommand(commuteJoinCmd())
	cmd.AddCommand(commuteJoinedCmd())
	return cmd
}

// addFilterFlags registers the catalog filter flags on cmd.
func addFilterFlags(cmd *cobra.Command, f *catalog.Filter) {
	cmd.Flags().StringVar(&f.Tag, "tag", "", "only entries with this tag")
	cmd.Flags().StringVar(&f.Type, "type", "", "vehicle, document or shopper type")
	cmd.Flags().StringVar(&f.Route, "route", "", "route contains this text")
	cmd.Flags().StringVar(&f.From, "from", "", "starting point contains this text")
	cmd.Flags().StringVar(&f.City, "city", "", "operates in this city")
	cmd.Flags().Float64Var(&f.MinRating, "min-rating", 0, "minimum rating")
	cmd.Flags().Int64Var(&f.MaxPrice, "max-price", 0, "maximum price")
	cmd.Flags().IntVar(&f.MinExperience, "min-experience", 0, "minimum years of experience")
	cmd.Flags().BoolVar(&f.VerifiedOnly, "verified", false, "verified entries only")
}

func commuteSearchCmd() *cobra.Command {
	var f catalog.Filter
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the commute board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				board, err := a.board(ctx, model.KindCommute)
				if err != nil {
					return err
				}
				outln(cmd, cli.RenderCards(board.Visible(f), 0))
				return nil
			})
		},
	}
	addFilterFlags(cmd, &f)
	return cmd
}

func commuteJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <id>",
		Short: "Join a commute and take one seat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid commute id %q", args[0])
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				board, err := a.board(ctx, model.KindCommute)
				if err != nil {
					return err
				}
				e, err := board.Join(ctx, id)
				if err != nil {
					return err
				}
				outln(cmd, cli.RenderCard(e, cli.CardSelected))
				return nil
			})
		},
	}
}

func commuteJoinedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "joined",
		Short: "List the commutes you joined",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				joins, err := a.store.ListJoins(ctx, storage.KeyJoinedCommutes)
				if err != nil {
					return err
				}
				outln(cmd, cli.RenderJoins(joins))
				return nil
			})
		},
	}
}
