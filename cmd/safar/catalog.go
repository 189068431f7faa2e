package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/safarshare/safar/internal/catalog"
	"github.com/safarshare/safar/internal/cli"
	"github.com/safarshare/safar/internal/model"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse travelers, carriers, shoppers and commutes",
	}
	cmd.AddCommand(catalogListCmd())
	cmd.AddCommand(catalogShowCmd())
	return cmd
}

func catalogListCmd() *cobra.Command {
	var f catalog.Filter
	cmd := &cobra.Command{
		Use:       "list <travelers|carriers|shoppers|commutes>",
		Short:     "List a catalog, optionally filtered",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"travelers", "carriers", "shoppers", "commutes"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseCatalogKind(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				board, err := a.board(ctx, kind)
				if err != nil {
					return err
				}
				entries := board.Visible(f)
				outln(cmd, cli.FormatTitle(fmt.Sprintf("%s (%d of %d)", kind, len(entries), len(board.Entries()))))
				outln(cmd, cli.RenderCards(entries, 0))
				return nil
			})
		},
	}
	addFilterFlags(cmd, &f)
	return cmd
}

func catalogShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <kind> <id>",
		Short: "Show one catalog entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseCatalogKind(args[0])
			if err != nil {
				return err
			}
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[1])
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				board, err := a.board(ctx, kind)
				if err != nil {
					return err
				}
				e, ok := board.Entry(id)
				if !ok {
					return fmt.Errorf("%w: %s %d", catalog.ErrUnknownEntry, kind, id)
				}
				outln(cmd, cli.RenderCard(e, cli.CardNormal))
				return nil
			})
		},
	}
}
