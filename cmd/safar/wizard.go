package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/safarshare/safar/internal/catalog"
	"github.com/safarshare/safar/internal/cli"
	"github.com/safarshare/safar/internal/flow"
	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/notify"
	"github.com/safarshare/safar/internal/submit"
	"github.com/safarshare/safar/internal/trackid"
	"github.com/safarshare/safar/internal/tui"
	"github.com/safarshare/safar/internal/wizard"
)

type wizardOptions struct {
	sets         []string
	selectID     int
	acceptTerms  bool
	confirmLegal bool
	useTUI       bool
	noInput      bool
}

func hasAck(def *flow.Definition, field string) bool {
	for _, ack := range def.Acks {
		if ack.Field == field {
			return true
		}
	}
	return false
}

// wizardCmd builds the command that fills and submits def's form.
func wizardCmd(use, short string, def *flow.Definition) *cobra.Command {
	var opts wizardOptions
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `.

Fields are asked one step at a time and re-asked until valid. Use --set
to fill fields up front and --no-input to submit them without prompts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWizard(cmd, def, &opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "preset a field as name=value (repeatable)")
	cmd.Flags().BoolVar(&opts.useTUI, "tui", false, "use the full-screen form")
	cmd.Flags().BoolVar(&opts.noInput, "no-input", false, "submit the preset values without prompting")
	if def.Catalog != "" {
		cmd.Flags().IntVar(&opts.selectID, "select", 0, fmt.Sprintf("id of the %s to book", def.Catalog))
	}
	if hasAck(def, flow.FieldTerms) {
		cmd.Flags().BoolVar(&opts.acceptTerms, "accept-terms", false, "agree to the terms and conditions")
	}
	if hasAck(def, flow.FieldLegal) {
		cmd.Flags().BoolVar(&opts.confirmLegal, "confirm-legal", false, "confirm the documents are legal to transport")
	}
	return cmd
}

func runWizard(cmd *cobra.Command, def *flow.Definition, opts *wizardOptions) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		w, err := def.NewWizard(a.clock)
		if err != nil {
			return err
		}
		sets, err := parseSets(opts.sets)
		if err != nil {
			return err
		}
		for name, value := range sets {
			if _, _, ok := w.Field(name); !ok && !hasAck(def, name) {
				return fmt.Errorf("%s has no field %q", def.Name, name)
			}
			w.Set(name, value)
		}
		if opts.acceptTerms {
			w.Set(flow.FieldTerms, "true")
		}
		if opts.confirmLegal {
			w.Set(flow.FieldLegal, "true")
		}
		def.ApplyPresets(w)

		prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		selected, err := pickEntry(ctx, cmd, a, prompter, def, opts)
		if err != nil {
			return err
		}

		if opts.useTUI {
			return runTUI(ctx, cmd, a, def, w, selected)
		}

		if !opts.noInput {
			handler := cli.NewInterruptHandler(cmd.OutOrStdout())
			fctx := handler.HandleInterrupts(ctx, cmd.CommandPath())
			err := prompter.RunFlow(fctx, def, w)
			handler.Stop()
			if err != nil {
				return err
			}
		}

		res, err := a.pipeline.Submit(ctx, submit.Request{Flow: def, Wizard: w, Selected: selected})
		if err != nil {
			return rejected(cmd, def, err)
		}
		if res.Reset != nil {
			res.Reset.Stop()
		}

		if res.Quote != nil {
			outln(cmd, cli.RenderBreakdown(res.Quote))
		}
		if def.Delivery() {
			outln(cmd, cli.FormatInfo("Track it later with: safar track last "+def.Name))
		}
		return nil
	})
}

// runTUI runs the full-screen form. Its notices stay on screen instead of
// being printed under it.
func runTUI(ctx context.Context, cmd *cobra.Command, a *app, def *flow.Definition, w *wizard.Wizard, selected *model.CatalogEntry) error {
	notices := notify.NewCenter(nil, notify.WithClock(a.clock), notify.WithHideAfter(a.cfg.HideAfter))
	defer notices.Close()

	pipeline := submit.New(a.store, trackid.New(a.clock, nil),
		submit.WithClock(a.clock),
		submit.WithNotifier(notices),
		submit.WithResetDelay(a.cfg.ResetDelay))

	opts := []tui.Option{tui.WithNotices(notices)}
	if selected != nil {
		opts = append(opts, tui.WithSelected(selected))
	}
	res, err := tui.Run(ctx, def, w, pipeline, opts...)
	if err != nil {
		return err
	}
	outln(cmd, cli.FormatSuccess(def.SuccessMessage(res.Submission.TrackingID)))
	return nil
}

// rejected prints the fields that blocked a submission.
func rejected(cmd *cobra.Command, def *flow.Definition, err error) error {
	if !errors.Is(err, submit.ErrRejected) {
		return err
	}
	for _, msg := range submit.FieldMessages(err) {
		outln(cmd, "  "+cli.FormatError(msg))
	}
	return fmt.Errorf("%s was not saved: %w", strings.ToLower(def.Title), err)
}

// pickEntry resolves the catalog entry the request is for: the --select id,
// or one chosen from the printed board. Flows without a catalog return nil.
func pickEntry(ctx context.Context, cmd *cobra.Command, a *app, p *cli.Prompter, def *flow.Definition, opts *wizardOptions) (*model.CatalogEntry, error) {
	if def.Catalog == "" {
		return nil, nil
	}
	board, err := a.board(ctx, def.Catalog)
	if err != nil {
		return nil, err
	}
	if opts.selectID > 0 {
		e, err := board.Select(opts.selectID)
		if err != nil {
			return nil, err
		}
		return &e, nil
	}
	if opts.noInput {
		return nil, nil
	}

	outln(cmd, cli.RenderCards(board.Visible(catalog.Filter{}), 0))
	for {
		answer, err := p.Ask(ctx, fmt.Sprintf("Select %s by id (blank to skip)", def.Catalog), "")
		if err != nil {
			return nil, err
		}
		if answer == "" {
			return nil, nil
		}
		id, err := strconv.Atoi(answer)
		if err != nil {
			outln(cmd, cli.FormatError("Please enter a number"))
			continue
		}
		e, err := board.Select(id)
		if err != nil {
			outln(cmd, cli.FormatError(err.Error()))
			continue
		}
		return &e, nil
	}
}
