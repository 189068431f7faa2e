package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/safarshare/safar/internal/catalog"
	"github.com/safarshare/safar/internal/cli"
	"github.com/safarshare/safar/internal/common"
	"github.com/safarshare/safar/internal/config"
	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/notify"
	"github.com/safarshare/safar/internal/storage"
	"github.com/safarshare/safar/internal/submit"
	"github.com/safarshare/safar/internal/trackid"
)

// app bundles what a command needs: configuration, the migrated store
// and the submission pipeline.
type app struct {
	cfg      *config.Config
	store    *storage.SQLiteStorage
	notices  *notify.Center
	clock    common.Clock
	pipeline *submit.Pipeline
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := store.Migrate(cmd.Context()); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	clock := common.SystemClock{}
	notices := notify.NewCenter(cmd.OutOrStdout(),
		notify.WithClock(clock),
		notify.WithHideAfter(cfg.HideAfter),
		notify.WithFormatter(cli.FormatNotice))

	a := &app{
		cfg:     cfg,
		store:   store,
		notices: notices,
		clock:   clock,
	}
	a.pipeline = submit.New(store, trackid.New(clock, nil),
		submit.WithClock(clock),
		submit.WithNotifier(notices),
		submit.WithResetDelay(cfg.ResetDelay))
	return a, nil
}

func (a *app) Close() {
	a.notices.Close()
	if err := a.store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

// withApp runs fn with an app that is closed afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(cmd.Context(), a)
}

// source returns the catalog for kind: the configured YAML file when set,
// otherwise the embedded sample data. The commute catalog is preceded by
// the user's own schedules.
func (a *app) source(kind model.CatalogKind) (catalog.Source, error) {
	var src catalog.Source
	if path := a.cfg.CatalogFiles[string(kind)]; path != "" {
		src = catalog.NewFileSource(kind, path)
	} else {
		embedded, err := catalog.Embedded(kind)
		if err != nil {
			return nil, err
		}
		src = embedded
	}

	if kind != model.KindCommute {
		return src, nil
	}
	return catalog.NewPrefixedSource(src, func(ctx context.Context) ([]model.CatalogEntry, error) {
		subs, err := a.store.List(ctx, storage.KeyCommuteSchedules, storage.OldestFirst)
		if err != nil {
			return nil, err
		}
		schedules := make([]model.CommuteSchedule, 0, len(subs))
		for _, sub := range subs {
			var s model.CommuteSchedule
			if err := sub.DecodeFields(&s); err != nil {
				return nil, err
			}
			schedules = append(schedules, s)
		}
		return catalog.ScheduleEntries(schedules), nil
	}), nil
}

// board loads the catalog for kind. Commute boards carry the join history.
func (a *app) board(ctx context.Context, kind model.CatalogKind) (*catalog.Board, error) {
	src, err := a.source(kind)
	if err != nil {
		return nil, err
	}
	opts := catalog.BoardOptions{Notifier: a.notices, Clock: a.clock}
	if kind == model.KindCommute {
		opts.Log = a.store
		opts.Counter = a.store
		opts.LogKey = storage.KeyJoinedCommutes
	}
	return catalog.NewBoard(ctx, src, opts)
}

// parseSets turns repeated key=value flags into a map.
func parseSets(sets []string) (map[string]string, error) {
	out := make(map[string]string, len(sets))
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", common.ErrInvalidConfig, s)
		}
		out[k] = v
	}
	return out, nil
}

func outln(cmd *cobra.Command, a ...any) {
	write(cmd.OutOrStdout(), fmt.Sprintln(a...))
}

func outf(cmd *cobra.Command, format string, a ...any) {
	write(cmd.OutOrStdout(), fmt.Sprintf(format, a...))
}

func write(w io.Writer, s string) {
	if _, err := io.WriteString(w, s); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}
