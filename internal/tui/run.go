package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/safarshare/safar/internal/common"
	"github.com/safarshare/safar/internal/flow"
	"github.com/safarshare/safar/internal/submit"
	"github.com/safarshare/safar/internal/wizard"
)

// Run shows the wizard until the user quits and returns the last
// successful submission. Quitting without one is a cancellation.
func Run(ctx context.Context, def *flow.Definition, w *wizard.Wizard, submitter Submitter, opts ...Option) (*submit.Result, error) {
	if def == nil || w == nil {
		return nil, errors.New("wizard needs a flow and a form")
	}
	if submitter == nil {
		return nil, errors.New("wizard needs a submitter")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(ctx, def, w, submitter, opts...)
	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if m.config.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(m, programOpts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil, fmt.Errorf("wizard closed: %w", common.ErrCanceled)
		}
		return nil, fmt.Errorf("TUI error: %w", err)
	}

	fm, ok := final.(Model)
	if !ok || fm.result == nil {
		return nil, fmt.Errorf("wizard closed without submitting: %w", common.ErrCanceled)
	}
	return fm.result, nil
}
