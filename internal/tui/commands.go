package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/safarshare/safar/internal/submit"
)

// submitForm runs the submission pipeline off the UI goroutine.
func (m Model) submitForm() tea.Cmd {
	ctx, submitter := m.ctx, m.submitter
	resets := m.resets
	req := submit.Request{
		Flow:     m.def,
		Wizard:   m.wizard,
		Selected: m.selected,
		OnReset: func() {
			select {
			case resets <- struct{}{}:
			default:
			}
		},
	}
	return func() tea.Msg {
		res, err := submitter.Submit(ctx, req)
		return submittedMsg{result: res, err: err}
	}
}

// waitForReset blocks until the pipeline resets the form or ctx ends.
func waitForReset(ctx context.Context, resets <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-resets:
			return resetMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func tick(d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}
