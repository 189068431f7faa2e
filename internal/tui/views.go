package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/notify"
	"github.com/safarshare/safar/internal/submit"
)

// View renders the wizard screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.theme.Title.Render("🛣️  " + m.def.Title),
		m.renderProgress(),
	}
	if m.selected != nil {
		sections = append(sections, m.theme.Subtitle.Render(
			fmt.Sprintf("Selected: [%d] %s", m.selected.ID, m.selected.Name)))
	}

	fieldViews := make([]string, 0, len(m.fields))
	for _, f := range m.fields {
		fieldViews = append(fieldViews, f.View())
	}
	sections = append(sections, "", lipgloss.JoinVertical(lipgloss.Left, fieldViews...), "")

	if est := m.renderEstimate(); est != "" {
		sections = append(sections, est)
	}
	if m.submitting {
		sections = append(sections, m.theme.StatusInfo.Render("Submitting..."))
	}
	if m.lastErr != nil {
		sections = append(sections, m.theme.StatusError.Render(errorText(m.lastErr)))
	}
	if notices := m.renderNotices(); notices != "" {
		sections = append(sections, notices)
	}
	if m.result != nil {
		sections = append(sections, m.renderResult())
	}
	sections = append(sections, "", m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderProgress() string {
	steps := m.wizard.Steps()
	idx := m.wizard.Index()
	var bar strings.Builder
	for i := range steps {
		if i <= idx {
			bar.WriteString(m.theme.ProgressFull.Render("●"))
		} else {
			bar.WriteString(m.theme.ProgressEmpty.Render("○"))
		}
	}
	return fmt.Sprintf("%s  %s", bar.String(),
		m.theme.Subtitle.Render(fmt.Sprintf("Step %d/%d: %s", idx+1, len(steps), steps[idx].Title)))
}

func (m Model) renderEstimate() string {
	q := m.def.Quote(m.wizard.Values())
	if q == nil || q.Breakdown.Total <= 0 {
		return ""
	}
	return "Estimated total: " + m.theme.Price.Render(model.FormatAmount(q.Breakdown.Currency, q.Breakdown.Total))
}

func (m Model) renderNotices() string {
	if m.notices == nil {
		return ""
	}
	active := m.notices.Active()
	if len(active) == 0 {
		return ""
	}
	lines := make([]string, 0, len(active))
	for _, n := range active {
		style := m.theme.StatusInfo
		switch n.Level {
		case notify.LevelSuccess:
			style = m.theme.StatusSuccess
		case notify.LevelError:
			style = m.theme.StatusError
		}
		lines = append(lines, style.Render(n.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderResult() string {
	sub := m.result.Submission
	lines := []string{
		m.theme.StatusSuccess.Render(m.def.SuccessMessage(sub.TrackingID)),
	}
	if sub.Price != nil {
		lines = append(lines, "Total: "+m.theme.Price.Render(model.FormatAmount(sub.Price.Currency, sub.Price.Total)))
	}
	if q := m.result.Quote; q != nil && q.Savings > 0 {
		lines = append(lines, m.theme.StatusSuccess.Render("You save "+model.FormatAmount(q.Breakdown.Currency, q.Savings)))
	}
	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func errorText(err error) string {
	var rej *submit.RejectionError
	if errors.As(err, &rej) && len(rej.Errors) > 0 {
		return rej.Errors[0].Message
	}
	return err.Error()
}
