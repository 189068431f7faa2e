// Package components holds the bubbletea sub-models of the wizard screen.
package components

import (
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/safarshare/safar/internal/tui/themes"
	"github.com/safarshare/safar/internal/validate"
)

// FieldModel edits one form field. Text and list fields use a text input,
// choice fields cycle with ←/→ and yes/no fields toggle with space.
type FieldModel struct {
	theme   themes.Theme
	input   textinput.Model
	value   string
	err     string
	Field   validate.Field
	focused bool
}

// NewField creates a field editor showing value.
func NewField(f validate.Field, value string, theme themes.Theme) FieldModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.Width = 40
	switch {
	case f.Help != "":
		ti.Placeholder = f.Help
	case f.Input == validate.InputList && len(f.Options) > 0:
		ti.Placeholder = strings.Join(f.Options, ",")
	}
	ti.SetValue(value)

	return FieldModel{
		Field: f,
		theme: theme,
		input: ti,
		value: value,
	}
}

func (m FieldModel) usesInput() bool {
	return m.Field.Input == validate.InputText || m.Field.Input == validate.InputList
}

// Value returns the raw value being edited.
func (m FieldModel) Value() string {
	if m.usesInput() {
		return m.input.Value()
	}
	return m.value
}

// SetValue replaces the value.
func (m FieldModel) SetValue(v string) FieldModel {
	m.value = v
	m.input.SetValue(v)
	return m
}

// SetError flags the field. An empty message clears the flag.
func (m FieldModel) SetError(msg string) FieldModel {
	m.err = msg
	return m
}

// Error returns the flagged message.
func (m FieldModel) Error() string {
	return m.err
}

// Focused reports whether the field has focus.
func (m FieldModel) Focused() bool {
	return m.focused
}

// Focus gives the field keyboard focus.
func (m FieldModel) Focus() (FieldModel, tea.Cmd) {
	m.focused = true
	if m.usesInput() {
		return m, m.input.Focus()
	}
	return m, nil
}

// Blur removes keyboard focus.
func (m FieldModel) Blur() FieldModel {
	m.focused = false
	m.input.Blur()
	return m
}

// Update handles key input while focused.
func (m FieldModel) Update(msg tea.Msg) (FieldModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	keyMsg, isKey := msg.(tea.KeyMsg)

	switch m.Field.Input {
	case validate.InputBool:
		if isKey && (keyMsg.String() == " " || keyMsg.String() == "y" || keyMsg.String() == "n") {
			switch keyMsg.String() {
			case "y":
				m.value = "true"
			case "n":
				m.value = "false"
			default:
				m.value = strconv.FormatBool(!validate.Values{"v": m.value}.Bool("v"))
			}
		}
		return m, nil
	case validate.InputChoice:
		if isKey {
			switch keyMsg.String() {
			case "right", "l", " ":
				m.value = m.cycle(1)
			case "left", "h":
				m.value = m.cycle(-1)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m FieldModel) cycle(step int) string {
	opts := m.Field.Options
	if len(opts) == 0 {
		return m.value
	}
	i := slices.Index(opts, m.value)
	if i < 0 {
		if step > 0 {
			return opts[0]
		}
		return opts[len(opts)-1]
	}
	return opts[(i+step+len(opts))%len(opts)]
}

// View renders label, editor and any flagged message.
func (m FieldModel) View() string {
	label := m.Field.Label
	if m.Field.Required {
		label += "*"
	}
	labelStyle := m.theme.Label
	cursor := "  "
	if m.focused {
		labelStyle = m.theme.FocusedLabel
		cursor = "> "
	}

	var editor string
	switch m.Field.Input {
	case validate.InputBool:
		box := "[ ]"
		if (validate.Values{"v": m.value}).Bool("v") {
			box = "[x]"
		}
		editor = m.theme.Value.Render(box)
	case validate.InputChoice:
		shown := m.value
		if shown == "" {
			shown = m.theme.Placeholder.Render("choose")
		}
		editor = "‹ " + m.theme.Value.Render(shown) + " ›"
	default:
		editor = m.input.View()
	}

	line := cursor + labelStyle.Render(label) + ": " + editor
	if m.err == "" {
		return line
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, m.theme.FieldError.Render(m.err))
}
