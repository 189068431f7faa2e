// Package tui is the full-screen wizard. It edits a wizard.Wizard field by
// field and hands the finished form to the submission pipeline.
package tui

import (
	"context"
	"errors"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/safarshare/safar/internal/flow"
	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/submit"
	"github.com/safarshare/safar/internal/tui/components"
	"github.com/safarshare/safar/internal/tui/themes"
	"github.com/safarshare/safar/internal/validate"
	"github.com/safarshare/safar/internal/wizard"
)

// Submitter persists a finished form.
type Submitter interface {
	Submit(ctx context.Context, req submit.Request) (*submit.Result, error)
}

// Model holds the wizard screen state.
type Model struct {
	ctx        context.Context
	theme      themes.Theme
	submitter  Submitter
	lastErr    error
	notices    NoticeBoard
	def        *flow.Definition
	wizard     *wizard.Wizard
	selected   *model.CatalogEntry
	result     *submit.Result
	resets     chan struct{}
	keymap     KeyMap
	fields     []components.FieldModel
	help       help.Model
	config     Config
	focus      int
	width      int
	height     int
	submitting bool
	// settled is set between a successful submit and the form reset.
	settled    bool
	quitting   bool
}

// New creates the wizard screen for def, editing w.
func New(ctx context.Context, def *flow.Definition, w *wizard.Wizard, submitter Submitter, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	m := Model{
		ctx:       ctx,
		config:    cfg,
		theme:     cfg.Theme,
		def:       def,
		wizard:    w,
		submitter: submitter,
		notices:   cfg.Notices,
		selected:  cfg.Selected,
		resets:    make(chan struct{}, 1),
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		width:     cfg.Width,
		height:    cfg.Height,
	}
	m.rebuild()
	m.setFocus(0)
	return m
}

// Init starts the redraw ticker and the reset listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.focusCmd(),
		tick(m.config.Refresh),
		waitForReset(m.ctx, m.resets),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tick(m.config.Refresh)

	case resetMsg:
		m.settled = false
		m.selected = nil
		m.rebuild()
		return m, tea.Batch(m.setFocus(0), waitForReset(m.ctx, m.resets))

	case submittedMsg:
		return m.handleSubmitted(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case m.submitting, m.settled:
		return m, nil
	case key.Matches(msg, m.keymap.Submit):
		m.commit()
		return m.submit()
	case key.Matches(msg, m.keymap.Back):
		m.commit()
		if m.wizard.Back() {
			m.rebuild()
		}
		return m, m.setFocus(0)
	case key.Matches(msg, m.keymap.Next):
		m.commit()
		return m, m.setFocus(m.focus + 1)
	case key.Matches(msg, m.keymap.Prev):
		m.commit()
		return m, m.setFocus(m.focus - 1)
	case key.Matches(msg, m.keymap.Confirm):
		return m.confirm()
	}

	if len(m.fields) == 0 {
		return m, nil
	}
	f, cmd := m.fields[m.focus].Update(msg)
	m.fields[m.focus] = f
	return m, cmd
}

// confirm moves to the next field, the next step or submits, depending on
// where the focus is.
func (m Model) confirm() (tea.Model, tea.Cmd) {
	m.commit()
	if m.focus < len(m.fields)-1 {
		return m, m.setFocus(m.focus + 1)
	}
	if m.wizard.IsFinal() {
		return m.submit()
	}

	if err := m.wizard.Next(); err != nil {
		var se *wizard.StepError
		if errors.As(err, &se) {
			return m, m.flag(se.Result.Errors)
		}
		m.lastErr = err
		return m, nil
	}
	m.lastErr = nil
	m.rebuild()
	return m, m.setFocus(0)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	for _, f := range m.fields {
		m.wizard.Set(f.Field.Name, f.Value())
	}
	m.submitting = true
	m.lastErr = nil
	return m, m.submitForm()
}

func (m Model) handleSubmitted(msg submittedMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	if msg.err != nil {
		m.lastErr = msg.err
		var rej *submit.RejectionError
		if !errors.As(msg.err, &rej) {
			return m, nil
		}
		// The pipeline already focused the offending step.
		m.rebuild()
		return m, m.flag(rej.Errors)
	}

	m.result = msg.result
	m.settled = msg.result != nil && msg.result.Reset != nil
	m.lastErr = nil
	return m, nil
}

// commit stores the focused field, applies presets and re-validates it.
func (m *Model) commit() {
	if len(m.fields) == 0 {
		return
	}
	f := m.fields[m.focus]
	name := f.Field.Name
	m.wizard.Set(name, f.Value())
	m.def.ApplyPresets(m.wizard)

	for i, other := range m.fields {
		if i != m.focus && other.Value() == "" {
			if v := m.wizard.Get(other.Field.Name); v != "" {
				m.fields[i] = other.SetValue(v)
			}
		}
	}

	msg := ""
	if fe := m.wizard.ValidateField(name); fe != nil {
		msg = fe.Message
	}
	m.fields[m.focus] = f.SetError(msg)
}

// flag marks the failing fields on screen and focuses the first one.
func (m *Model) flag(errs []validate.FieldError) tea.Cmd {
	first := -1
	for _, fe := range errs {
		i := m.indexOf(fe.Field)
		if i < 0 {
			continue
		}
		m.fields[i] = m.fields[i].SetError(fe.Message)
		if first < 0 {
			first = i
		}
	}
	if first < 0 {
		first = m.focus
	}
	return m.setFocus(first)
}

func (m *Model) indexOf(name string) int {
	return slices.IndexFunc(m.fields, func(f components.FieldModel) bool {
		return f.Field.Name == name
	})
}

// rebuild creates editors for the active step. The final step also carries
// the flow's yes/no acknowledgements.
func (m *Model) rebuild() {
	fields := slices.Clone(m.wizard.Current().Fields)
	if m.wizard.IsFinal() {
		for _, ack := range m.def.Acks {
			if ack.Confirm {
				fields = append(fields, validate.Field{Name: ack.Field, Label: ack.Label, Input: validate.InputBool})
			}
		}
	}

	m.fields = make([]components.FieldModel, 0, len(fields))
	for _, f := range fields {
		fm := components.NewField(f, m.wizard.Get(f.Name), m.theme)
		if fe, ok := m.wizard.Error(f.Name); ok {
			fm = fm.SetError(fe.Message)
		}
		m.fields = append(m.fields, fm)
	}
	m.focus = 0
}

// setFocus moves focus to field i, clamped to the step's fields.
func (m *Model) setFocus(i int) tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	i = max(0, min(i, len(m.fields)-1))
	for j := range m.fields {
		m.fields[j] = m.fields[j].Blur()
	}
	m.focus = i
	return m.focusCmd()
}

func (m *Model) focusCmd() tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	f, cmd := m.fields[m.focus].Focus()
	m.fields[m.focus] = f
	return cmd
}

// Result returns the last successful submission, if any.
func (m Model) Result() *submit.Result {
	return m.result
}
