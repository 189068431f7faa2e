package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safarshare/safar/internal/flow"
	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/notify"
	"github.com/safarshare/safar/internal/storage"
	"github.com/safarshare/safar/internal/submit"
	"github.com/safarshare/safar/internal/testutil"
	"github.com/safarshare/safar/internal/trackid"
	"github.com/safarshare/safar/internal/validate"
	"github.com/safarshare/safar/internal/wizard"
)

type fakeSubmitter struct {
	result *submit.Result
	err    error
	reqs   []submit.Request
}

func (f *fakeSubmitter) Submit(_ context.Context, req submit.Request) (*submit.Result, error) {
	f.reqs = append(f.reqs, req)
	return f.result, f.err
}

func newTestModel(t *testing.T, def *flow.Definition, sub Submitter, opts ...Option) (Model, *wizard.Wizard) {
	t.Helper()
	w, err := def.NewWizard(testutil.NewFakeClock(testutil.FixedTime))
	require.NoError(t, err)
	if sub == nil {
		sub = &fakeSubmitter{}
	}
	return New(context.Background(), def, w, sub, opts...), w
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func press(t *testing.T, m Model, keys ...tea.KeyType) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = send(t, m, tea.KeyMsg{Type: k})
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_ValidatesOnBlur(t *testing.T) {
	m, w := newTestModel(t, flow.Parcel(), nil)

	m = press(t, m, tea.KeyRight, tea.KeyTab)
	assert.Equal(t, "documents", w.Get("parcelType"))
	assert.Equal(t, 1, m.focus)

	m = typeText(t, m, "25")
	m = press(t, m, tea.KeyTab)

	assert.Equal(t, "Weight must be between 0.1kg and 20kg", m.fields[1].Error())
	assert.Contains(t, m.View(), "Weight must be between 0.1kg and 20kg")

	m = press(t, m, tea.KeyShiftTab)
	m = press(t, m, tea.KeyBackspace)
	m = press(t, m, tea.KeyTab)
	assert.Equal(t, "2", w.Get("weight"))
	assert.Empty(t, m.fields[1].Error())
}

func TestModel_StepBlockedUntilValid(t *testing.T) {
	m, w := newTestModel(t, flow.Parcel(), nil)

	for range m.fields {
		m = press(t, m, tea.KeyEnter)
	}

	assert.Equal(t, 0, w.Index())
	assert.Equal(t, 0, m.focus, "focus returns to the first failing field")
	assert.Equal(t, "This field is required", m.fields[0].Error())
	assert.NotEmpty(t, m.fields[1].Error())
}

func TestModel_AdvanceAndBack(t *testing.T) {
	m, w := newTestModel(t, flow.Document(), nil)

	m = press(t, m, tea.KeyRight, tea.KeyTab)
	assert.Equal(t, flow.DocumentDescriptions["legal"], m.fields[1].Value(), "description preset from type")

	m = press(t, m, tea.KeyTab, tea.KeyRight, tea.KeyEnter, tea.KeyEnter, tea.KeyEnter)
	require.Equal(t, 1, w.Index())
	assert.Len(t, m.fields, 8)
	assert.Contains(t, m.View(), "Step 2/3: Pickup and delivery")
	assert.Equal(t, "2024-12-16", m.fields[2].Value())

	m = press(t, m, tea.KeyCtrlB)
	assert.Equal(t, 0, w.Index())
	assert.Equal(t, "legal", m.fields[0].Value())
	assert.Equal(t, "a4", m.fields[2].Value())
}

func TestModel_FinalStepCarriesAcknowledgements(t *testing.T) {
	def := flow.Document()
	w, err := def.NewWizard(testutil.NewFakeClock(testutil.FixedTime))
	require.NoError(t, err)
	require.NoError(t, w.Focus(2))

	m := New(context.Background(), def, w, &fakeSubmitter{})

	var names []string
	for _, f := range m.fields {
		names = append(names, f.Field.Name)
	}
	assert.Equal(t, []string{"paymentMethod", "specialInstructions", flow.FieldLegal, flow.FieldTerms}, names)

	m = press(t, m, tea.KeyTab, tea.KeyTab, tea.KeySpace)
	assert.Equal(t, "true", m.fields[2].Value())
}

func TestModel_Submit(t *testing.T) {
	ts := testutil.FixedTime
	fake := &fakeSubmitter{result: &submit.Result{
		Submission: &model.Submission{TrackingID: "MSG-1734253200000", Timestamp: ts, Status: model.StatusReceived},
	}}
	m, _ := newTestModel(t, flow.Contact(), fake)

	m = typeText(t, m, "Ayesha Khan")
	m = press(t, m, tea.KeyTab)
	m = typeText(t, m, "ayesha@example.com")
	m = press(t, m, tea.KeyTab, tea.KeyRight, tea.KeyTab)
	m = typeText(t, m, "Need help with my booking")

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.submitting)
	assert.Contains(t, m.View(), "Submitting...")

	m, _ = send(t, m, cmd())
	assert.False(t, m.submitting)
	require.Len(t, fake.reqs, 1)
	values := fake.reqs[0].Wizard.Values()
	assert.Equal(t, "Ayesha Khan", values.Get("fullName"))
	assert.Equal(t, "general", values.Get("subject"))
	assert.Equal(t, "Need help with my booking", values.Get("message"))

	require.NotNil(t, m.Result())
	assert.Contains(t, m.View(), "Thank you! Your message has been sent.")
}

func TestModel_SubmitRejected(t *testing.T) {
	def := flow.Document()
	w, err := def.NewWizard(testutil.NewFakeClock(testutil.FixedTime))
	require.NoError(t, err)
	require.NoError(t, w.Focus(2))

	fake := &fakeSubmitter{err: &submit.RejectionError{
		Flow:      def.Name,
		StepIndex: -1,
		Errors: []validate.FieldError{{
			Field:   flow.FieldTerms,
			Kind:    validate.KindPrecondition,
			Message: "You must agree to the terms and conditions",
		}},
	}}
	m := New(context.Background(), def, w, fake)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())

	assert.Nil(t, m.Result())
	assert.Equal(t, 3, m.focus)
	assert.Equal(t, "You must agree to the terms and conditions", m.fields[3].Error())
	assert.Contains(t, m.View(), "You must agree to the terms and conditions")
}

func TestModel_KeysIgnoredWhileSubmitting(t *testing.T) {
	m, w := newTestModel(t, flow.Contact(), nil)
	m.submitting = true

	m = typeText(t, m, "abc")
	assert.Empty(t, m.fields[0].Value())
	assert.Empty(t, w.Get("fullName"))
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m, _ := newTestModel(t, flow.Commute(), nil)
		m, cmd := send(t, m, tea.KeyMsg{Type: k})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.True(t, m.quitting)
		assert.Empty(t, m.View())
	}
}

func TestModel_Notices(t *testing.T) {
	clock := testutil.NewFakeClock(testutil.FixedTime)
	center := notify.NewCenter(nil, notify.WithClock(clock), notify.WithHideAfter(3*time.Second))
	t.Cleanup(center.Close)

	m, _ := newTestModel(t, flow.Journey(), nil, WithNotices(center))
	center.Error("Please fill all required fields.")
	assert.Contains(t, m.View(), "Please fill all required fields.")

	clock.Advance(3 * time.Second)
	assert.NotContains(t, m.View(), "Please fill all required fields.")
}

func TestModel_SelectedEntryShown(t *testing.T) {
	entry := &model.CatalogEntry{ID: 2, Kind: model.KindTraveler, Name: "Hamza"}
	m, _ := newTestModel(t, flow.Parcel(), nil, WithSelected(entry))
	assert.Contains(t, m.View(), "Selected: [2] Hamza")

	m, _ = send(t, m, resetMsg{})
	assert.NotContains(t, m.View(), "Hamza", "selection is dropped on reset")
}

func TestModel_PipelineEndToEnd(t *testing.T) {
	db := testutil.SetupTestDB(t)
	clock := testutil.NewFakeClock(testutil.FixedTime)
	pipeline := submit.New(db.Storage, trackid.New(clock, nil),
		submit.WithClock(clock),
		submit.WithResetDelay(3*time.Second))

	def := flow.Contact()
	w, err := def.NewWizard(clock)
	require.NoError(t, err)
	w.Set("fullName", "Bilal Ahmed")
	w.Set("contactInfo", "+92 300 1234567")
	w.Set("subject", "safety")
	w.Set("message", "Driver was very careful, thanks")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := New(ctx, def, w, pipeline)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	require.NotNil(t, m.Result())
	assert.Equal(t, 1, db.MustCount(storage.KeyContactMessages))

	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd, "no second submit before the form resets")
	assert.Equal(t, 1, db.MustCount(storage.KeyContactMessages))

	clock.Advance(3 * time.Second)
	msg := waitForReset(ctx, m.resets)()
	require.IsType(t, resetMsg{}, msg)

	m, _ = send(t, m, msg)
	assert.Empty(t, m.fields[0].Value(), "form cleared after reset")
	assert.Empty(t, w.Get("fullName"))
	assert.False(t, m.settled)

	m = typeText(t, m, "Sana")
	assert.Equal(t, "Sana", m.fields[0].Value())
}
