// Package submit runs a completed wizard through the submission pipeline:
// re-validate, check acknowledgements, price, build, persist, notify and
// schedule the form reset.
package submit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/safarshare/safar/internal/common"
	"github.com/safarshare/safar/internal/flow"
	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/notify"
	"github.com/safarshare/safar/internal/pricing"
	"github.com/safarshare/safar/internal/trackid"
	"github.com/safarshare/safar/internal/validate"
	"github.com/safarshare/safar/internal/wizard"
)

// DefaultResetDelay is how long the form stays filled after a success.
const DefaultResetDelay = 3 * time.Second

// ErrRejected is wrapped by every RejectionError.
var ErrRejected = errors.New("submission rejected")

// RejectionError reports why a submission was refused. Step is empty when
// only acknowledgements failed.
type RejectionError struct {
	Flow      string
	Step      string
	Errors    []validate.FieldError
	StepIndex int
}

func (e *RejectionError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%s submission rejected", e.Flow)
	}
	if e.Step != "" {
		return fmt.Sprintf("%s submission rejected at step %q: %s", e.Flow, e.Step, e.Errors[0].Message)
	}
	return fmt.Sprintf("%s submission rejected: %s", e.Flow, e.Errors[0].Message)
}

func (e *RejectionError) Unwrap() error { return ErrRejected }

// Store persists submissions.
type Store interface {
	AppendWithLastID(ctx context.Context, key string, sub *model.Submission, lastIDKey string) error
}

// Request is one submission attempt.
type Request struct {
	Flow     *flow.Definition
	Wizard   *wizard.Wizard
	Selected *model.CatalogEntry
	// OnReset runs after the wizard was reset, e.g. to drop a board
	// selection.
	OnReset func()
}

// Result is a persisted submission.
type Result struct {
	Submission *model.Submission
	Quote      *pricing.Quote
	Reset      common.Timer
}

// Pipeline submits wizards.
type Pipeline struct {
	store      Store
	ids        *trackid.Generator
	notifier   notify.Notifier
	clock      common.Clock
	resetDelay time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the clock used for timestamps and the reset timer.
func WithClock(clock common.Clock) Option {
	return func(p *Pipeline) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithNotifier sets where success and rejection notices go.
func WithNotifier(n notify.Notifier) Option {
	return func(p *Pipeline) { p.notifier = n }
}

// WithResetDelay sets the delay before a submitted form is reset.
func WithResetDelay(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.resetDelay = d
		}
	}
}

// New creates a pipeline.
func New(store Store, ids *trackid.Generator, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:      store,
		ids:        ids,
		clock:      common.SystemClock{},
		resetDelay: DefaultResetDelay,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.ids == nil {
		p.ids = trackid.New(p.clock, nil)
	}
	return p
}

// Submit runs req through every gate. A rejection focuses the first
// offending step, surfaces a notice and persists nothing. On success the
// wizard is reset after the configured delay.
func (p *Pipeline) Submit(ctx context.Context, req Request) (*Result, error) {
	def, w := req.Flow, req.Wizard
	if def == nil || w == nil {
		return nil, errors.New("submission needs a flow and a wizard")
	}

	def.ApplyPresets(w)
	if se := w.ValidateAll(); se != nil {
		_ = w.Focus(se.Index)
		p.reject(def.RejectMessage)
		return nil, &RejectionError{
			Flow:      def.Name,
			Step:      se.Step,
			StepIndex: se.Index,
			Errors:    se.Result.Errors,
		}
	}

	in := flow.Input{Values: w.Values(), Selected: req.Selected}
	if errs := def.Acknowledge(in); len(errs) > 0 {
		rej := &RejectionError{Flow: def.Name, Errors: errs, StepIndex: -1}
		if _, idx, ok := w.Field(errs[0].Field); ok {
			_ = w.Focus(idx)
			rej.StepIndex = idx
			rej.Step = w.Current().Name
		}
		p.reject(errs[0].Message)
		return nil, rej
	}

	quote := def.Quote(in.Values)
	var price *model.PriceBreakdown
	if quote != nil {
		b := quote.Breakdown
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("invalid %s price: %w", def.Name, err)
		}
		price = &b
	}

	payload, err := def.Build(in, price)
	if err != nil {
		return nil, err
	}

	trackingID, err := p.ids.Generate(def.Prefix, def.Scheme)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tracking id: %w", err)
	}

	sub, err := model.NewSubmission(def.Name, trackingID, def.Status, p.clock.Now(), payload, price)
	if err != nil {
		return nil, err
	}

	if err := p.store.AppendWithLastID(ctx, def.Key, sub, def.LastIDKey); err != nil {
		p.reject("Could not save your request. Please try again.")
		return nil, fmt.Errorf("failed to save %s submission: %w", def.Name, err)
	}

	slog.Info("Submission saved",
		"flow", def.Name,
		"tracking_id", trackingID,
		"status", def.Status)
	if price != nil {
		slog.Debug("Submission price", "flow", def.Name, "total", price.Total)
	}

	if p.notifier != nil {
		p.notifier.Success(def.SuccessMessage(trackingID))
	}

	onReset := req.OnReset
	timer := p.clock.AfterFunc(p.resetDelay, func() {
		w.Reset()
		if onReset != nil {
			onReset()
		}
		slog.Debug("Form reset", "flow", def.Name)
	})

	return &Result{Submission: sub, Quote: quote, Reset: timer}, nil
}

func (p *Pipeline) reject(msg string) {
	if p.notifier != nil && msg != "" {
		p.notifier.Error(msg)
	}
}

// FieldMessages flattens a rejection into "field: message" lines.
func FieldMessages(err error) []string {
	var rej *RejectionError
	if !errors.As(err, &rej) {
		return nil
	}
	out := make([]string, 0, len(rej.Errors))
	for _, fe := range rej.Errors {
		out = append(out, fe.Error())
	}
	return out
}
