// Package wizard implements the step-gated form state machine shared by
// every request flow.
package wizard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/safarshare/safar/internal/validate"
)

// ErrStepInvalid is returned when the active step does not validate.
var ErrStepInvalid = errors.New("step has invalid fields")

// ErrNoSteps is returned when a wizard is built without steps.
var ErrNoSteps = errors.New("wizard needs at least one step")

// Step is one named page of fields.
type Step struct {
	Name   string
	Title  string
	Fields []validate.Field
}

// StepError reports the failures that kept a step from advancing.
type StepError struct {
	Step   string
	Result validate.Result
	Index  int
}

func (e *StepError) Error() string {
	if first := e.Result.First(); first != nil {
		return fmt.Sprintf("step %q: %s", e.Step, first.Message)
	}
	return fmt.Sprintf("step %q is invalid", e.Step)
}

func (e *StepError) Unwrap() error { return ErrStepInvalid }

// Wizard holds the values of a multi-step form and the active step.
// Exactly one step is active; forward moves are gated by validation.
type Wizard struct {
	values   validate.Values
	errors   map[string]validate.FieldError
	defaults func() validate.Values
	steps    []Step
	current  int
	mu       sync.Mutex
}

// New creates a wizard positioned at the first step. defaults, when not
// nil, seeds the values now and on every Reset.
func New(steps []Step, defaults func() validate.Values) (*Wizard, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	w := &Wizard{steps: steps, defaults: defaults}
	w.reset()
	return w, nil
}

func (w *Wizard) reset() {
	w.current = 0
	w.errors = make(map[string]validate.FieldError)
	w.values = make(validate.Values)
	if w.defaults != nil {
		for k, v := range w.defaults() {
			w.values[k] = v
		}
	}
}

// Steps returns the step definitions.
func (w *Wizard) Steps() []Step { return w.steps }

// Index returns the zero-based active step.
func (w *Wizard) Index() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Current returns the active step.
func (w *Wizard) Current() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.steps[w.current]
}

// IsFinal reports whether the active step is the last one, which is the
// only step from which a priced submission is made.
func (w *Wizard) IsFinal() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current == len(w.steps)-1
}

// Progress returns the completion percentage of the active step.
func (w *Wizard) Progress() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return (w.current + 1) * 100 / len(w.steps)
}

// Next validates the active step and advances when it passes. On the
// final step a passing validation leaves the wizard in place.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	r := w.validateStep(w.current)
	if !r.Valid() {
		return &StepError{Step: w.steps[w.current].Name, Index: w.current, Result: r}
	}
	if w.current < len(w.steps)-1 {
		w.current++
	}
	return nil
}

// Back moves to the previous step without validating. It reports whether
// the wizard moved.
func (w *Wizard) Back() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == 0 {
		return false
	}
	w.current--
	return true
}

// Focus jumps to step i. It is used to re-focus an offending step after a
// rejected submission.
func (w *Wizard) Focus(i int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i >= len(w.steps) {
		return fmt.Errorf("step index %d out of range", i)
	}
	w.current = i
	return nil
}

// Set stores a raw value. It does not validate.
func (w *Wizard) Set(name, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.values[name] = value
}

// Get returns a trimmed value.
func (w *Wizard) Get(name string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.values.Get(name)
}

// Values returns a copy of all values.
func (w *Wizard) Values() validate.Values {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.values.Clone()
}

// Field looks up a field declared on any step.
func (w *Wizard) Field(name string) (validate.Field, int, bool) {
	for i, s := range w.steps {
		for _, f := range s.Fields {
			if f.Name == name {
				return f, i, true
			}
		}
	}
	return validate.Field{}, -1, false
}

// ValidateField re-validates one field, flagging or clearing it.
func (w *Wizard) ValidateField(name string) *validate.FieldError {
	f, _, ok := w.Field(name)
	if !ok {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	fe := f.Validate(w.values)
	if fe == nil {
		delete(w.errors, name)
		return nil
	}
	w.errors[name] = *fe
	return fe
}

// ValidateStep validates step i, flagging or clearing each of its fields.
func (w *Wizard) ValidateStep(i int) validate.Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.validateStep(i)
}

func (w *Wizard) validateStep(i int) validate.Result {
	fields := w.steps[i].Fields
	r := validate.Fields(fields, w.values)
	for _, f := range fields {
		delete(w.errors, f.Name)
	}
	for _, fe := range r.Errors {
		w.errors[fe.Field] = fe
	}
	return r
}

// ValidateAll validates every step and returns the first failing one as a
// StepError, or nil.
func (w *Wizard) ValidateAll() *StepError {
	w.mu.Lock()
	defer w.mu.Unlock()
	var first *StepError
	for i := range w.steps {
		r := w.validateStep(i)
		if !r.Valid() && first == nil {
			first = &StepError{Step: w.steps[i].Name, Index: i, Result: r}
		}
	}
	return first
}

// Error returns the flagged error of a field, if any.
func (w *Wizard) Error(name string) (validate.FieldError, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fe, ok := w.errors[name]
	return fe, ok
}

// Reset clears values and flags, re-applies defaults and returns to the
// first step.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
}
