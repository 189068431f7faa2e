// Package flow declares the request flows: their wizard steps, the
// acknowledgements checked at submit time, how they are priced and how a
// validated form becomes a typed record.
package flow

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/safarshare/safar/internal/common"
	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/pricing"
	"github.com/safarshare/safar/internal/trackid"
	"github.com/safarshare/safar/internal/validate"
	"github.com/safarshare/safar/internal/wizard"
)

// Flow names.
const (
	NameParcel   = "parcel"
	NameDocument = "document"
	NameShopping = "shopping"
	NameCommute  = "commute"
	NameJourney  = "journey"
	NameContact  = "contact"
)

// Acknowledgement field names.
const (
	FieldTerms = "terms"
	FieldLegal = "legalConfirmation"
)

// NotSelected is stored when an optional candidate was not picked.
const NotSelected = "not-selected"

// PaymentMethods accepted by the delivery flows and journeys.
var PaymentMethods = []string{"cash", "easypaisa", "jazzcash", "bank"}

// Input is everything a submission is built from.
type Input struct {
	Values   validate.Values
	Selected *model.CatalogEntry
}

// Acknowledgement is a precondition checked only at submit time.
type Acknowledgement struct {
	Satisfied func(in Input) bool
	Field     string
	Label     string
	Message   string
	// Confirm marks yes/no acknowledgements an adapter should ask for.
	Confirm bool
}

// Definition describes one flow.
type Definition struct {
	steps     func(now func() time.Time) []wizard.Step
	defaults  func(now func() time.Time) validate.Values
	presets   func(values validate.Values) validate.Values
	quote     func(values validate.Values) pricing.Quote
	build     func(in Input, price *model.PriceBreakdown) (any, error)
	success   func(trackingID string) string
	Name      string
	Title     string
	Key       string
	LastIDKey string
	Prefix    string
	Status    model.SubmissionStatus
	Catalog   model.CatalogKind
	// RejectMessage is shown when a submission fails validation.
	RejectMessage string
	Acks          []Acknowledgement
	Scheme        trackid.Scheme
	NewestFirst   bool
}

// Steps returns the wizard steps, with date checks relative to now.
func (d *Definition) Steps(now func() time.Time) []wizard.Step {
	return d.steps(now)
}

// Defaults returns the values a fresh form starts with.
func (d *Definition) Defaults(now func() time.Time) validate.Values {
	if d.defaults == nil {
		return validate.Values{}
	}
	return d.defaults(now)
}

// NewWizard builds a wizard for the flow. Defaults are re-applied on
// every reset.
func (d *Definition) NewWizard(clock common.Clock) (*wizard.Wizard, error) {
	if clock == nil {
		clock = common.SystemClock{}
	}
	w, err := wizard.New(d.Steps(clock.Now), func() validate.Values { return d.Defaults(clock.Now) })
	if err != nil {
		return nil, fmt.Errorf("failed to build %s wizard: %w", d.Name, err)
	}
	return w, nil
}

// Presets returns the values to fill in for blank fields, derived from
// other fields. The result may be empty.
func (d *Definition) Presets(values validate.Values) validate.Values {
	if d.presets == nil {
		return validate.Values{}
	}
	return d.presets(values)
}

// ApplyPresets fills blank fields of w from the flow's presets.
func (d *Definition) ApplyPresets(w *wizard.Wizard) {
	for name, value := range d.Presets(w.Values()) {
		w.Set(name, value)
	}
}

// Priced reports whether the flow has a price calculator.
func (d *Definition) Priced() bool { return d.quote != nil }

// Quote prices the current values. It returns nil for unpriced flows.
func (d *Definition) Quote(values validate.Values) *pricing.Quote {
	if d.quote == nil {
		return nil
	}
	q := d.quote(values)
	return &q
}

// Acknowledge checks every acknowledgement and returns one precondition
// error per unmet one, in declaration order.
func (d *Definition) Acknowledge(in Input) []validate.FieldError {
	var out []validate.FieldError
	for _, ack := range d.Acks {
		if !ack.Satisfied(in) {
			out = append(out, validate.FieldError{
				Field:   ack.Field,
				Kind:    validate.KindPrecondition,
				Message: ack.Message,
			})
		}
	}
	return out
}

// Build turns validated input into the typed record payload.
func (d *Definition) Build(in Input, price *model.PriceBreakdown) (any, error) {
	payload, err := d.build(in, price)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s record: %w", d.Name, err)
	}
	return payload, nil
}

// SuccessMessage is the notice shown after a successful submission.
func (d *Definition) SuccessMessage(trackingID string) string {
	if d.success == nil {
		return fmt.Sprintf("%s submitted! Tracking ID: %s", d.Title, trackingID)
	}
	return d.success(trackingID)
}

var registry = map[string]*Definition{}

var order []string

func register(d *Definition) {
	registry[d.Name] = d
	order = append(order, d.Name)
}

func init() {
	register(Parcel())
	register(Document())
	register(Shopping())
	register(Commute())
	register(Journey())
	register(Contact())
}

// Lookup returns the flow with the given name.
func Lookup(name string) (*Definition, error) {
	d, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownFlow, name)
	}
	return d, nil
}

// Names lists the registered flows in display order.
func Names() []string { return slices.Clone(order) }

// Delivery reports whether the flow keeps a last tracking id.
func (d *Definition) Delivery() bool { return d.LastIDKey != "" }

func termsAck(label string) Acknowledgement {
	return Acknowledgement{
		Field:     FieldTerms,
		Label:     label,
		Message:   "You must agree to the terms and conditions",
		Confirm:   true,
		Satisfied: func(in Input) bool { return in.Values.Bool(FieldTerms) },
	}
}

func tomorrow(now func() time.Time) string {
	return now().AddDate(0, 0, 1).Format(validate.DateLayout)
}

func dayAfter(now func() time.Time) string {
	return now().AddDate(0, 0, 2).Format(validate.DateLayout)
}

func text(name, label string, checks ...validate.Check) validate.Field {
	return validate.Field{Name: name, Label: label, Required: true, Checks: checks}
}

func optional(name, label string, checks ...validate.Check) validate.Field {
	return validate.Field{Name: name, Label: label, Checks: checks}
}

func choice(name, label string, options ...string) validate.Field {
	return validate.Field{
		Name:     name,
		Label:    label,
		Required: true,
		Input:    validate.InputChoice,
		Options:  options,
		Checks:   []validate.Check{validate.OneOf(options...)},
	}
}

func flag(name, label string) validate.Field {
	return validate.Field{Name: name, Label: label, Input: validate.InputBool}
}

func float(values validate.Values, name string) float64 {
	f, _ := values.Float(name)
	return f
}

func integer(values validate.Values, name string) int {
	n, _ := values.Int(name)
	return n
}

func total(price *model.PriceBreakdown) int64 {
	if price == nil {
		return 0
	}
	return price.Total
}

func selectedID(in Input) string {
	if in.Selected == nil {
		return NotSelected
	}
	return strconv.Itoa(in.Selected.ID)
}
