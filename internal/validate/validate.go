// Package validate checks raw form values against declared field rules.
// It has no I/O: adapters turn the returned FieldErrors into visual flags.
package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout of every date field value.
const DateLayout = "2006-01-02"

// Kind classifies a validation failure.
type Kind string

// Failure kinds.
const (
	KindRequired     Kind = "required"
	KindFormat       Kind = "format"
	KindRange        Kind = "range"
	KindPrecondition Kind = "precondition"
)

// FieldError is the message attached to one failing field.
type FieldError struct {
	Field   string
	Kind    Kind
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InputType tells adapters how to prompt for a field.
type InputType int

// Input types.
const (
	InputText InputType = iota
	InputBool
	InputChoice
	InputList
)

// Values holds raw field values keyed by field name.
type Values map[string]string

// Get returns the trimmed value of a field.
func (v Values) Get(name string) string {
	return strings.TrimSpace(v[name])
}

// Blank reports whether a field is missing or whitespace only.
func (v Values) Blank(name string) bool {
	return v.Get(name) == ""
}

// Float parses a field as a finite float.
func (v Values) Float(name string) (float64, bool) {
	f, err := strconv.ParseFloat(v.Get(name), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int parses a field as an integer.
func (v Values) Int(name string) (int, bool) {
	n, err := strconv.Atoi(v.Get(name))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Bool parses a checkbox-style field. Unset or unparsable is false.
func (v Values) Bool(name string) bool {
	switch strings.ToLower(v.Get(name)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// Date parses a field in DateLayout.
func (v Values) Date(name string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, v.Get(name))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// List splits a comma separated field, dropping empty items.
func (v Values) List(name string) []string {
	raw := v.Get(name)
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Clone returns an independent copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Check validates a non-blank value. It returns nil when the value passes.
type Check func(value string, values Values) *FieldError

// Field declares one form field and its constraints.
type Field struct {
	Name        string
	Label       string
	Help        string
	RequiredMsg string
	Options     []string
	Checks      []Check
	Input       InputType
	Required    bool
}

// Validate runs the field's constraints, stopping at the first failure.
// Blank optional fields are not checked further.
func (f Field) Validate(values Values) *FieldError {
	value := values.Get(f.Name)
	if value == "" {
		if !f.Required {
			return nil
		}
		msg := f.RequiredMsg
		if msg == "" {
			msg = "This field is required"
		}
		return &FieldError{Field: f.Name, Kind: KindRequired, Message: msg}
	}
	for _, check := range f.Checks {
		if fe := check(value, values); fe != nil {
			fe.Field = f.Name
			return fe
		}
	}
	return nil
}

// Result is the outcome of validating a group of fields.
type Result struct {
	Errors []FieldError
}

// Fields validates each field independently.
func Fields(fields []Field, values Values) Result {
	var r Result
	for _, f := range fields {
		if fe := f.Validate(values); fe != nil {
			r.Errors = append(r.Errors, *fe)
		}
	}
	return r
}

// Valid reports whether no field failed.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// First returns the first failure, or nil.
func (r Result) First() *FieldError {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}

// For returns the failure of a named field, or nil.
func (r Result) For(name string) *FieldError {
	for i := range r.Errors {
		if r.Errors[i].Field == name {
			return &r.Errors[i]
		}
	}
	return nil
}

// Messages maps each failing field to its message.
func (r Result) Messages() map[string]string {
	out := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		out[e.Field] = e.Message
	}
	return out
}
