package validate

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/safarshare/safar/internal/common"
)

var (
	emailPattern          = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern          = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	pakistaniPhonePattern = regexp.MustCompile(`^\+92\d{10}$`)
	clockPattern          = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	phoneSeparators       = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")
)

func fail(kind Kind, msg string) *FieldError {
	return &FieldError{Kind: kind, Message: msg}
}

// MinLength requires at least n characters.
func MinLength(n int, msg string) Check {
	return func(value string, _ Values) *FieldError {
		if utf8.RuneCountInString(value) < n {
			return fail(KindRange, msg)
		}
		return nil
	}
}

// FloatRange requires a number within [lo, hi].
func FloatRange(lo, hi float64, msg string) Check {
	return func(value string, _ Values) *FieldError {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fail(KindFormat, "Please enter a number")
		}
		if f < lo || f > hi {
			return fail(KindRange, msg)
		}
		return nil
	}
}

// IntRange requires a whole number within [lo, hi].
func IntRange(lo, hi int, msg string) Check {
	return func(value string, _ Values) *FieldError {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fail(KindFormat, "Please enter a whole number")
		}
		if n < lo || n > hi {
			return fail(KindRange, msg)
		}
		return nil
	}
}

// Date requires a YYYY-MM-DD value.
func Date() Check {
	return func(value string, _ Values) *FieldError {
		if _, err := time.Parse(DateLayout, value); err != nil {
			return fail(KindFormat, "Please enter a date as YYYY-MM-DD")
		}
		return nil
	}
}

// Clock requires a 24-hour HH:MM time.
func Clock(msg string) Check {
	return func(value string, _ Values) *FieldError {
		if !clockPattern.MatchString(value) {
			return fail(KindFormat, msg)
		}
		return nil
	}
}

// NotPast requires a date no earlier than today.
func NotPast(now func() time.Time, msg string) Check {
	return func(value string, _ Values) *FieldError {
		t, err := time.Parse(DateLayout, value)
		if err != nil {
			return fail(KindFormat, "Please enter a date as YYYY-MM-DD")
		}
		today := common.StartOfDay(now())
		if time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, today.Location()).Before(today) {
			return fail(KindRange, msg)
		}
		return nil
	}
}

// NotBefore requires a date no earlier than the date in another field.
// It passes when the other field is blank or unparsable.
func NotBefore(other, msg string) Check {
	return func(value string, values Values) *FieldError {
		t, err := time.Parse(DateLayout, value)
		if err != nil {
			return fail(KindFormat, "Please enter a date as YYYY-MM-DD")
		}
		ref, ok := values.Date(other)
		if ok && t.Before(ref) {
			return fail(KindRange, msg)
		}
		return nil
	}
}

// NotEqual requires a value different from another field, ignoring case.
func NotEqual(other, msg string) Check {
	return func(value string, values Values) *FieldError {
		if strings.EqualFold(value, values.Get(other)) {
			return fail(KindRange, msg)
		}
		return nil
	}
}

// OneOf requires one of the given options, ignoring case.
func OneOf(options ...string) Check {
	return func(value string, _ Values) *FieldError {
		if slices.ContainsFunc(options, func(o string) bool { return strings.EqualFold(o, value) }) {
			return nil
		}
		return fail(KindFormat, fmt.Sprintf("Please choose one of: %s", strings.Join(options, ", ")))
	}
}

// EachOneOf requires every item of a comma separated list to be an option.
func EachOneOf(options ...string) Check {
	single := OneOf(options...)
	return func(value string, values Values) *FieldError {
		for _, item := range (Values{"v": value}).List("v") {
			if fe := single(item, values); fe != nil {
				return fe
			}
		}
		return nil
	}
}

// Contact requires an email address or a phone number.
func Contact(msg string) Check {
	return func(value string, _ Values) *FieldError {
		if !IsValidContact(value) {
			return fail(KindFormat, msg)
		}
		return nil
	}
}

// PakistaniPhone requires +92 followed by ten digits. Spaces are ignored.
func PakistaniPhone(msg string) Check {
	return func(value string, _ Values) *FieldError {
		if !pakistaniPhonePattern.MatchString(strings.ReplaceAll(value, " ", "")) {
			return fail(KindFormat, msg)
		}
		return nil
	}
}

// IsEmail reports whether s looks like local@domain.tld.
func IsEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// IsPhone reports whether s is 1 to 16 digits, optionally prefixed by +,
// with a non-zero leading digit. Spaces, dashes, dots and parentheses are
// dropped first.
func IsPhone(s string) bool {
	return phonePattern.MatchString(phoneSeparators.Replace(strings.TrimSpace(s)))
}

// IsValidContact reports whether s is an email address or a phone number.
func IsValidContact(s string) bool {
	return IsEmail(s) || IsPhone(s)
}
