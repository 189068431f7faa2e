// Package storage persists record lists, the join log and small settings
// values in a local SQLite database.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/safarshare/safar/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrUnknownKey    = errors.New("unknown list key")
	ErrInvalidRecord = errors.New("invalid record")
	ErrInvalidJoin   = errors.New("invalid join entry")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateRecordKey(key string) error {
	if !IsRecordKey(key) {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

func validateJoinKey(key string) error {
	if !IsJoinKey(key) {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

// validateSubmission validates a record before it is appended.
func validateSubmission(sub *model.Submission) error {
	if sub == nil {
		return fmt.Errorf("%w: submission", ErrNilParameter)
	}
	if strings.TrimSpace(sub.TrackingID) == "" {
		return fmt.Errorf("%w: missing tracking id", ErrInvalidRecord)
	}
	if sub.Flow == "" {
		return fmt.Errorf("%w: missing flow", ErrInvalidRecord)
	}
	if sub.Status == "" {
		return fmt.Errorf("%w: missing status", ErrInvalidRecord)
	}
	if sub.Timestamp.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidRecord)
	}
	if len(sub.Fields) == 0 {
		return fmt.Errorf("%w: missing fields", ErrInvalidRecord)
	}
	if sub.Price != nil {
		if err := sub.Price.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		}
	}
	return nil
}

// validateJoin validates a join entry.
func validateJoin(entry *model.JoinEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: join entry", ErrNilParameter)
	}
	if entry.EntryID <= 0 {
		return fmt.Errorf("%w: missing entry id", ErrInvalidJoin)
	}
	if strings.TrimSpace(entry.EntryName) == "" {
		return fmt.Errorf("%w: missing entry name", ErrInvalidJoin)
	}
	if entry.JoinedAt.IsZero() {
		return fmt.Errorf("%w: missing join time", ErrInvalidJoin)
	}
	return nil
}
