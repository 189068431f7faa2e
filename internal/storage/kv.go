package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safarshare/safar/internal/common"
)

// SetValue stores a settings value, replacing any previous one.
func (s *SQLiteStorage) SetValue(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	return setValueTx(ctx, s.db, key, value)
}

func setValueTx(ctx context.Context, q queryable, key, value string) error {
	if _, err := q.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// GetValue returns a settings value or common.ErrNotFound.
func (s *SQLiteStorage) GetValue(ctx context.Context, key string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(key, "key"); err != nil {
		return "", err
	}
	var value string
	if err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value); err != nil {
		return "", notFound(err, "value %s", key)
	}
	return value, nil
}

// notFound maps sql.ErrNoRows to common.ErrNotFound.
func notFound(err error, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, common.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}
