package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/safarshare/safar/internal/common"
	"github.com/safarshare/safar/internal/model"
)

// Order selects the listing order of a record list.
type Order int

// Listing orders.
const (
	OldestFirst Order = iota
	NewestFirst
)

// Append adds a record to the end of the list stored under key. A record
// without an ID gets a fresh UUID.
func (s *SQLiteStorage) Append(ctx context.Context, key string, sub *model.Submission) error {
	return s.AppendWithLastID(ctx, key, sub, "")
}

// AppendWithLastID appends a record and, when lastIDKey is set, stores
// its tracking id under lastIDKey in the same transaction.
func (s *SQLiteStorage) AppendWithLastID(ctx context.Context, key string, sub *model.Submission, lastIDKey string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecordKey(key); err != nil {
		return err
	}
	if err := validateSubmission(sub); err != nil {
		return err
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}

	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		var seq int64
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(seq), 0) + 1 FROM records WHERE list_key = ?`, key,
		).Scan(&seq); err != nil {
			return fmt.Errorf("failed to get next sequence: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO records (id, list_key, seq, tracking_id, flow, status, payload, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			sub.ID, key, seq, sub.TrackingID, sub.Flow, string(sub.Status), string(payload), sub.Timestamp.UTC(),
		); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}

		if lastIDKey != "" {
			return setValueTx(ctx, tx, lastIDKey, sub.TrackingID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Debug("Appended record", "key", key, "tracking_id", sub.TrackingID)
	return nil
}

// List returns every record stored under key in the given order.
func (s *SQLiteStorage) List(ctx context.Context, key string, order Order) ([]model.Submission, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateRecordKey(key); err != nil {
		return nil, err
	}

	query := `SELECT payload FROM records WHERE list_key = ? ORDER BY seq ASC`
	if order == NewestFirst {
		query = `SELECT payload FROM records WHERE list_key = ? ORDER BY seq DESC`
	}

	rows, err := s.db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Error("failed to close rows", "error", closeErr)
		}
	}()

	var records []model.Submission
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		sub, err := decodeRecord(payload)
		if err != nil {
			return nil, err
		}
		records = append(records, sub)
	}
	return records, rows.Err()
}

// Count returns the number of records stored under key.
func (s *SQLiteStorage) Count(ctx context.Context, key string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateRecordKey(key); err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE list_key = ?`, key).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

// Clear removes every record stored under key and returns how many were
// removed.
func (s *SQLiteStorage) Clear(ctx context.Context, key string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateRecordKey(key); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE list_key = ?`, key)
	if err != nil {
		return 0, fmt.Errorf("failed to clear records: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared records: %w", err)
	}
	slog.Info("Cleared records", "key", key, "count", n)
	return int(n), nil
}

// FindByTrackingID returns the record with the given tracking id.
func (s *SQLiteStorage) FindByTrackingID(ctx context.Context, trackingID string) (*model.Submission, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(trackingID, "trackingID"); err != nil {
		return nil, err
	}
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM records WHERE tracking_id = ? ORDER BY created_at DESC LIMIT 1`, trackingID,
	).Scan(&payload)
	if err != nil {
		return nil, notFound(err, "record %s", trackingID)
	}
	sub, err := decodeRecord(payload)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// decodeRecord parses a stored payload.
func decodeRecord(payload string) (model.Submission, error) {
	var sub model.Submission
	if err := json.Unmarshal([]byte(payload), &sub); err != nil {
		return model.Submission{}, fmt.Errorf("%w: failed to decode record: %w", common.ErrDatabaseCorrupted, err)
	}
	return sub, nil
}

// Export renders the list stored under key as an indented JSON array,
// the same shape the list has always been persisted in.
func (s *SQLiteStorage) Export(ctx context.Context, key string) ([]byte, error) {
	var (
		v   any
		err error
	)
	switch {
	case IsRecordKey(key):
		var records []model.Submission
		records, err = s.List(ctx, key, OldestFirst)
		if records == nil {
			records = []model.Submission{}
		}
		v = records
	case IsJoinKey(key):
		var joins []model.JoinEntry
		joins, err = s.ListJoins(ctx, key)
		if joins == nil {
			joins = []model.JoinEntry{}
		}
		v = joins
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return out, nil
}

