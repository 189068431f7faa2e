package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/safarshare/safar/internal/model"
)

// AppendJoin adds an entry to the join log stored under key.
func (s *SQLiteStorage) AppendJoin(ctx context.Context, key string, entry *model.JoinEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateJoinKey(key); err != nil {
		return err
	}
	if err := validateJoin(entry); err != nil {
		return err
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var seq int64
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(seq), 0) + 1 FROM joins WHERE list_key = ?`, key,
		).Scan(&seq); err != nil {
			return fmt.Errorf("failed to get next sequence: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO joins (id, list_key, seq, kind, entry_id, entry_name, price, joined_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			entry.ID, key, seq, string(entry.Kind), entry.EntryID, entry.EntryName, entry.Price, entry.JoinedAt.UTC(),
		); err != nil {
			return fmt.Errorf("failed to insert join entry: %w", err)
		}
		slog.Debug("Recorded join", "key", key, "entry_id", entry.EntryID)
		return nil
	})
}

// ListJoins returns the join log stored under key, oldest first.
func (s *SQLiteStorage) ListJoins(ctx context.Context, key string) ([]model.JoinEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateJoinKey(key); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, entry_id, entry_name, price, joined_at
		FROM joins WHERE list_key = ? ORDER BY seq ASC`, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query join log: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Error("failed to close rows", "error", closeErr)
		}
	}()

	var entries []model.JoinEntry
	for rows.Next() {
		var (
			e        model.JoinEntry
			kind     string
			joinedAt time.Time
		)
		if err := rows.Scan(&e.ID, &kind, &e.EntryID, &e.EntryName, &e.Price, &joinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan join entry: %w", err)
		}
		e.Kind = model.CatalogKind(kind)
		e.JoinedAt = joinedAt.UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// JoinCounts returns how many times each entry of a kind has been joined.
func (s *SQLiteStorage) JoinCounts(ctx context.Context, key string, kind model.CatalogKind) (map[int]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateJoinKey(key); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry_id, COUNT(*) FROM joins
		WHERE list_key = ? AND kind = ? GROUP BY entry_id`, key, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to count joins: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Error("failed to close rows", "error", closeErr)
		}
	}()

	counts := make(map[int]int)
	for rows.Next() {
		var id, n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("failed to scan join count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}
