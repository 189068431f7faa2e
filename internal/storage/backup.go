package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Backup errors.
var (
	ErrBackupNotFound  = errors.New("backup not found")
	ErrBackupExists    = errors.New("backup already exists")
	ErrBackupCorrupted = errors.New("backup integrity check failed")
	ErrBackupSchema    = errors.New("backup schema version does not match")
)

const (
	backupExt       = ".db"
	backupMetaExt   = ".meta.json"
	maxAutoBackups  = 5
	backupTagLayout = "2006-01-02-150405"
)

// BackupInfo describes one snapshot of the local store.
type BackupInfo struct {
	CreatedAt     time.Time      `json:"created_at"`
	RecordCounts  map[string]int `json:"record_counts"`
	ID            string         `json:"id"`
	Description   string         `json:"description"`
	FileSize      int64          `json:"file_size"`
	JoinCount     int            `json:"join_count"`
	SchemaVersion int            `json:"schema_version"`
	IsAuto        bool           `json:"is_auto"`
}

// BackupManager snapshots the store into a directory and restores
// snapshots into the open database.
type BackupManager struct {
	store *SQLiteStorage
	dir   string
	now   func() time.Time
}

// NewBackupManager creates a manager writing to dir. An empty dir means a
// "backups" directory next to the database file.
func (s *SQLiteStorage) NewBackupManager(dir string) (*BackupManager, error) {
	if dir == "" {
		if s.dbPath == MemoryPath {
			return nil, fmt.Errorf("%w: backup directory for in-memory database", ErrEmptyString)
		}
		dir = filepath.Join(filepath.Dir(s.dbPath), "backups")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create backups directory: %w", err)
	}
	return &BackupManager{store: s, dir: dir, now: time.Now}, nil
}

// Dir returns the backups directory.
func (bm *BackupManager) Dir() string { return bm.dir }

func validateBackupID(id string) error {
	if err := validateString(id, "backup id"); err != nil {
		return err
	}
	if strings.ContainsAny(id, `/\'";`) || strings.Contains(id, "..") {
		return fmt.Errorf("invalid backup id %q: cannot contain path separators or quotes", id)
	}
	return nil
}

func (bm *BackupManager) paths(id string) (dbPath, metaPath string) {
	return filepath.Join(bm.dir, id+backupExt), filepath.Join(bm.dir, id+backupMetaExt)
}

// Create snapshots the store. An empty tag is generated from the time.
func (bm *BackupManager) Create(ctx context.Context, tag, description string) (*BackupInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if tag == "" {
		tag = "backup-" + bm.now().Format(backupTagLayout)
	}
	if err := validateBackupID(tag); err != nil {
		return nil, err
	}

	dbPath, metaPath := bm.paths(tag)
	if _, err := os.Stat(dbPath); err == nil {
		return nil, ErrBackupExists
	}

	version, err := bm.store.SchemaVersion(ctx)
	if err != nil {
		return nil, err
	}
	counts, joins, err := bm.store.rowCounts(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := bm.store.db.ExecContext(ctx, "VACUUM INTO ?", dbPath); err != nil {
		return nil, fmt.Errorf("failed to write backup: %w", err)
	}

	stat, err := os.Stat(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat backup: %w", err)
	}

	info := &BackupInfo{
		ID:            tag,
		CreatedAt:     bm.now().UTC(),
		Description:   description,
		FileSize:      stat.Size(),
		RecordCounts:  counts,
		JoinCount:     joins,
		SchemaVersion: version,
	}
	if err := saveBackupInfo(metaPath, info); err != nil {
		_ = os.Remove(dbPath)
		return nil, err
	}

	slog.Info("Created backup", "id", tag, "size", info.FileSize)
	return info, nil
}

// Auto takes an automatic backup before a destructive operation and keeps
// only the most recent automatic backups.
func (bm *BackupManager) Auto(ctx context.Context, reason string) (*BackupInfo, error) {
	tag := fmt.Sprintf("auto-%s-%s", reason, bm.now().Format(backupTagLayout))
	info, err := bm.Create(ctx, tag, "Automatic backup before "+reason)
	if err != nil {
		return nil, fmt.Errorf("failed to create automatic backup: %w", err)
	}
	info.IsAuto = true
	_, metaPath := bm.paths(tag)
	if err := saveBackupInfo(metaPath, info); err != nil {
		slog.Error("failed to mark backup as automatic", "id", tag, "error", err)
	}

	if err := bm.pruneAuto(ctx); err != nil {
		slog.Warn("failed to prune automatic backups", "error", err)
	}
	return info, nil
}

func (bm *BackupManager) pruneAuto(ctx context.Context) error {
	backups, err := bm.List(ctx)
	if err != nil {
		return err
	}
	kept := 0
	for _, b := range backups {
		if !b.IsAuto {
			continue
		}
		kept++
		if kept > maxAutoBackups {
			if err := bm.Delete(ctx, b.ID); err != nil {
				slog.Debug("failed to delete old automatic backup", "id", b.ID, "error", err)
			}
		}
	}
	return nil
}

// List returns every backup, newest first. Unreadable metadata is skipped.
func (bm *BackupManager) List(_ context.Context) ([]BackupInfo, error) {
	entries, err := os.ReadDir(bm.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backups directory: %w", err)
	}

	backups := make([]BackupInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), backupMetaExt) {
			continue
		}
		info, err := loadBackupInfo(filepath.Join(bm.dir, entry.Name()))
		if err != nil {
			slog.Debug("skipping unreadable backup metadata", "file", entry.Name(), "error", err)
			continue
		}
		backups = append(backups, *info)
	}

	sort.SliceStable(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// Restore replaces the store's contents with a backup's. The backup must
// pass an integrity check and carry the current schema version.
func (bm *BackupManager) Restore(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBackupID(id); err != nil {
		return err
	}
	dbPath, _ := bm.paths(id)
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return ErrBackupNotFound
		}
		return fmt.Errorf("failed to access backup: %w", err)
	}

	// ATTACH is per connection and not allowed inside a transaction.
	conn, err := bm.store.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to get connection: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Error("failed to release connection", "error", closeErr)
		}
	}()

	if _, err := conn.ExecContext(ctx, "ATTACH DATABASE ? AS snapshot", dbPath); err != nil {
		return fmt.Errorf("failed to attach backup: %w", err)
	}
	defer func() {
		if _, detachErr := conn.ExecContext(context.WithoutCancel(ctx), "DETACH DATABASE snapshot"); detachErr != nil {
			slog.Error("failed to detach backup", "error", detachErr)
		}
	}()

	var check string
	if err := conn.QueryRowContext(ctx, "PRAGMA snapshot.integrity_check").Scan(&check); err != nil || check != "ok" {
		return ErrBackupCorrupted
	}
	var version int
	if err := conn.QueryRowContext(ctx, "PRAGMA snapshot.user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read backup schema version: %w", err)
	}
	if version != ExpectedSchemaVersion {
		return fmt.Errorf("%w: backup %d, database %d", ErrBackupSchema, version, ExpectedSchemaVersion)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for _, table := range []string{"records", "joins", "kv"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM main."+table); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO main."+table+" SELECT * FROM snapshot."+table); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to restore %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}

	slog.Info("Restored backup", "id", id)
	return nil
}

// Delete removes a backup and its metadata.
func (bm *BackupManager) Delete(_ context.Context, id string) error {
	if err := validateBackupID(id); err != nil {
		return err
	}
	dbPath, metaPath := bm.paths(id)
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			return ErrBackupNotFound
		}
		return fmt.Errorf("failed to remove backup: %w", err)
	}
	if err := os.Remove(metaPath); err != nil && !os.IsNotExist(err) {
		slog.Debug("failed to remove backup metadata", "path", metaPath, "error", err)
	}
	return nil
}

func (s *SQLiteStorage) rowCounts(ctx context.Context) (map[string]int, int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT list_key, COUNT(*) FROM records GROUP BY list_key`)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count records: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Error("failed to close rows", "error", closeErr)
		}
	}()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			key string
			n   int
		)
		if err := rows.Scan(&key, &n); err != nil {
			return nil, 0, fmt.Errorf("failed to scan record count: %w", err)
		}
		counts[key] = n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var joins int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM joins`).Scan(&joins); err != nil {
		return nil, 0, fmt.Errorf("failed to count joins: %w", err)
	}
	return counts, joins, nil
}

func saveBackupInfo(path string, info *BackupInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write backup metadata: %w", err)
	}
	return nil
}

func loadBackupInfo(path string) (*BackupInfo, error) {
	// #nosec G304 - path is built from the backups directory listing
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var info BackupInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
