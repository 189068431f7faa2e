// Package testutil provides test helpers shared across packages: an
// in-memory store, a record builder and a manually advanced clock.
package testutil

import (
	"context"
	"testing"

	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/storage"
)

// TestDB is a migrated in-memory store scoped to one test.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// TestDBOptions configures SetupTestDBWithOptions.
type TestDBOptions struct {
	CustomSetup    func(context.Context, *storage.SQLiteStorage) error
	Records        *RecordBuilder
	SkipMigrations bool
}

// SetupTestDB creates a new in-memory test database.
// It automatically handles migrations and cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(storage.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	if opts.Records != nil {
		if err := opts.Records.Build(ctx, store); err != nil {
			t.Fatalf("failed to seed records: %v", err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestDB{Storage: store, t: t}
}

// MustList returns the records under key, oldest first, or fails the test.
func (db *TestDB) MustList(key string) []model.Submission {
	db.t.Helper()
	records, err := db.Storage.List(context.Background(), key, storage.OldestFirst)
	if err != nil {
		db.t.Fatalf("failed to list %s: %v", key, err)
	}
	return records
}

// MustCount returns the number of records under key or fails the test.
func (db *TestDB) MustCount(key string) int {
	db.t.Helper()
	n, err := db.Storage.Count(context.Background(), key)
	if err != nil {
		db.t.Fatalf("failed to count %s: %v", key, err)
	}
	return n
}
