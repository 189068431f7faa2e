package storage

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safarshare/safar/internal/common"
	"github.com/safarshare/safar/internal/model"
)

// createTestStorage opens a migrated in-memory store.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(MemoryPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testSubmission(t *testing.T, trackingID string, ts time.Time) *model.Submission {
	t.Helper()
	price := model.NewPriceBreakdown("pkr",
		model.Charge{Name: "base", Label: "Base price", Amount: 400},
		model.Charge{Name: "platform_fee", Label: "Platform fee", Amount: 60},
	)
	sub, err := model.NewSubmission("parcel", trackingID, model.StatusPending, ts,
		model.ParcelRequest{ParcelType: "documents", PickupCity: "kandiaro", DeliveryCity: "karachi", Weight: 1}, &price)
	require.NoError(t, err)
	return sub
}

func TestNewSQLiteStorage_FileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "safar.db")
	store, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Migrate(context.Background()))
	assert.Equal(t, path, store.Path())
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage(" ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestMigrate_Idempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))
	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestAppendAndList(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	base := time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC)

	first := testSubmission(t, "SRC-10001", base)
	second := testSubmission(t, "SRC-10002", base.Add(time.Minute))
	require.NoError(t, store.Append(ctx, KeyParcelRequests, first))
	require.NoError(t, store.Append(ctx, KeyParcelRequests, second))
	assert.NotEmpty(t, first.ID)

	oldest, err := store.List(ctx, KeyParcelRequests, OldestFirst)
	require.NoError(t, err)
	require.Len(t, oldest, 2)
	if diff := cmp.Diff(*first, oldest[0]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}

	newest, err := store.List(ctx, KeyParcelRequests, NewestFirst)
	require.NoError(t, err)
	assert.Equal(t, "SRC-10002", newest[0].TrackingID)

	n, err := store.Count(ctx, KeyParcelRequests)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	other, err := store.List(ctx, KeyDocumentRequests, OldestFirst)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestAppend_Rejects(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	sub := testSubmission(t, "SRC-10001", time.Now())

	assert.ErrorIs(t, store.Append(ctx, "bogusKey", sub), ErrUnknownKey)
	assert.ErrorIs(t, store.Append(ctx, KeyParcelRequests, nil), ErrNilParameter)

	noID := *sub
	noID.TrackingID = ""
	assert.ErrorIs(t, store.Append(ctx, KeyParcelRequests, &noID), ErrInvalidRecord)

	badPrice := *sub
	stale := *sub.Price
	stale.Total = 1
	badPrice.Price = &stale
	assert.ErrorIs(t, store.Append(ctx, KeyParcelRequests, &badPrice), ErrInvalidRecord)

	n, err := store.Count(ctx, KeyParcelRequests)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAppendWithLastID(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.GetValue(ctx, KeyLastParcelID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, store.AppendWithLastID(ctx, KeyParcelRequests, testSubmission(t, "SRC-11111", time.Now()), KeyLastParcelID))
	require.NoError(t, store.AppendWithLastID(ctx, KeyParcelRequests, testSubmission(t, "SRC-22222", time.Now()), KeyLastParcelID))

	last, err := store.GetValue(ctx, KeyLastParcelID)
	require.NoError(t, err)
	assert.Equal(t, "SRC-22222", last)

	found, err := store.FindByTrackingID(ctx, "SRC-11111")
	require.NoError(t, err)
	assert.Equal(t, "parcel", found.Flow)

	_, err = store.FindByTrackingID(ctx, "SRC-00000")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestClear(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	msg, err := model.NewSubmission("contact", "MSG-1", model.StatusReceived, time.Now(),
		model.ContactMessage{FullName: "Ali", ContactInfo: "ali@example.com", Subject: "general", Message: "Hello there, team!"}, nil)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, KeyContactMessages, msg))
	require.NoError(t, store.Append(ctx, KeyParcelRequests, testSubmission(t, "SRC-1", time.Now())))

	removed, err := store.Clear(ctx, KeyContactMessages)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	msgs, err := store.List(ctx, KeyContactMessages, NewestFirst)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	n, err := store.Count(ctx, KeyParcelRequests)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestList_CorruptedPayload(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, KeyParcelRequests, testSubmission(t, "SRC-1", time.Now())))
	_, err := store.db.ExecContext(ctx, `UPDATE records SET payload = '{' WHERE tracking_id = 'SRC-1'`)
	require.NoError(t, err)

	_, err = store.List(ctx, KeyParcelRequests, OldestFirst)
	assert.ErrorIs(t, err, common.ErrDatabaseCorrupted)

	_, err = store.FindByTrackingID(ctx, "SRC-1")
	assert.ErrorIs(t, err, common.ErrDatabaseCorrupted)
}

func TestJoins(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	at := time.Date(2024, 12, 15, 8, 0, 0, 0, time.UTC)

	entries := []*model.JoinEntry{
		{Kind: model.KindCommute, EntryID: 1, EntryName: "Ahmed Raza", Price: 2500, JoinedAt: at},
		{Kind: model.KindCommute, EntryID: 1, EntryName: "Ahmed Raza", Price: 2500, JoinedAt: at.Add(time.Hour)},
		{Kind: model.KindCommute, EntryID: 3, EntryName: "Bilal Shah", Price: 2200, JoinedAt: at.Add(2 * time.Hour)},
	}
	for _, e := range entries {
		require.NoError(t, store.AppendJoin(ctx, KeyJoinedCommutes, e))
	}

	got, err := store.ListJoins(ctx, KeyJoinedCommutes)
	require.NoError(t, err)
	require.Len(t, got, 3)
	if diff := cmp.Diff(*entries[2], got[2]); diff != "" {
		t.Errorf("join mismatch (-want +got):\n%s", diff)
	}

	counts, err := store.JoinCounts(ctx, KeyJoinedCommutes, model.KindCommute)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 2, 3: 1}, counts)

	assert.ErrorIs(t, store.AppendJoin(ctx, KeyParcelRequests, entries[0]), ErrUnknownKey)
	assert.ErrorIs(t, store.AppendJoin(ctx, KeyJoinedCommutes, &model.JoinEntry{EntryName: "x", JoinedAt: at}), ErrInvalidJoin)
}

func TestExport(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	empty, err := store.Export(ctx, KeyShoppingRequests)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(empty))

	require.NoError(t, store.Append(ctx, KeyParcelRequests, testSubmission(t, "SRC-12345", time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC))))
	out, err := store.Export(ctx, KeyParcelRequests)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "SRC-12345", decoded[0]["trackingId"])
	assert.Equal(t, "pending", decoded[0]["status"])
	assert.Equal(t, "2024-12-15T00:00:00Z", decoded[0]["timestamp"])

	joins, err := store.Export(ctx, KeyJoinedCommutes)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(joins))

	_, err = store.Export(ctx, "nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestSetValueOverwrites(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SetValue(ctx, KeyLastDocumentID, "DOC-1"))
	require.NoError(t, store.SetValue(ctx, KeyLastDocumentID, "DOC-2"))
	v, err := store.GetValue(ctx, KeyLastDocumentID)
	require.NoError(t, err)
	assert.Equal(t, "DOC-2", v)

	assert.ErrorIs(t, store.SetValue(ctx, "", "x"), ErrEmptyString)
}
