package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/daily-dollar/internal/models"
	"fjacquet/daily-dollar/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *models.Snapshot {
	snap := models.DefaultSnapshot()
	snap.BeginningBalance = models.MustParseAmount("250.75")
	snap.LastPeriodStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap.Transactions = []models.Transaction{
		models.NewTransaction(models.MustParseAmount("12.50"), time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), "Lunch", snap.Categories[1].ID),
	}
	snap.ForecastBudgets[snap.Categories[1].ID] = models.MustParseAmount("450")
	return snap
}

func assertSameSnapshot(t *testing.T, want, got *models.Snapshot) {
	t.Helper()
	require.NotNil(t, got)
	assert.True(t, want.BeginningBalance.Equal(got.BeginningBalance))
	assert.True(t, want.PaycheckAmount.Equal(got.PaycheckAmount))
	assert.Equal(t, want.PaycheckDay, got.PaycheckDay)
	assert.Equal(t, want.LastPeriodStart, got.LastPeriodStart)
	require.Len(t, got.Categories, len(want.Categories))
	assert.Equal(t, want.Categories[0].ID, got.Categories[0].ID)
	require.Len(t, got.Transactions, len(want.Transactions))
	assert.Equal(t, want.Transactions[0].ID, got.Transactions[0].ID)
	assert.Equal(t, want.Transactions[0].Date, got.Transactions[0].Date)
	require.Len(t, got.ForecastBudgets, len(want.ForecastBudgets))
}

func TestPersistError(t *testing.T) {
	cause := errors.New("disk full")
	err := saveError(BackendFile, cause)

	var perr *PersistError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "save", perr.Op)
	assert.Equal(t, BackendFile, perr.Backend)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "save snapshot (file backend): disk full", err.Error())
}

func TestEncodeSnapshot_Document(t *testing.T) {
	data, err := EncodeSnapshot(sampleSnapshot())
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{"beginningBalance", "paycheckAmount", "paycheckDay", "categories",
		"transactions", "expectedExpenses", "expectedIncome", "lastPeriodStart", "forecastBudgets"} {
		assert.Contains(t, doc, key)
	}
	assert.Equal(t, "2026-01-01", doc["lastPeriodStart"])

	_, err = EncodeSnapshot(nil)
	assert.Error(t, err)
}

func TestDecodeSnapshot_Invalid(t *testing.T) {
	_, err := DecodeSnapshot([]byte("{not json"))
	assert.Error(t, err)

	_, err = DecodeSnapshot([]byte(`{"paycheckDay": 40}`))
	var verr *parsererror.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "budget.json")
	s := NewFileStore(path, true)
	defer func() { _ = s.Close() }()

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap, "nothing stored yet")

	original := sampleSnapshot()
	require.NoError(t, s.Save(ctx, original))
	_, err = os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(err), "no backup before the first overwrite")

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assertSameSnapshot(t, original, loaded)

	loaded.BeginningBalance = models.MustParseAmount("1")
	require.NoError(t, s.Save(ctx, loaded))

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	previous, err := DecodeSnapshot(backup)
	require.NoError(t, err)
	assert.True(t, previous.BeginningBalance.Equal(original.BeginningBalance))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0600))

	_, err := NewFileStore(path, false).Load(context.Background())
	var perr *PersistError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "load", perr.Op)
}

func TestFileStore_SaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	s := NewFileStore(filepath.Join(blocker, "budget.json"), false)
	err := s.Save(context.Background(), sampleSnapshot())
	var perr *PersistError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "save", perr.Op)
}

func TestFileStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewFileStore(filepath.Join(t.TempDir(), "b.json"), false).Save(ctx, sampleSnapshot())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "budget.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)

	original := sampleSnapshot()
	require.NoError(t, s.Save(ctx, original))
	original.PaycheckDay = 15
	require.NoError(t, s.Save(ctx, original), "second save updates the same key")
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	assertSameSnapshot(t, original, loaded)
	assert.Equal(t, 15, loaded.PaycheckDay)
	assert.Equal(t, path, reopened.Path())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)

	original := sampleSnapshot()
	require.NoError(t, s.Save(ctx, original))
	assert.Equal(t, 1, s.Saves())
	assert.NotEmpty(t, s.Document())

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assertSameSnapshot(t, original, loaded)

	loaded.BeginningBalance = models.MustParseAmount("9")
	again, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, again.BeginningBalance.Equal(original.BeginningBalance), "loads are independent copies")
}

func TestSnapshotStoreImplementations(t *testing.T) {
	var _ SnapshotStore = (*FileStore)(nil)
	var _ SnapshotStore = (*SQLiteStore)(nil)
	var _ SnapshotStore = (*MemoryStore)(nil)
}
