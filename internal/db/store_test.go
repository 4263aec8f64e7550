package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wavefall/internal/game/run"
	"github.com/udisondev/wavefall/internal/testutil"
)

// exerciseRecordStore runs the behaviour every RecordStore shares.
func exerciseRecordStore(t *testing.T, store RecordStore) {
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)

	t.Run("get missing", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		require.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("best score without runs", func(t *testing.T) {
		_, ok, err := store.BestScore(ctx, "Ghost")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	recs := []RunRecord{
		sampleRecord(1, "Hero", 300, 0),
		sampleRecord(2, "Hero", 870, 5),
		sampleRecord(3, "Mage", 120, 10),
	}
	for _, rec := range recs {
		require.NoError(t, store.Save(ctx, rec))
	}

	t.Run("round trip", func(t *testing.T) {
		got, err := store.Get(ctx, "run-002")
		require.NoError(t, err)
		assert.Equal(t, recs[1], got)
	})

	t.Run("list recent newest first", func(t *testing.T) {
		got, err := store.ListRecent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "run-003", got[0].RunID)
		assert.Equal(t, "run-002", got[1].RunID)

		none, err := store.ListRecent(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("best score per character", func(t *testing.T) {
		best, ok, err := store.BestScore(ctx, "Hero")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.EqualValues(t, 870, best)
	})

	t.Run("save overwrites", func(t *testing.T) {
		updated := recs[0]
		updated.Score = 999
		require.NoError(t, store.Save(ctx, updated))

		got, err := store.Get(ctx, updated.RunID)
		require.NoError(t, err)
		assert.EqualValues(t, 999, got.Score)

		all, err := store.ListRecent(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestSQLiteStore(t *testing.T) {
	exerciseRecordStore(t, newSQLiteStore(t))
}

func TestSQLiteStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/runs.db"

	store, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sampleRecord(1, "Hero", 10, 0)))
	require.NoError(t, store.Close())

	store, err = OpenSQLite(ctx, path)
	require.NoError(t, err, "migrations are idempotent")
	defer store.Close()

	got, err := store.Get(ctx, "run-001")
	require.NoError(t, err)
	assert.EqualValues(t, 10, got.Score)
}

func TestSQLiteStore_Validation(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "  ")
	require.Error(t, err)

	var nilStore *SQLiteStore
	assert.NoError(t, nilStore.Close())

	store := newSQLiteStore(t)
	require.Error(t, store.Save(context.Background(), RunRecord{}))
}

func TestRunRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	exerciseRecordStore(t, NewRunRepository(pool))
}

func TestRecordSink_Report(t *testing.T) {
	store := newSQLiteStore(t)
	sink := NewRecordSink(store)

	res := run.Result{
		RunID:        "3f1c",
		CharacterID:  "Hero",
		ContentID:    "Content01",
		StageID:      "Stage02",
		WaveID:       "Wave003",
		WaveNumber:   3,
		Victory:      true,
		Level:        4,
		Exp:          2,
		Score:        870,
		Kills:        21,
		WavesCleared: 3,
		DamageDealt:  5100,
		Duration:     42 * time.Second,
		Rewards:      []run.Reward{},
		FinishedAt:   baseTime.Add(123456789 * time.Nanosecond),
	}
	require.NoError(t, sink.Report(context.Background(), res))

	got, err := store.Get(context.Background(), "3f1c")
	require.NoError(t, err)
	assert.True(t, got.Victory)
	assert.EqualValues(t, 870, got.Score)
	assert.Equal(t, 21, got.Kills)
	assert.Equal(t, 42*time.Second, got.Duration)
	assert.Equal(t, baseTime.Add(123*time.Millisecond), got.FinishedAt)
}

type failingStore struct{ RecordStore }

func (failingStore) Save(context.Context, RunRecord) error { return testutil.ErrSimulated }

func TestRecordSink_SaveError(t *testing.T) {
	err := NewRecordSink(failingStore{}).Report(context.Background(), run.Result{RunID: "x"})
	require.ErrorIs(t, err, testutil.ErrSimulated)
}

func TestRecordFromResult_FillsFinishedAt(t *testing.T) {
	rec := RecordFromResult(run.Result{RunID: "x"})
	assert.False(t, rec.FinishedAt.IsZero())
	assert.Equal(t, time.UTC, rec.FinishedAt.Location())
}

func TestOpenPostgres_Unreachable(t *testing.T) {
	ctx := testutil.ContextWithTimeout(t, 10*time.Second)

	pg, err := OpenPostgres(ctx, "postgres://u:p@127.0.0.1:1/runs?sslmode=disable&connect_timeout=1")
	require.Error(t, err)
	assert.Nil(t, pg)
	pg.Close()
}
