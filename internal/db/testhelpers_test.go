package db

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newSQLiteStore opens a store in a per-test temp directory.
func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// sampleRecord builds a record finished minutesAfter baseTime.
func sampleRecord(n int, charID string, score int64, minutesAfter int) RunRecord {
	return RunRecord{
		RunID:        fmt.Sprintf("run-%03d", n),
		CharacterID:  charID,
		ContentID:    "Content01",
		StageID:      "Stage01",
		WaveID:       "Wave002",
		WaveNumber:   2,
		Victory:      n%2 == 0,
		Level:        3,
		Exp:          7,
		Score:        score,
		Kills:        12,
		WavesCleared: 1,
		DamageDealt:  4200,
		Duration:     95*time.Second + 250*time.Millisecond,
		FinishedAt:   baseTime.Add(time.Duration(minutesAfter) * time.Minute),
	}
}
