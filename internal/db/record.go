package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/udisondev/wavefall/internal/game/run"
)

var ErrRecordNotFound = errors.New("run record not found")

// RunRecord is one finished run as stored.
type RunRecord struct {
	RunID        string
	CharacterID  string
	ContentID    string
	StageID      string
	WaveID       string
	WaveNumber   int
	Victory      bool
	Level        int
	Exp          int
	Score        int64
	Kills        int
	WavesCleared int
	DamageDealt  int64
	Duration     time.Duration
	FinishedAt   time.Time
}

// RecordFromResult converts a run result into a record. A zero FinishedAt is
// replaced with the current time.
func RecordFromResult(r run.Result) RunRecord {
	finished := r.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}
	return RunRecord{
		RunID:        r.RunID,
		CharacterID:  r.CharacterID,
		ContentID:    r.ContentID,
		StageID:      r.StageID,
		WaveID:       r.WaveID,
		WaveNumber:   r.WaveNumber,
		Victory:      r.Victory,
		Level:        r.Level,
		Exp:          r.Exp,
		Score:        int64(r.Score),
		Kills:        r.Kills,
		WavesCleared: r.WavesCleared,
		DamageDealt:  int64(r.DamageDealt),
		Duration:     r.Duration,
		FinishedAt:   finished.UTC().Truncate(time.Millisecond),
	}
}

// RecordStore persists run records. RunRepository and SQLiteStore implement it.
type RecordStore interface {
	Save(ctx context.Context, rec RunRecord) error
	Get(ctx context.Context, runID string) (RunRecord, error)
	ListRecent(ctx context.Context, limit int) ([]RunRecord, error)
	BestScore(ctx context.Context, characterID string) (int64, bool, error)
}

// RecordSink stores every reported run result.
type RecordSink struct {
	store RecordStore
}

var _ run.ResultSink = (*RecordSink)(nil)

// NewRecordSink creates a sink backed by store.
func NewRecordSink(store RecordStore) *RecordSink {
	return &RecordSink{store: store}
}

// Report saves the result as a run record.
func (s *RecordSink) Report(ctx context.Context, r run.Result) error {
	if err := s.store.Save(ctx, RecordFromResult(r)); err != nil {
		return fmt.Errorf("saving run %s: %w", r.RunID, err)
	}
	return nil
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
