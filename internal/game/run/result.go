package run

import (
	"context"
	"time"
)

// Reward is one item granted at the end of a run.
type Reward struct {
	ItemID string
	Count  int
}

// Result is the summary of a finished run.
type Result struct {
	RunID        string
	CharacterID  string
	ContentID    string
	StageID      string
	WaveID       string
	WaveNumber   int
	Victory      bool
	Level        int
	Exp          int
	ExpMax       int
	ExpGain      float64 // ExpGain multiplier at the end of the run
	Score        int
	Kills        int
	WavesCleared int
	DamageDealt  int
	Duration     time.Duration // simulated time
	Rewards      []Reward      // no reward table yet; always empty
	FinishedAt   time.Time
}

// ResultSink receives the result of every finished run.
type ResultSink interface {
	Report(ctx context.Context, r Result) error
}

// ResultSinkFunc adapts a function to ResultSink.
type ResultSinkFunc func(ctx context.Context, r Result) error

func (f ResultSinkFunc) Report(ctx context.Context, r Result) error { return f(ctx, r) }
