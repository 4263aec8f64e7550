package model

import "time"

// Seconds converts sheet seconds to a Duration. Negative values become 0.
func Seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

// RunState is the mutable progress of one run. It is owned by the run
// session and mutated from the tick only (wave scheduler and router).
type RunState struct {
	ContentID   string
	ContentStep int
	StageStep   int
	StageID     string
	WaveID      string

	AliveMonsters int
	SpawningEnded bool
	PendingGroups int
	Advancing     bool

	Ended   bool
	Victory bool

	Score        int
	Kills        int
	WavesCleared int
}

// NewRunState creates run progress positioned at content step 1, stage step 1.
func NewRunState(contentID string) *RunState {
	return &RunState{
		ContentID:   contentID,
		ContentStep: 1,
		StageStep:   1,
	}
}

// SeekSteps positions routing at the given content and stage steps.
// Non-positive steps become 1.
func (s *RunState) SeekSteps(contentStep, stageStep int) {
	s.ContentStep = max(1, contentStep)
	s.StageStep = max(1, stageStep)
}

// ResetWave clears per-wave bookkeeping before a wave starts.
func (s *RunState) ResetWave(waveID string) {
	s.WaveID = waveID
	s.AliveMonsters = 0
	s.SpawningEnded = false
	s.PendingGroups = 0
	s.Advancing = false
}

// Cleared reports whether the current wave is cleared.
func (s *RunState) Cleared() bool {
	return s.SpawningEnded && s.AliveMonsters == 0
}

// End marks the run terminal. Returns false when it was already ended.
func (s *RunState) End(victory bool) bool {
	if s.Ended {
		return false
	}
	s.Ended = true
	s.Victory = victory
	return true
}
