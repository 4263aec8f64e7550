package run

// Score accumulates the run score: kill scores as monsters die and the
// clear score of every cleared wave.
type Score struct {
	kills      int
	killScore  int
	clearScore int
	waves      int
}

// AddKill records a kill worth score points.
func (s *Score) AddKill(score int) {
	s.kills++
	s.killScore += max(0, score)
}

// AddWaveClear records a cleared wave worth score points.
func (s *Score) AddWaveClear(score int) {
	s.waves++
	s.clearScore += max(0, score)
}

func (s *Score) Total() int        { return s.killScore + s.clearScore }
func (s *Score) Kills() int        { return s.kills }
func (s *Score) WavesCleared() int { return s.waves }
