package combat

import (
	"fmt"
	"log/slog"
	"math"
)

// unreachableExp is the need-exp used when the table has no row for a level.
const unreachableExp = math.MaxInt32 / 4

// ExpTable returns the exp needed to advance from level to level+1.
type ExpTable interface {
	NeedExp(level int) (int, bool)
}

// Leveler is the part of the player that reacts to level changes.
type Leveler interface {
	Level() int
	ApplyLevel(level int, refill bool) error
}

// ExpMultiplier is the additive ExpGain source (1 + Σ%/100).
type ExpMultiplier interface {
	ExpGainMultiplier() float64
}

// SelectionQueue receives one skill selection per level gained.
type SelectionQueue interface {
	RequestSelections(n int)
}

// Experience tracks the player's exp bar and drives level-ups.
//
// Not safe for concurrent use; owned by the run tick.
type Experience struct {
	table      ExpTable
	player     Leveler
	multiplier ExpMultiplier
	selections SelectionQueue
	refill     bool

	level  int
	cur    int
	need   int
	gained int
}

// NewExperience starts the bar at the player's current level with 0 exp.
// refill restores HP to max on level-up.
func NewExperience(table ExpTable, player Leveler, refill bool) *Experience {
	e := &Experience{
		table:  table,
		player: player,
		refill: refill,
		level:  max(1, player.Level()),
	}
	e.need = e.needFor(e.level)
	return e
}

// SetMultiplier installs the ExpGain source. nil means ×1.
func (e *Experience) SetMultiplier(m ExpMultiplier) { e.multiplier = m }

// SetSelectionQueue installs the receiver of level-up selections.
func (e *Experience) SetSelectionQueue(q SelectionQueue) { e.selections = q }

func (e *Experience) Level() int  { return e.level }
func (e *Experience) Exp() int    { return e.cur }
func (e *Experience) Need() int   { return e.need }
func (e *Experience) Gained() int { return e.gained }

// Multiplier returns the current ExpGain multiplier (never negative).
func (e *Experience) Multiplier() float64 {
	if e.multiplier == nil {
		return 1
	}
	return math.Max(0, e.multiplier.ExpGainMultiplier())
}

// Add grants amount exp after the ExpGain multiplier and returns the number
// of levels gained. The stat sheet is re-applied once after all level-ups.
func (e *Experience) Add(amount int) (int, error) {
	if amount <= 0 {
		return 0, nil
	}

	amount = int(math.Round(float64(amount) * e.Multiplier()))
	if amount <= 0 {
		return 0, nil
	}
	e.cur += amount
	e.gained += amount

	levelUps := 0
	for e.cur >= e.need {
		e.cur -= e.need
		e.level++
		levelUps++
		e.need = e.needFor(e.level)
	}
	if levelUps == 0 {
		return 0, nil
	}

	if err := e.player.ApplyLevel(e.level, e.refill); err != nil {
		return levelUps, fmt.Errorf("applying level %d: %w", e.level, err)
	}

	slog.Info("level up",
		"level", e.level,
		"gained", levelUps,
		"exp", e.cur,
		"need", e.need)

	if e.selections != nil {
		e.selections.RequestSelections(levelUps)
	}
	return levelUps, nil
}

func (e *Experience) needFor(level int) int {
	need, ok := e.table.NeedExp(level)
	if !ok {
		return unreachableExp
	}
	return max(1, need)
}
