package ai

import (
	"time"

	"github.com/udisondev/wavefall/internal/model"
)

// Intention is what a controller is currently trying to do.
type Intention int8

const (
	IntentionIdle Intention = iota
	IntentionChase
	IntentionAttack
)

func (i Intention) String() string {
	switch i {
	case IntentionIdle:
		return "IDLE"
	case IntentionChase:
		return "CHASE"
	case IntentionAttack:
		return "ATTACK"
	default:
		return "UNKNOWN"
	}
}

// Target is the player as seen by monster AI.
type Target interface {
	model.UnitStats
	Position() model.Vec2
	IsDead() bool
	TakeDamage(now time.Duration, amount int) (dealt int, died bool)
}

// PlayerHit is one monster swing that landed on the target.
type PlayerHit struct {
	MonsterID uint32
	Damage    int
	IsCrit    bool
	Died      bool
}

// Controller drives one monster per simulation tick.
type Controller interface {
	MonsterID() uint32
	CurrentIntention() Intention

	// Tick advances the controller by dt at simulation time now.
	// Returns a hit when the monster landed a swing this tick.
	Tick(now, dt time.Duration, target Target) (PlayerHit, bool)
}
