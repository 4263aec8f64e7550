package ai

import (
	"log/slog"
	"math"
	"time"

	"github.com/udisondev/wavefall/internal/game/combat"
	"github.com/udisondev/wavefall/internal/model"
)

// MeleeConfig tunes monster chase and melee.
type MeleeConfig struct {
	RangeScale  float64 // Ar * scale = melee range
	MinRange    float64
	MaxRange    float64
	MinInterval time.Duration
	MinSpeed    float64
	Params      combat.Params
}

// DefaultMeleeConfig returns range clamp 0.25..50, swing floor 50ms and the
// default damage params.
func DefaultMeleeConfig() MeleeConfig {
	return MeleeConfig{
		RangeScale:  1,
		MinRange:    0.25,
		MaxRange:    50,
		MinInterval: 50 * time.Millisecond,
		MinSpeed:    0.05,
		Params:      combat.DefaultParams(),
	}
}

// MonsterAI chases the target at the monster's Spd and swings with the damage
// formula whenever the target is in melee range and the swing timer is ready.
// The first swing is available immediately.
type MonsterAI struct {
	monster   *model.Monster
	cfg       MeleeConfig
	rng       combat.Roller
	intention Intention
}

// NewMonsterAI creates a controller for m.
func NewMonsterAI(m *model.Monster, cfg MeleeConfig, rng combat.Roller) *MonsterAI {
	return &MonsterAI{
		monster: m,
		cfg:     cfg,
		rng:     rng,
	}
}

func (ai *MonsterAI) MonsterID() uint32            { return ai.monster.ID() }
func (ai *MonsterAI) CurrentIntention() Intention { return ai.intention }

// Range returns the melee range.
func (ai *MonsterAI) Range() float64 {
	r := ai.monster.AttackRange() * ai.cfg.RangeScale
	return math.Min(ai.cfg.MaxRange, math.Max(ai.cfg.MinRange, r))
}

// Interval returns the time between swings.
func (ai *MonsterAI) Interval() time.Duration {
	return max(ai.cfg.MinInterval, ai.monster.AttackInterval())
}

// Tick implements Controller.
func (ai *MonsterAI) Tick(now, dt time.Duration, target Target) (PlayerHit, bool) {
	m := ai.monster
	if m.IsDead() || target == nil || target.IsDead() {
		ai.setIntention(IntentionIdle)
		return PlayerHit{}, false
	}

	reach := ai.Range()
	toTarget := target.Position().Sub(m.Position())
	if toTarget.LenSq() > reach*reach {
		ai.setIntention(IntentionChase)
		ai.move(toTarget, reach, dt)
		return PlayerHit{}, false
	}

	ai.setIntention(IntentionAttack)
	if now < m.NextAttackAt() {
		return PlayerHit{}, false
	}

	res := combat.Compute(m, target, ai.cfg.Params, ai.rng, nil)
	dealt, died := target.TakeDamage(now, res.Damage)
	m.SetNextAttackAt(now + ai.Interval())

	if dealt == 0 {
		return PlayerHit{}, false
	}
	if IsDebugEnabled() {
		slog.Debug("monster hit player",
			"monsterID", m.ID(),
			"damage", dealt,
			"crit", res.IsCrit,
			"died", died)
	}
	return PlayerHit{MonsterID: m.ID(), Damage: dealt, IsCrit: res.IsCrit, Died: died}, true
}

// move steps toward the target without walking into it.
func (ai *MonsterAI) move(toTarget model.Vec2, stopAt float64, dt time.Duration) {
	speed := ai.monster.Speed()
	if speed <= 0 || dt <= 0 {
		return
	}
	speed = math.Max(ai.cfg.MinSpeed, speed)

	// stops at 90% of the melee range
	dist := toTarget.Len()
	step := math.Min(speed*dt.Seconds(), math.Max(0, dist-stopAt*0.9))
	if step <= 0 {
		return
	}
	ai.monster.SetPosition(ai.monster.Position().Add(toTarget.Normalized().Scale(step)))
}

func (ai *MonsterAI) setIntention(i Intention) {
	if ai.intention == i {
		return
	}
	if IsDebugEnabled() {
		slog.Debug("AI intention changed",
			"monsterID", ai.monster.ID(),
			"from", ai.intention,
			"to", i)
	}
	ai.intention = i
}
