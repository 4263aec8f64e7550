package model

import (
	"math"
	"time"

	"github.com/udisondev/wavefall/internal/stats"
)

// MonsterTemplate is the immutable definition a monster is spawned from.
type MonsterTemplate struct {
	ID        string
	Stats     stats.StatBlock // MaxHP/Atk/Def before wave multipliers; Ar = melee range
	BaseScore int
	ExpReward int
}

// WaveMultipliers scale a monster's base stats at spawn time.
type WaveMultipliers struct {
	HP    float64
	Atk   float64
	Def   float64
	Score float64
}

// NoMultipliers leaves base stats unchanged.
func NoMultipliers() WaveMultipliers {
	return WaveMultipliers{HP: 1, Atk: 1, Def: 1, Score: 1}
}

// Monster is a spawned mob. Runtime stats are derived from the template once
// per spawn via ApplyWaveMultipliers, never retroactively.
type Monster struct {
	id     uint32
	tmpl   *MonsterTemplate
	pos    Vec2
	scales stats.CritScales

	maxHP     int
	hp        int
	atk       int
	def       int
	killScore int

	nextAttackAt time.Duration
}

// NewMonster creates a monster with base stats (multipliers 1).
func NewMonster(id uint32, tmpl *MonsterTemplate, pos Vec2) *Monster {
	m := &Monster{
		id:     id,
		tmpl:   tmpl,
		pos:    pos,
		scales: stats.DefaultCritScales(),
	}
	m.ApplyWaveMultipliers(NoMultipliers())
	return m
}

// ApplyWaveMultipliers recomputes runtime stats from the template and refills HP.
func (m *Monster) ApplyWaveMultipliers(mul WaveMultipliers) {
	base := m.tmpl.Stats
	m.maxHP = max(1, roundInt(float64(base.MaxHP)*mul.HP))
	m.atk = max(0, roundInt(float64(base.Atk)*mul.Atk))
	m.def = max(0, roundInt(float64(base.Def)*mul.Def))
	m.hp = m.maxHP
	m.killScore = max(0, roundInt(float64(m.tmpl.BaseScore)*mul.Score))
}

// TakeFinalDamage subtracts already-resolved damage (at least 1).
// Returns the damage applied and whether this hit killed the monster.
// Hits on a dead monster are ignored.
func (m *Monster) TakeFinalDamage(d int) (dealt int, died bool) {
	if m.hp <= 0 {
		return 0, false
	}
	dealt = max(1, d)
	m.hp -= dealt
	return dealt, m.hp <= 0
}

func (m *Monster) ID() uint32                 { return m.id }
func (m *Monster) TemplateID() string         { return m.tmpl.ID }
func (m *Monster) Template() *MonsterTemplate { return m.tmpl }
func (m *Monster) Position() Vec2             { return m.pos }
func (m *Monster) SetPosition(v Vec2)         { m.pos = v }
func (m *Monster) HP() int                    { return m.hp }
func (m *Monster) MaxHP() int                 { return m.maxHP }
func (m *Monster) IsDead() bool               { return m.hp <= 0 }
func (m *Monster) KillScore() int             { return m.killScore }
func (m *Monster) ExpReward() int             { return max(0, m.tmpl.ExpReward) }
func (m *Monster) Speed() float64             { return math.Max(0, m.tmpl.Stats.Spd) }
func (m *Monster) AttackRange() float64       { return math.Max(0, m.tmpl.Stats.Ar) }

// AttackInterval returns the time between melee swings (1/As, 1s when As is unset).
func (m *Monster) AttackInterval() time.Duration {
	secs := m.tmpl.Stats.AttackInterval()
	if secs <= 0 {
		return time.Second
	}
	return Seconds(secs)
}

// NextAttackAt returns the earliest time the next swing may start.
func (m *Monster) NextAttackAt() time.Duration     { return m.nextAttackAt }
func (m *Monster) SetNextAttackAt(t time.Duration) { m.nextAttackAt = t }

// UnitStats.
func (m *Monster) Atk() int { return m.atk }
func (m *Monster) Def() int { return m.def }

func (m *Monster) CritChance01() float64 {
	return stats.Clamp01(float64(m.tmpl.Stats.Crp) * m.scales.CrpToChance)
}

func (m *Monster) ExtraCritBonus() float64 {
	return math.Max(0, float64(m.tmpl.Stats.Crd)*m.scales.CrdToBonus)
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
