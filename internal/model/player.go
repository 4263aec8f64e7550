package model

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/udisondev/wavefall/internal/stats"
)

// Player is the run's controlled combatant: a stat sheet plus mutable HP,
// position and movement lock.
//
// Not safe for concurrent use; mutated from the run tick only.
type Player struct {
	id     uint32
	sheet  *stats.Sheet
	pos    Vec2
	facing Vec2

	hp    int
	maxHP int

	keepHPRatio     bool
	invincibleFor   time.Duration
	invincibleUntil time.Duration
	movementLocked  bool
}

// NewPlayer creates a player at full HP.
func NewPlayer(id uint32, sheet *stats.Sheet, pos Vec2) *Player {
	maxHP := max(1, sheet.Final().MaxHP)
	return &Player{
		id:          id,
		sheet:       sheet,
		pos:         pos,
		facing:      Vec2{Z: 1},
		hp:          maxHP,
		maxHP:       maxHP,
		keepHPRatio: true,
	}
}

// SetKeepHPRatio toggles whether a max HP change keeps the current HP ratio
// (true) or only clamps HP into the new range (false).
func (p *Player) SetKeepHPRatio(keep bool) { p.keepHPRatio = keep }

// SetInvincibleAfterHit sets the i-frame window opened by every non-lethal hit.
func (p *Player) SetInvincibleAfterHit(d time.Duration) { p.invincibleFor = max(0, d) }

func (p *Player) ID() uint32          { return p.id }
func (p *Player) CharID() string      { return p.sheet.CharID() }
func (p *Player) Sheet() *stats.Sheet { return p.sheet }
func (p *Player) Level() int          { return p.sheet.Level() }
func (p *Player) Position() Vec2      { return p.pos }
func (p *Player) SetPosition(v Vec2)  { p.pos = v }
func (p *Player) Facing() Vec2        { return p.facing }

// SetFacing stores a normalized facing direction. Zero input keeps the old one.
func (p *Player) SetFacing(dir Vec2) {
	if dir.IsZero() {
		return
	}
	p.facing = dir.Normalized()
}

// UnitStats.
func (p *Player) Atk() int                { return p.sheet.Atk() }
func (p *Player) Def() int                { return p.sheet.Def() }
func (p *Player) CritChance01() float64   { return p.sheet.CritChance01() }
func (p *Player) ExtraCritBonus() float64 { return p.sheet.ExtraCritBonus() }

func (p *Player) AttackRange() float64      { return math.Max(0, p.sheet.Final().Ar) }
func (p *Player) AttacksPerSecond() float64 { return p.sheet.Final().As }
func (p *Player) MoveSpeed() float64        { return math.Max(0, p.sheet.Final().Spd) }

func (p *Player) HP() int      { return p.hp }
func (p *Player) MaxHP() int   { return p.maxHP }
func (p *Player) IsDead() bool { return p.hp <= 0 }

// HPRatio returns hp/maxHP in [0,1].
func (p *Player) HPRatio() float64 {
	if p.maxHP <= 0 {
		return 0
	}
	return stats.Clamp01(float64(p.hp) / float64(p.maxHP))
}

// LockMovement blocks regular movement input (used while casting).
func (p *Player) LockMovement()        { p.movementLocked = true }
func (p *Player) UnlockMovement()      { p.movementLocked = false }
func (p *Player) MovementLocked() bool { return p.movementLocked }

// Heal restores up to amount HP and returns how much was actually restored.
// Dead players cannot be healed.
func (p *Player) Heal(amount int) int {
	if p.IsDead() || amount <= 0 {
		return 0
	}
	before := p.hp
	p.hp = min(p.maxHP, p.hp+amount)
	return p.hp - before
}

// TakeDamage applies at least 1 damage unless the player is dead or inside
// the i-frame window. Returns the damage applied and whether this hit killed.
func (p *Player) TakeDamage(now time.Duration, amount int) (dealt int, died bool) {
	if p.IsDead() {
		return 0, false
	}
	if now < p.invincibleUntil {
		return 0, false
	}

	dealt = max(1, amount)
	p.hp = max(0, p.hp-dealt)

	if p.hp > 0 {
		p.invincibleUntil = now + p.invincibleFor
		return dealt, false
	}
	return dealt, true
}

// SetPercentBuff records a percent buff on the sheet and syncs max HP.
func (p *Player) SetPercentBuff(stat stats.ReferenceStat, sourceID string, percent float64) {
	p.sheet.SetPercentBuff(stat, sourceID, percent)
	p.SyncMaxHP()
}

// ApplyLevel recomputes the sheet for level. refill restores HP to the new max.
func (p *Player) ApplyLevel(level int, refill bool) error {
	if err := p.sheet.ApplyLevel(level); err != nil {
		return fmt.Errorf("player %d: %w", p.id, err)
	}
	p.SyncMaxHP()
	if refill && !p.IsDead() {
		p.hp = p.maxHP
	}
	return nil
}

// SyncMaxHP pulls max HP from the sheet. HP keeps its ratio when enabled,
// otherwise it is clamped into range. A living player never drops to 0 here.
func (p *Player) SyncMaxHP() {
	newMax := max(1, p.sheet.Final().MaxHP)
	if newMax == p.maxHP {
		return
	}

	floor := 0
	if p.hp > 0 {
		floor = 1
	}
	if p.keepHPRatio {
		ratio := 1.0
		if p.maxHP > 0 {
			ratio = float64(p.hp) / float64(p.maxHP)
		}
		p.hp = min(newMax, max(floor, int(math.Round(float64(newMax)*ratio))))
	} else {
		p.hp = min(newMax, max(floor, p.hp))
	}

	slog.Debug("player max hp synced",
		"playerID", p.id,
		"oldMax", p.maxHP,
		"newMax", newMax,
		"hp", p.hp)
	p.maxHP = newMax
}
