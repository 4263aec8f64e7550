package skill

import (
	"log/slog"
	"math"
	"time"

	"github.com/udisondev/wavefall/internal/game/combat"
	"github.com/udisondev/wavefall/internal/model"
	"github.com/udisondev/wavefall/internal/world"
)

// HUD ids used when a proc was enabled without a skill id.
const (
	transferHUDID = "SkillTransfer"
	healHUDID     = "SkillHeal"
)

// ProcConfig tunes the passive procs.
type ProcConfig struct {
	TransferSearchRadius float64
	TransferMaxTargets   int
	TransferMinCooldown  time.Duration
	HealMinCooldown      time.Duration
	HealThreshold        float64 // hp/maxHP at or below which the conditional heal fires
	OnlyBasicAttack      bool    // lifesteal and transfer react to basic attacks only
}

// DefaultProcConfig returns radius 8, 5 hops, threshold 0.3, basic-attack only.
func DefaultProcConfig() ProcConfig {
	return ProcConfig{
		TransferSearchRadius: 8,
		TransferMaxTargets:   5,
		TransferMinCooldown:  10 * time.Millisecond,
		HealMinCooldown:      100 * time.Millisecond,
		HealThreshold:        0.3,
		OnlyBasicAttack:      true,
	}
}

// Healer is the player as seen by the procs.
type Healer interface {
	HP() int
	MaxHP() int
	IsDead() bool
	Heal(amount int) int
}

type transferProc struct {
	enabled bool
	skillID string
	percent float64
	cd      cooldown
}

type healProc struct {
	enabled   bool
	skillID   string
	percent   float64
	threshold float64
	cd        cooldown
}

// ProcEngine runs the cooldown- and condition-gated passives: lifesteal,
// the transfer chain and the low-HP heal.
//
// Not safe for concurrent use; owned by the run tick.
type ProcEngine struct {
	cfg    ProcConfig
	player Healer
	world  *world.World

	lifeStealEnabled bool
	lifeStealPercent float64

	transfer transferProc
	heal     healProc
}

// NewProcEngine creates an engine with every proc disabled.
func NewProcEngine(cfg ProcConfig, player Healer, w *world.World) *ProcEngine {
	return &ProcEngine{cfg: cfg, player: player, world: w}
}

// EnableLifeSteal turns lifesteal on with percent of basic-attack damage.
func (e *ProcEngine) EnableLifeSteal(percent float64) {
	e.lifeStealEnabled = true
	e.lifeStealPercent = percent
}

// EnableTransfer turns the transfer chain on. Re-enabling keeps the running
// cooldown.
func (e *ProcEngine) EnableTransfer(skillID string, percent float64, cooldownSecs float64) {
	e.transfer.enabled = true
	e.transfer.skillID = skillID
	e.transfer.percent = percent
	e.transfer.cd.duration = max(e.cfg.TransferMinCooldown, model.Seconds(cooldownSecs))
}

// EnableConditionalHeal turns the low-HP heal on; it is ready immediately.
// percent is clamped to 0..100.
func (e *ProcEngine) EnableConditionalHeal(skillID string, percent, cooldownSecs float64, now time.Duration) {
	e.heal.enabled = true
	e.heal.skillID = skillID
	e.heal.percent = math.Min(100, math.Max(0, percent))
	e.heal.threshold = e.cfg.HealThreshold
	e.heal.cd.duration = max(e.cfg.HealMinCooldown, model.Seconds(cooldownSecs))
	e.heal.cd.readyAt = now
}

func (e *ProcEngine) LifeStealPercent() float64 { return e.lifeStealPercent }
func (e *ProcEngine) TransferEnabled() bool     { return e.transfer.enabled }
func (e *ProcEngine) HealEnabled() bool         { return e.heal.enabled }

// OnDealt reacts to damage the player dealt. It heals for lifesteal and
// returns the transfer hops it caused. Transfer hops never re-enter OnDealt.
func (e *ProcEngine) OnDealt(now time.Duration, hit combat.Hit) []combat.Hit {
	if hit.Damage <= 0 {
		return nil
	}
	if e.cfg.OnlyBasicAttack && hit.Source != model.SourceBasicAttack {
		return nil
	}

	if e.lifeStealEnabled && e.lifeStealPercent > 0 {
		if amount := percentOf(hit.Damage, e.lifeStealPercent); amount > 0 {
			e.player.Heal(amount)
		}
	}

	if e.transfer.enabled && hit.Target != nil {
		return e.runTransfer(now, hit)
	}
	return nil
}

// runTransfer arms the cooldown, then hops from the hit target to the nearest
// living unvisited monster within the search radius of the current hop.
func (e *ProcEngine) runTransfer(now time.Duration, hit combat.Hit) []combat.Hit {
	if !e.transfer.cd.ready(now) {
		return nil
	}
	e.transfer.cd.arm(now)

	dmg := max(1, percentOf(hit.Damage, e.transfer.percent))
	visited := map[uint32]struct{}{hit.Target.ID(): {}}
	cur := hit.Target.Position()

	var hops []combat.Hit
	for range e.cfg.TransferMaxTargets {
		next, ok := e.world.Nearest(cur, e.cfg.TransferSearchRadius, visited)
		if !ok {
			break
		}
		visited[next.ID()] = struct{}{}
		hops = append(hops, combat.Strike(next, dmg, false, model.SourceTransfer))
		cur = next.Position()
	}

	slog.Debug("transfer proc",
		"source", hit.Target.ID(),
		"damage", dmg,
		"hops", len(hops))
	return hops
}

// Tick runs the conditional heal and returns the HP restored.
func (e *ProcEngine) Tick(now time.Duration) int {
	h := &e.heal
	if !h.enabled || e.player.IsDead() || e.player.MaxHP() <= 0 {
		return 0
	}
	if !h.cd.ready(now) {
		return 0
	}
	ratio := float64(e.player.HP()) / float64(e.player.MaxHP())
	if ratio > h.threshold {
		return 0
	}

	amount := percentOf(e.player.HP(), h.percent)
	h.cd.arm(now)
	if amount <= 0 {
		return 0
	}
	healed := e.player.Heal(amount)
	slog.Debug("conditional heal", "amount", healed, "ratio", ratio)
	return healed
}

// Cooldowns lists the unlocked proc cooldowns.
func (e *ProcEngine) Cooldowns(now time.Duration) []CooldownView {
	var out []CooldownView
	if e.transfer.enabled && e.transfer.cd.duration > minCooldownView {
		out = append(out, e.transfer.cd.view(orDefault(e.transfer.skillID, transferHUDID), now, false))
	}
	if e.heal.enabled && e.heal.cd.duration > minCooldownView {
		out = append(out, e.heal.cd.view(orDefault(e.heal.skillID, healHUDID), now, false))
	}
	return out
}

// percentOf returns floor(v * p / 100), never negative.
func percentOf(v int, p float64) int {
	return max(0, int(math.Floor(float64(v)*p/100)))
}
