package combat

import (
	"log/slog"
	"math"
	"time"

	"github.com/udisondev/wavefall/internal/model"
	"github.com/udisondev/wavefall/internal/world"
)

// ArcConfig tunes the player's basic attack.
type ArcConfig struct {
	AngleDeg         float64       // full arc angle
	RangeScale       float64       // Ar * scale = radius
	MinRadius        float64
	MaxRadius        float64
	MinCooldown      time.Duration
	FallbackCooldown time.Duration // used when As <= 0
	Params           Params
}

// DefaultArcConfig returns a 90° arc, radius clamp 0.25..50, cooldown floor 50ms.
func DefaultArcConfig() ArcConfig {
	return ArcConfig{
		AngleDeg:         90,
		RangeScale:       1,
		MinRadius:        0.25,
		MaxRadius:        50,
		MinCooldown:      50 * time.Millisecond,
		FallbackCooldown: time.Second,
		Params:           DefaultParams(),
	}
}

// Attacker is what the arc attack needs from the player.
type Attacker interface {
	model.UnitStats
	Position() model.Vec2
	Facing() model.Vec2
	AttackRange() float64
	AttacksPerSecond() float64
	IsDead() bool
}

// ArcAttack is the player's automatic swing: every cooldown it hits every
// living monster inside a forward arc.
type ArcAttack struct {
	cfg    ArcConfig
	rng    Roller
	nextAt time.Duration
}

// NewArcAttack creates an arc attack ready to swing at t=0.
func NewArcAttack(cfg ArcConfig, rng Roller) *ArcAttack {
	return &ArcAttack{cfg: cfg, rng: rng}
}

// Radius returns the attack radius for attack range ar.
func (a *ArcAttack) Radius(ar float64) float64 {
	r := ar * a.cfg.RangeScale
	return math.Min(a.cfg.MaxRadius, math.Max(a.cfg.MinRadius, r))
}

// Cooldown returns the swing interval for as attacks per second.
func (a *ArcAttack) Cooldown(as float64) time.Duration {
	if as <= 0 {
		return max(a.cfg.MinCooldown, a.cfg.FallbackCooldown)
	}
	return max(a.cfg.MinCooldown, model.Seconds(1/as))
}

// NextAt returns the simulation time of the next swing.
func (a *ArcAttack) NextAt() time.Duration { return a.nextAt }

// Tick swings when the cooldown has elapsed. Crit is rolled once per swing and
// every distinct target is hit once. The swing timer restarts even when the
// arc is empty.
func (a *ArcAttack) Tick(now time.Duration, p Attacker, w *world.World) []Hit {
	if p.IsDead() || now < a.nextAt {
		return nil
	}
	a.nextAt = now + a.Cooldown(p.AttacksPerSecond())

	radius := a.Radius(p.AttackRange())
	targets := w.InArc(p.Position(), p.Facing(), radius, a.cfg.AngleDeg/2)
	if len(targets) == 0 {
		return nil
	}

	crit := RollCrit(p, a.rng)
	hits := make([]Hit, 0, len(targets))
	for _, m := range targets {
		res := Compute(p, m, a.cfg.Params, a.rng, &crit)
		hit := Strike(m, res.Damage, res.IsCrit, model.SourceBasicAttack)
		if hit.Damage == 0 {
			continue
		}
		hits = append(hits, hit)
	}

	slog.Debug("arc attack",
		"targets", len(hits),
		"crit", crit,
		"radius", radius)
	return hits
}
