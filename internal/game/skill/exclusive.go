package skill

import (
	"log/slog"
	"math"
	"time"

	"github.com/udisondev/wavefall/internal/game/combat"
	"github.com/udisondev/wavefall/internal/model"
	"github.com/udisondev/wavefall/internal/world"
)

// ExclusiveConfig tunes the per-character dash strike.
type ExclusiveConfig struct {
	AcquireRadius   float64
	PreDelay        time.Duration
	DashDuration    time.Duration
	MaxDashDistance float64
	BoxWidth        float64
	BoxHeight       float64 // carried for parity with 3D hit boxes; unused on the ground plane
	BaseCritBonus   float64
	AllowCritical   bool
	RequireTarget   bool
	ForwardCast     bool // cast along facing when no target is in range (needs RequireTarget=false)
	DashToMax       bool // always dash the full distance, even past a near target
	StopAtObstacle  bool
	ObstacleMargin  float64
	MinCooldown     time.Duration
}

// DefaultExclusiveConfig returns acquire radius 3, 1s wind-up, 0.07s dash of 3
// units and a 2.5 wide hit box.
func DefaultExclusiveConfig() ExclusiveConfig {
	return ExclusiveConfig{
		AcquireRadius:   3,
		PreDelay:        time.Second,
		DashDuration:    70 * time.Millisecond,
		MaxDashDistance: 3,
		BoxWidth:        2.5,
		BoxHeight:       2.0,
		BaseCritBonus:   0.5,
		AllowCritical:   true,
		RequireTarget:   true,
		DashToMax:       true,
		StopAtObstacle:  true,
		ObstacleMargin:  0.05,
		MinCooldown:     10 * time.Millisecond,
	}
}

// Caster is the player as seen by the exclusive skill.
type Caster interface {
	model.UnitStats
	Position() model.Vec2
	SetPosition(model.Vec2)
	Facing() model.Vec2
	SetFacing(model.Vec2)
	LockMovement()
	UnlockMovement()
	IsDead() bool
}

// ExclusiveState is the cast state.
type ExclusiveState int8

const (
	ExclusiveDisabled ExclusiveState = iota
	ExclusiveReady
	ExclusivePreDelay
	ExclusiveDashing
)

func (s ExclusiveState) String() string {
	switch s {
	case ExclusiveDisabled:
		return "Disabled"
	case ExclusiveReady:
		return "Ready"
	case ExclusivePreDelay:
		return "PreDelay"
	case ExclusiveDashing:
		return "Dashing"
	default:
		return "Unknown"
	}
}

// ExclusiveSkill is the character's active dash strike:
// Disabled → Ready → PreDelay → Dashing → Ready.
//
// The cooldown is armed when the cast starts. After the wind-up the dash
// direction is recomputed toward the target, the end point is clamped by the
// first obstacle (monsters never block) and the caster is moved along the path
// over the dash duration. When the dash completes every living monster in the
// swept box takes the same damage, with crit rolled once per cast.
type ExclusiveSkill struct {
	cfg ExclusiveConfig
	rng combat.Roller

	state      ExclusiveState
	skillID    string
	level      int
	atkPercent float64
	cd         cooldown

	target    *model.Monster
	phaseAt   time.Duration
	dashStart model.Vec2
	dashEnd   model.Vec2
	dashDir   model.Vec2
}

// NewExclusiveSkill creates a disabled skill.
func NewExclusiveSkill(cfg ExclusiveConfig, rng combat.Roller) *ExclusiveSkill {
	return &ExclusiveSkill{cfg: cfg, rng: rng}
}

// Enable unlocks or upgrades the skill. A running cooldown is kept.
func (s *ExclusiveSkill) Enable(skillID string, level int, atkPercent, cooldownSecs float64, now time.Duration) {
	s.skillID = skillID
	s.level = max(1, level)
	s.atkPercent = math.Max(0, atkPercent)
	s.cd.duration = max(s.cfg.MinCooldown, model.Seconds(cooldownSecs))
	if s.cd.readyAt < now {
		s.cd.readyAt = now
	}
	if s.state == ExclusiveDisabled {
		s.state = ExclusiveReady
	}

	slog.Info("exclusive skill enabled",
		"skillID", skillID,
		"level", s.level,
		"atkPercent", s.atkPercent,
		"cooldown", s.cd.duration)
}

func (s *ExclusiveSkill) State() ExclusiveState { return s.state }
func (s *ExclusiveSkill) SkillID() string       { return s.skillID }
func (s *ExclusiveSkill) Level() int            { return s.level }
func (s *ExclusiveSkill) Enabled() bool         { return s.state != ExclusiveDisabled }
func (s *ExclusiveSkill) Casting() bool {
	return s.state == ExclusivePreDelay || s.state == ExclusiveDashing
}

// Ready reports whether a cast may start at now.
func (s *ExclusiveSkill) Ready(now time.Duration) bool {
	return s.state == ExclusiveReady && s.cd.ready(now)
}

// Cooldown returns the HUD entry, or false while disabled.
func (s *ExclusiveSkill) Cooldown(now time.Duration) (CooldownView, bool) {
	if !s.Enabled() {
		return CooldownView{}, false
	}
	v := s.cd.view(s.skillID, now, true)
	v.Ready = s.Ready(now)
	return v, true
}

// Tick advances the state machine and returns the hits of a completed dash.
func (s *ExclusiveSkill) Tick(now time.Duration, c Caster, w *world.World) []combat.Hit {
	if c.IsDead() {
		s.Cancel(c)
		return nil
	}

	switch s.state {
	case ExclusiveReady:
		s.tryCast(now, c, w)
		return nil
	case ExclusivePreDelay:
		if now < s.phaseAt+s.cfg.PreDelay {
			return nil
		}
		s.beginDash(now, c, w)
		return s.stepDash(now, c, w)
	case ExclusiveDashing:
		return s.stepDash(now, c, w)
	default:
		return nil
	}
}

// Cancel aborts a running cast and releases the movement lock.
func (s *ExclusiveSkill) Cancel(c Caster) {
	if !s.Casting() {
		return
	}
	c.UnlockMovement()
	s.state = ExclusiveReady
	s.target = nil
}

func (s *ExclusiveSkill) tryCast(now time.Duration, c Caster, w *world.World) {
	if !s.cd.ready(now) {
		return
	}
	target, ok := w.Nearest(c.Position(), s.cfg.AcquireRadius, nil)
	if !ok && (s.cfg.RequireTarget || !s.cfg.ForwardCast) {
		return
	}

	s.state = ExclusivePreDelay
	s.phaseAt = now
	s.target = target
	s.cd.arm(now)
	c.LockMovement()
	c.SetFacing(s.direction(c))

	slog.Debug("exclusive cast started", "skillID", s.skillID, "hasTarget", target != nil)
}

func (s *ExclusiveSkill) beginDash(now time.Duration, c Caster, w *world.World) {
	start := c.Position()
	dir := s.direction(c)
	c.SetFacing(dir)

	dist := s.cfg.MaxDashDistance
	if !s.cfg.DashToMax && s.target != nil {
		dist = math.Min(dist, s.target.Position().Distance(start))
	}
	if s.cfg.StopAtObstacle {
		if hitDist, hit := w.Raycast(start, dir, dist); hit {
			dist = math.Max(0, hitDist-s.cfg.ObstacleMargin)
		}
	}

	s.state = ExclusiveDashing
	s.phaseAt = now
	s.dashStart = start
	s.dashDir = dir
	s.dashEnd = start.Add(dir.Scale(dist))
}

func (s *ExclusiveSkill) stepDash(now time.Duration, c Caster, w *world.World) []combat.Hit {
	dur := max(time.Microsecond, s.cfg.DashDuration)
	t := float64(now-s.phaseAt) / float64(dur)
	c.SetPosition(model.Lerp(s.dashStart, s.dashEnd, t))
	if t < 1 {
		return nil
	}

	hits := s.strike(c, w)
	c.UnlockMovement()
	s.state = ExclusiveReady
	s.target = nil
	return hits
}

func (s *ExclusiveSkill) strike(c Caster, w *world.World) []combat.Hit {
	base := max(1, int(math.Floor(float64(c.Atk())*(1+s.atkPercent/100))))
	isCrit := false
	damage := base
	if s.cfg.AllowCritical {
		isCrit = combat.RollCrit(c, s.rng)
		if isCrit {
			mul := 1 + math.Max(0, s.cfg.BaseCritBonus) + math.Max(0, c.ExtraCritBonus())
			damage = max(1, int(math.Floor(float64(base)*mul)))
		}
	}

	targets := w.InSweptBox(s.dashStart, s.dashEnd, s.cfg.BoxWidth)
	hits := make([]combat.Hit, 0, len(targets))
	for _, m := range targets {
		if h := combat.Strike(m, damage, isCrit, model.SourceExclusiveSkill); h.Damage > 0 {
			hits = append(hits, h)
		}
	}

	slog.Debug("exclusive strike",
		"skillID", s.skillID,
		"damage", damage,
		"crit", isCrit,
		"hits", len(hits),
		"dash", s.dashStart.Distance(s.dashEnd))
	return hits
}

// direction points at the target when it is still alive, else along facing.
func (s *ExclusiveSkill) direction(c Caster) model.Vec2 {
	if s.target != nil && !s.target.IsDead() {
		if to := s.target.Position().Sub(c.Position()); to.LenSq() > 0.0001 {
			return to.Normalized()
		}
	}
	if f := c.Facing(); !f.IsZero() {
		return f.Normalized()
	}
	return model.Vec2{Z: 1}
}
