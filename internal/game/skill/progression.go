package skill

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/udisondev/wavefall/internal/data"
	"github.com/udisondev/wavefall/internal/stats"
)

var (
	ErrNoSelection  = errors.New("no open skill selection")
	ErrInvalidPick  = errors.New("invalid offer index")
	ErrUnknownSkill = errors.New("unknown skill")
)

// Catalog is the skill data the progression reads.
type Catalog interface {
	Skills() []data.Skill
	Skill(id string) (data.Skill, bool)
	Effect(id string) (data.Effect, bool)
	EffectValue(effectID string, level int) (data.EffectValue, bool)
}

// Sampler picks offers and rolls values.
type Sampler interface {
	IntN(n int) int
}

// Buffable is the player as seen by picked skills.
type Buffable interface {
	SetPercentBuff(stat stats.ReferenceStat, sourceID string, percent float64)
	Heal(amount int) int
	MaxHP() int
}

// ProgressionConfig tunes offers and per-effect cooldown defaults.
type ProgressionConfig struct {
	OfferCount           int
	MaxSkillLevel        int
	ExcludeCooldownSkill bool
	CooldownSkillID      string
	ExclusiveCooldown    float64 // seconds, when the skill row has none
	HealCooldown         float64
	TransferCooldown     float64
}

// DefaultProgressionConfig returns 3 offers, max level 5 and the reserved
// cooldown skill Skill011 excluded.
func DefaultProgressionConfig() ProgressionConfig {
	return ProgressionConfig{
		OfferCount:           3,
		MaxSkillLevel:        5,
		ExcludeCooldownSkill: true,
		CooldownSkillID:      "Skill011",
		ExclusiveCooldown:    10,
		HealCooldown:         30,
		TransferCooldown:     10,
	}
}

// Offer is one choice of a selection round.
type Offer struct {
	SkillID     string
	Title       string
	Desc        string
	NextLevel   int
	RolledValue int
	IsExclusive bool
}

// OwnedSkill is a picked skill.
type OwnedSkill struct {
	SkillID       string
	Level         int
	RolledValue   int
	AcquiredIndex int
}

// Progression owns the player's skills: it rolls offer rounds, applies picks
// and keeps the queue of pending selections.
//
// Not safe for concurrent use; owned by the run tick.
type Progression struct {
	cfg     ProgressionConfig
	catalog Catalog
	rng     Sampler
	player  Buffable

	procs        *ProcEngine
	exclusive    *ExclusiveSkill
	exclusiveIDs []string

	owned     map[string]*OwnedSkill
	nextIndex int
	expGain   map[string]float64 // lower(skillID) → percent

	pending int
	current []Offer
}

// NewProgression creates a progression with nothing owned. procs and
// exclusive may be nil; picks that need them are then logged and skipped.
func NewProgression(cfg ProgressionConfig, catalog Catalog, rng Sampler, player Buffable,
	procs *ProcEngine, exclusive *ExclusiveSkill, exclusiveIDs []string) *Progression {
	return &Progression{
		cfg:          cfg,
		catalog:      catalog,
		rng:          rng,
		player:       player,
		procs:        procs,
		exclusive:    exclusive,
		exclusiveIDs: exclusiveIDs,
		owned:        make(map[string]*OwnedSkill),
		expGain:      make(map[string]float64),
	}
}

// Level returns the owned level of skillID (0 when not owned).
func (p *Progression) Level(skillID string) int {
	if o, ok := p.owned[strings.TrimSpace(skillID)]; ok {
		return o.Level
	}
	return 0
}

// Owned lists the owned skills in acquisition order.
func (p *Progression) Owned() []OwnedSkill {
	out := make([]OwnedSkill, 0, len(p.owned))
	for _, o := range p.owned {
		out = append(out, *o)
	}
	slices.SortFunc(out, func(a, b OwnedSkill) int {
		return cmp.Compare(a.AcquiredIndex, b.AcquiredIndex)
	})
	return out
}

// ExpGainMultiplier returns 1 + Σ ExpGain percents / 100.
func (p *Progression) ExpGainMultiplier() float64 {
	sum := 0.0
	for _, v := range p.expGain {
		sum += v
	}
	return 1 + sum/100
}

// IsExclusive reports whether skillID is one of the character's exclusive skills.
func (p *Progression) IsExclusive(skillID string) bool {
	id := strings.TrimSpace(skillID)
	for _, e := range p.exclusiveIDs {
		if strings.EqualFold(strings.TrimSpace(e), id) {
			return true
		}
	}
	return false
}

type candidate struct {
	skill data.Skill
	value data.EffectValue
}

// RollOffers samples up to count distinct eligible skills. A skill is
// eligible while below the max level, when it is not the reserved cooldown
// skill and when both its effect and next-level value row exist.
func (p *Progression) RollOffers(count int) []Offer {
	if count <= 0 {
		return nil
	}

	pool := p.eligible()
	offers := make([]Offer, 0, min(count, len(pool)))
	for len(offers) < count && len(pool) > 0 {
		i := p.rng.IntN(len(pool))
		c := pool[i]
		pool = slices.Delete(pool, i, i+1)
		offers = append(offers, p.offer(c))
	}
	return offers
}

func (p *Progression) eligible() []candidate {
	maxLv := max(1, p.cfg.MaxSkillLevel)

	var pool []candidate
	for _, s := range p.catalog.Skills() {
		if p.cfg.ExcludeCooldownSkill && strings.EqualFold(strings.TrimSpace(s.ID), p.cfg.CooldownSkillID) {
			continue
		}
		lv := p.Level(s.ID)
		if lv >= maxLv {
			continue
		}
		if _, ok := p.catalog.Effect(s.EffectID); !ok {
			continue
		}
		next := min(maxLv, max(1, lv+1))
		v, ok := p.catalog.EffectValue(s.EffectID, next)
		if !ok {
			continue
		}
		pool = append(pool, candidate{skill: s, value: v})
	}
	return pool
}

func (p *Progression) offer(c candidate) Offer {
	rolled := c.value.ValueMin
	if span := c.value.ValueMax - c.value.ValueMin + 1; span > 1 {
		rolled += p.rng.IntN(span)
	}
	return Offer{
		SkillID:     c.skill.ID,
		Title:       c.skill.Name,
		Desc:        FormatExplain(c.skill.Explain, rolled),
		NextLevel:   c.value.Level,
		RolledValue: rolled,
		IsExclusive: p.IsExclusive(c.skill.ID),
	}
}

// ApplyPick takes the offered skill to its next level and applies its effect.
func (p *Progression) ApplyPick(o Offer, now time.Duration) error {
	sk, ok := p.catalog.Skill(o.SkillID)
	if !ok {
		return fmt.Errorf("applying pick %q: %w", o.SkillID, ErrUnknownSkill)
	}

	id := strings.TrimSpace(sk.ID)
	owned, ok := p.owned[id]
	if !ok {
		owned = &OwnedSkill{SkillID: id, AcquiredIndex: p.nextIndex}
		p.nextIndex++
		p.owned[id] = owned
	}
	owned.Level = max(1, o.NextLevel)
	owned.RolledValue = o.RolledValue

	effect, ok := p.catalog.Effect(sk.EffectID)
	if !ok {
		slog.Warn("picked skill has no effect", "skillID", id, "effectID", sk.EffectID)
		return nil
	}

	slog.Info("skill picked",
		"skillID", id,
		"level", owned.Level,
		"value", owned.RolledValue,
		"effect", effect.Type)

	switch {
	case p.IsExclusive(id):
		p.enableExclusive(sk, owned, now)
	case effect.Type == data.EffectHeal && effect.Duration == data.DurationTime:
		if p.procs == nil {
			slog.Warn("conditional heal picked without proc engine", "skillID", id)
			return nil
		}
		p.procs.EnableConditionalHeal(id, float64(owned.RolledValue), ParseCooldown(sk.Cooldown, p.cfg.HealCooldown), now)
	default:
		pk := pick{skill: sk, effect: effect, level: owned.Level, value: owned.RolledValue}
		if err := applyEffect(p, pk); err != nil {
			slog.Warn("skill effect skipped", "skillID", id, "err", err)
		}
	}
	return nil
}

func (p *Progression) enableExclusive(sk data.Skill, owned *OwnedSkill, now time.Duration) {
	if p.exclusive == nil {
		slog.Error("exclusive skill picked without exclusive slot", "skillID", sk.ID)
		return
	}
	p.exclusive.Enable(owned.SkillID, owned.Level, float64(max(0, owned.RolledValue)),
		ParseCooldown(sk.Cooldown, p.cfg.ExclusiveCooldown), now)
}

// RequestSelections queues n selection rounds and opens one if none is open.
func (p *Progression) RequestSelections(n int) {
	if n <= 0 {
		return
	}
	p.pending += n
	if p.current == nil {
		p.openRound()
	}
}

// Pending returns the number of queued rounds, the open one included.
func (p *Progression) Pending() int { return p.pending }

// Current returns the open offer round.
func (p *Progression) Current() ([]Offer, bool) {
	if p.current == nil {
		return nil, false
	}
	return p.current, true
}

// Pick resolves the open round with offer i and opens the next queued round.
func (p *Progression) Pick(i int, now time.Duration) (Offer, error) {
	if p.current == nil {
		return Offer{}, ErrNoSelection
	}
	if i < 0 || i >= len(p.current) {
		return Offer{}, fmt.Errorf("pick %d of %d: %w", i, len(p.current), ErrInvalidPick)
	}

	o := p.current[i]
	if err := p.ApplyPick(o, now); err != nil {
		return Offer{}, err
	}
	p.pending = max(0, p.pending-1)
	p.current = nil
	if p.pending > 0 {
		p.openRound()
	}
	return o, nil
}

func (p *Progression) openRound() {
	offers := p.RollOffers(p.cfg.OfferCount)
	if len(offers) == 0 {
		slog.Info("no skills left to offer", "dropped", p.pending)
		p.pending = 0
		p.current = nil
		return
	}
	p.current = offers
}

// Cooldowns lists the HUD cooldowns: the exclusive skill first, then the procs.
func (p *Progression) Cooldowns(now time.Duration) []CooldownView {
	var out []CooldownView
	if p.exclusive != nil {
		if v, ok := p.exclusive.Cooldown(now); ok {
			out = append(out, v)
		}
	}
	if p.procs != nil {
		out = append(out, p.procs.Cooldowns(now)...)
	}
	return out
}
