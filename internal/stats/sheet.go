package stats

import (
	"fmt"
	"log/slog"
	"math"
)

// CritScales converts sheet crit columns into formula inputs.
type CritScales struct {
	CrpToChance float64 // Crp * scale = crit chance 0..1
	CrdToBonus  float64 // Crd * scale = extra crit bonus
}

// DefaultCritScales treats Crp/Crd as percent points.
func DefaultCritScales() CritScales {
	return CritScales{CrpToChance: 0.01, CrdToBonus: 0.01}
}

// Sheet is a character's level-based stat block plus its buff ledger.
// Final stats are always rebuilt from the base of the current level and the
// current ledger, never mutated incrementally.
type Sheet struct {
	charID   string
	resolver *Resolver
	ledger   *BuffLedger
	scales   CritScales

	level int
	base  StatBlock
	final StatBlock
}

// NewSheet creates a sheet for charID at level 1.
func NewSheet(charID string, resolver *Resolver, ledger *BuffLedger, scales CritScales) (*Sheet, error) {
	s := &Sheet{
		charID:   charID,
		resolver: resolver,
		ledger:   ledger,
		scales:   scales,
	}
	if err := s.ApplyLevel(1); err != nil {
		return nil, err
	}
	return s, nil
}

// ApplyLevel recomputes the base block for level and rebuilds final stats.
func (s *Sheet) ApplyLevel(level int) error {
	base, err := s.resolver.Resolve(s.charID, level)
	if err != nil {
		return fmt.Errorf("applying level %d: %w", level, err)
	}
	if level < 1 {
		level = 1
	}
	if limit := s.resolver.MaxLevel(); limit > 0 && level > limit {
		level = limit
	}
	s.level = level
	s.base = base
	s.Rebuild()

	slog.Debug("stat sheet level applied", "charID", s.charID, "level", level, "base", base.String())
	return nil
}

// SetPercentBuff records a percent buff and rebuilds final stats.
func (s *Sheet) SetPercentBuff(stat ReferenceStat, sourceID string, percent float64) {
	s.ledger.SetPercent(stat, sourceID, percent)
	s.Rebuild()
}

// Rebuild recomputes final stats from base and the ledger.
// Crp is always additive in percent points, independent of the ledger policy.
func (s *Sheet) Rebuild() {
	l := s.ledger
	b := s.base

	s.final = StatBlock{
		MaxHP: max(1, roundInt(float64(b.MaxHP)*l.Factor(StatMaxHP))),
		Atk:   roundInt(float64(b.Atk) * l.Factor(StatAtk)),
		Def:   roundInt(float64(b.Def) * l.Factor(StatDef)),
		Spd:   b.Spd * l.Factor(StatSpd),
		Crd:   roundInt(float64(b.Crd) * l.Factor(StatCrd)),
		Crp:   roundInt(float64(b.Crp) + l.AdditivePercent(StatCrp)),
		Ar:    b.Ar * l.Factor(StatAr),
		As:    b.As * l.Factor(StatAs),
	}
}

// CharID returns the character id.
func (s *Sheet) CharID() string { return s.charID }

// Level returns the level the base block was computed for.
func (s *Sheet) Level() int { return s.level }

// Base returns the level base block (no buffs).
func (s *Sheet) Base() StatBlock { return s.base }

// Final returns the buffed stat block.
func (s *Sheet) Final() StatBlock { return s.final }

// Ledger returns the buff ledger.
func (s *Sheet) Ledger() *BuffLedger { return s.ledger }

// Atk returns final attack, never negative.
func (s *Sheet) Atk() int { return max(0, s.final.Atk) }

// Def returns final defense, never negative.
func (s *Sheet) Def() int { return max(0, s.final.Def) }

// CritChance01 returns the crit chance in [0,1].
func (s *Sheet) CritChance01() float64 {
	return Clamp01(float64(s.final.Crp) * s.scales.CrpToChance)
}

// ExtraCritBonus returns the additional crit multiplier bonus, never negative.
func (s *Sheet) ExtraCritBonus() float64 {
	return math.Max(0, float64(s.final.Crd)*s.scales.CrdToBonus)
}

// Clamp01 clamps v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
