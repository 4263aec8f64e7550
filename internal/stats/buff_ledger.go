package stats

import (
	"strings"
)

// BuffPolicy selects how percent buffs on the same stat combine.
type BuffPolicy int8

const (
	// BuffMultiplicative: 10% and 20% give 1.1 * 1.2 = 1.32.
	BuffMultiplicative BuffPolicy = iota
	// BuffAdditive: 10% and 20% give 1 + (10+20)/100 = 1.3.
	BuffAdditive
)

// ParseBuffPolicy maps a config value to a policy. Unknown values fall back to multiplicative.
func ParseBuffPolicy(s string) BuffPolicy {
	if strings.EqualFold(strings.TrimSpace(s), "additive") {
		return BuffAdditive
	}
	return BuffMultiplicative
}

const unknownSource = "UnknownSkill"

type buffKey struct {
	stat   ReferenceStat
	source string // lower-cased skill id
}

// BuffLedger stores percent modifiers per (stat, source skill).
// Re-applying the same key replaces the stored percent instead of stacking,
// so a skill upgraded from 10% to 20% contributes 20%.
//
// Not safe for concurrent use: a ledger is owned by one entity and mutated
// from the simulation tick only.
type BuffLedger struct {
	policy  BuffPolicy
	entries map[buffKey]float64
}

// NewBuffLedger creates an empty ledger with the given aggregation policy.
func NewBuffLedger(policy BuffPolicy) *BuffLedger {
	return &BuffLedger{
		policy:  policy,
		entries: make(map[buffKey]float64, 8),
	}
}

// Policy returns the aggregation policy.
func (l *BuffLedger) Policy() BuffPolicy {
	return l.policy
}

// SetPercent sets the percent contributed by sourceID to stat.
// A zero percent removes the entry.
func (l *BuffLedger) SetPercent(stat ReferenceStat, sourceID string, percent float64) {
	key := newBuffKey(stat, sourceID)
	if percent == 0 {
		delete(l.entries, key)
		return
	}
	l.entries[key] = percent
}

// Percent returns the stored percent for (stat, sourceID).
func (l *BuffLedger) Percent(stat ReferenceStat, sourceID string) (float64, bool) {
	p, ok := l.entries[newBuffKey(stat, sourceID)]
	return p, ok
}

// Factor returns the multiplier for stat under the ledger policy.
// Returns 1 when no buff targets the stat.
func (l *BuffLedger) Factor(stat ReferenceStat) float64 {
	if l.policy == BuffAdditive {
		return 1 + l.AdditivePercent(stat)/100
	}

	factor := 1.0
	for k, p := range l.entries {
		if k.stat != stat {
			continue
		}
		factor *= 1 + p/100
	}
	return factor
}

// AdditivePercent returns the plain sum of percents on stat regardless of policy.
func (l *BuffLedger) AdditivePercent(stat ReferenceStat) float64 {
	sum := 0.0
	for k, p := range l.entries {
		if k.stat == stat {
			sum += p
		}
	}
	return sum
}

// Len returns the number of active entries.
func (l *BuffLedger) Len() int {
	return len(l.entries)
}

// Clear removes all entries.
func (l *BuffLedger) Clear() {
	clear(l.entries)
}

func newBuffKey(stat ReferenceStat, sourceID string) buffKey {
	sourceID = strings.TrimSpace(sourceID)
	if sourceID == "" {
		sourceID = unknownSource
	}
	return buffKey{stat: stat, source: strings.ToLower(sourceID)}
}
