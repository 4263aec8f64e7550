package run

import (
	"github.com/udisondev/wavefall/internal/model"
)

// DamageMeter totals the damage the player dealt, per source.
type DamageMeter struct {
	total    int
	crits    int
	bySource map[model.DamageSource]int
}

// NewDamageMeter creates an empty meter.
func NewDamageMeter() *DamageMeter {
	return &DamageMeter{bySource: make(map[model.DamageSource]int)}
}

// OnDealt implements combat.DamageSink.
func (m *DamageMeter) OnDealt(_ uint32, amount int, isCrit bool, source model.DamageSource) {
	if amount <= 0 {
		return
	}
	m.total += amount
	m.bySource[source] += amount
	if isCrit {
		m.crits++
	}
}

func (m *DamageMeter) Total() int { return m.total }
func (m *DamageMeter) Crits() int { return m.crits }

// BySource returns the damage dealt with source.
func (m *DamageMeter) BySource(source model.DamageSource) int { return m.bySource[source] }
