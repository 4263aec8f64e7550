package combat

import "github.com/udisondev/wavefall/internal/model"

// DamageSink observes every damage application (HUD, stats, procs).
type DamageSink interface {
	OnDealt(targetID uint32, amount int, isCrit bool, source model.DamageSource)
}

// Hit is one damage application against a monster.
type Hit struct {
	Target *model.Monster
	Damage int
	IsCrit bool
	Died   bool
	Source model.DamageSource
}

// Strike applies damage to m and returns the hit. Dead targets yield a zero hit.
func Strike(m *model.Monster, damage int, isCrit bool, source model.DamageSource) Hit {
	dealt, died := m.TakeFinalDamage(damage)
	return Hit{
		Target: m,
		Damage: dealt,
		IsCrit: isCrit,
		Died:   died,
		Source: source,
	}
}
