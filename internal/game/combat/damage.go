package combat

import (
	"math"

	"github.com/udisondev/wavefall/internal/model"
	"github.com/udisondev/wavefall/internal/stats"
)

// minDefenseK guards the defense curve against k <= 0.
const minDefenseK = 0.0001

// Roller is the single source of randomness for damage rolls.
// *rand.Rand from math/rand/v2 satisfies it.
type Roller interface {
	Float64() float64
}

// Params are the tuning coefficients of one damage computation.
type Params struct {
	Coef           float64 // skill/attack coefficient
	DefenseK       float64 // defense curve constant
	BaseCritBonus  float64 // crit multiplier bonus before the attacker's own bonus
	ExtraDamageMul float64
}

// DefaultParams returns coef 1, k 100, base crit bonus 0.5, extra mul 1.
func DefaultParams() Params {
	return Params{Coef: 1, DefenseK: 100, BaseCritBonus: 0.5, ExtraDamageMul: 1}
}

// Result is the outcome of one damage computation.
type Result struct {
	Damage int
	IsCrit bool
	Raw    float64
}

// DefenseFactor returns clamp01(1 - def/(def+k)), k floored at a small positive value.
func DefenseFactor(def int, k float64) float64 {
	k = math.Max(minDefenseK, k)
	d := math.Max(0, float64(def))
	return stats.Clamp01(1 - d/(d+k))
}

// Compute resolves attacker → defender damage.
//
// forceCrit, when non-nil, overrides the roll so a multi-target attack can
// roll crit once and apply it to every target. Otherwise rng is called
// exactly once. Damage is never below 1.
func Compute(attacker, defender model.UnitStats, p Params, rng Roller, forceCrit *bool) Result {
	atk := float64(max(0, attacker.Atk()))
	defFactor := DefenseFactor(defender.Def(), p.DefenseK)

	isCrit := false
	if forceCrit != nil {
		isCrit = *forceCrit
	} else {
		isCrit = RollCrit(attacker, rng)
	}

	critFactor := 1.0
	if isCrit {
		critFactor += math.Max(0, p.BaseCritBonus) + math.Max(0, attacker.ExtraCritBonus())
	}

	raw := atk * math.Max(0, p.Coef) * defFactor * critFactor * math.Max(0, p.ExtraDamageMul)

	return Result{
		Damage: max(1, int(math.Floor(raw))),
		IsCrit: isCrit,
		Raw:    raw,
	}
}

// RollCrit rolls the attacker's crit chance once.
func RollCrit(attacker model.UnitStats, rng Roller) bool {
	return rng.Float64() < stats.Clamp01(attacker.CritChance01())
}
