package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/wavefall/internal/testutil"
)

type unit struct {
	atk, def    int
	crit, extra float64
}

func (u unit) Atk() int                { return u.atk }
func (u unit) Def() int                { return u.def }
func (u unit) CritChance01() float64   { return u.crit }
func (u unit) ExtraCritBonus() float64 { return u.extra }

type countingRoller struct {
	v     float64
	calls int
}

func (r *countingRoller) Float64() float64 {
	r.calls++
	return r.v
}

func TestCompute_DefenseScenario(t *testing.T) {
	noCrit := false
	res := Compute(unit{atk: 100}, unit{def: 50}, DefaultParams(), testutil.NoCrit(), &noCrit)

	assert.Equal(t, 66, res.Damage)
	assert.False(t, res.IsCrit)
	assert.InDelta(t, 66.67, res.Raw, 0.01)
}

func TestCompute_Crit(t *testing.T) {
	crit := true
	res := Compute(unit{atk: 100, extra: 0.5}, unit{}, DefaultParams(), testutil.NoCrit(), &crit)

	assert.True(t, res.IsCrit)
	assert.Equal(t, 200, res.Damage, "1 + base 0.5 + extra 0.5")
}

func TestCompute_RollsOnceWithoutForce(t *testing.T) {
	rng := &countingRoller{v: 0.1}
	res := Compute(unit{atk: 10, crit: 0.2}, unit{}, DefaultParams(), rng, nil)

	assert.True(t, res.IsCrit)
	assert.Equal(t, 1, rng.calls)

	forced := false
	Compute(unit{atk: 10, crit: 0.2}, unit{}, DefaultParams(), rng, &forced)
	assert.Equal(t, 1, rng.calls, "forced crit must not consume a roll")
}

func TestCompute_NeverBelowOne(t *testing.T) {
	tests := []struct {
		name     string
		attacker unit
		defender unit
		params   Params
	}{
		{"zero atk", unit{atk: 0}, unit{}, DefaultParams()},
		{"negative atk", unit{atk: -50}, unit{}, DefaultParams()},
		{"huge def", unit{atk: 1}, unit{def: 1_000_000}, DefaultParams()},
		{"zero coef", unit{atk: 100}, unit{}, Params{Coef: 0, DefenseK: 100, ExtraDamageMul: 1}},
		{"negative mul", unit{atk: 100}, unit{}, Params{Coef: 1, DefenseK: 100, ExtraDamageMul: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compute(tt.attacker, tt.defender, tt.params, testutil.NoCrit(), nil)
			assert.GreaterOrEqual(t, res.Damage, 1)
		})
	}
}

func TestDefenseFactor_MonotoneInUnitRange(t *testing.T) {
	prev := DefenseFactor(0, 100)
	assert.InDelta(t, 1.0, prev, 1e-12)

	for def := 1; def <= 5000; def += 7 {
		f := DefenseFactor(def, 100)
		assert.GreaterOrEqual(t, f, 0.0)
		assert.LessOrEqual(t, f, 1.0)
		assert.LessOrEqual(t, f, prev, "def=%d", def)
		prev = f
	}

	assert.Equal(t, 1.0, DefenseFactor(-10, 100), "negative def counts as 0")
	assert.GreaterOrEqual(t, DefenseFactor(10, 0), 0.0, "k floored")
}
