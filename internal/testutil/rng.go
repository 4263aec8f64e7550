package testutil

// ScriptedRNG replays fixed values. When a script runs out, Float64 returns
// FloatFallback and IntN returns 0.
//
// Satisfies combat.Roller and the skill sampler.
type ScriptedRNG struct {
	Floats        []float64
	Ints          []int
	FloatFallback float64
}

// NoCrit returns an RNG whose every Float64 roll is 0.999 (misses any crit chance < 1).
func NoCrit() *ScriptedRNG {
	return &ScriptedRNG{FloatFallback: 0.999}
}

// AlwaysCrit returns an RNG whose every Float64 roll is 0 (hits any crit chance > 0).
func AlwaysCrit() *ScriptedRNG {
	return &ScriptedRNG{}
}

func (r *ScriptedRNG) Float64() float64 {
	if len(r.Floats) == 0 {
		return r.FloatFallback
	}
	v := r.Floats[0]
	r.Floats = r.Floats[1:]
	return v
}

// IntN returns the next scripted int reduced into [0, n).
func (r *ScriptedRNG) IntN(n int) int {
	if n <= 0 || len(r.Ints) == 0 {
		return 0
	}
	v := r.Ints[0]
	r.Ints = r.Ints[1:]
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
