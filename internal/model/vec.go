package model

import "math"

// Vec2 is a position on the ground plane (X, Z).
// Value type, passed by value.
type Vec2 struct {
	X float64
	Z float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Z: v.Z + o.Z} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Z: v.Z - o.Z} }

// Scale returns v*k.
func (v Vec2) Scale(k float64) Vec2 { return Vec2{X: v.X * k, Z: v.Z * k} }

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Z*o.Z }

// LenSq returns squared length (без sqrt для сравнения дистанций).
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Z*v.Z }

// Len returns length.
func (v Vec2) Len() float64 { return math.Sqrt(v.LenSq()) }

// Normalized returns the unit vector, or zero vector for a (near) zero input.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l < 1e-9 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Z: v.Z / l}
}

// IsZero reports whether v is (near) zero.
func (v Vec2) IsZero() bool { return v.LenSq() < 1e-12 }

// DistanceSquared returns squared distance to o.
func (v Vec2) DistanceSquared(o Vec2) float64 { return v.Sub(o).LenSq() }

// Distance returns distance to o.
func (v Vec2) Distance(o Vec2) float64 { return v.Sub(o).Len() }

// Lerp interpolates between a and b, t clamped to [0,1].
func Lerp(a, b Vec2, t float64) Vec2 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return a.Add(b.Sub(a).Scale(t))
}
