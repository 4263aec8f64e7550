package world

import (
	"math"

	"github.com/udisondev/wavefall/internal/model"
)

// Rect is an axis-aligned blocking area on the ground plane.
type Rect struct {
	Min model.Vec2
	Max model.Vec2
}

// NewRect builds a rect from any two corners.
func NewRect(a, b model.Vec2) Rect {
	return Rect{
		Min: model.Vec2{X: math.Min(a.X, b.X), Z: math.Min(a.Z, b.Z)},
		Max: model.Vec2{X: math.Max(a.X, b.X), Z: math.Max(a.Z, b.Z)},
	}
}

// Contains reports whether p is inside r (edges included).
func (r Rect) Contains(p model.Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Z >= r.Min.Z && p.Z <= r.Max.Z
}

// AddObstacle registers a static obstacle. Monsters never block movement,
// only obstacles do.
func (w *World) AddObstacle(r Rect) {
	w.obstacles = append(w.obstacles, r)
}

// Obstacles returns the registered obstacles.
func (w *World) Obstacles() []Rect {
	return w.obstacles
}

// Raycast returns the distance from origin along dir to the first obstacle,
// up to maxDist. dir need not be normalized.
func (w *World) Raycast(origin, dir model.Vec2, maxDist float64) (float64, bool) {
	d := dir.Normalized()
	if d.IsZero() || maxDist <= 0 {
		return 0, false
	}

	best := math.MaxFloat64
	hit := false
	for _, r := range w.obstacles {
		t, ok := rayRect(origin, d, r)
		if !ok || t > maxDist {
			continue
		}
		if t < best {
			best = t
			hit = true
		}
	}
	if !hit {
		return 0, false
	}
	return best, true
}

// rayRect is the slab test for a normalized ray. A ray starting inside the
// rect hits at 0.
func rayRect(o, d model.Vec2, r Rect) (float64, bool) {
	tMin := 0.0
	tMax := math.MaxFloat64

	for _, axis := range [2]struct{ o, d, lo, hi float64 }{
		{o.X, d.X, r.Min.X, r.Max.X},
		{o.Z, d.Z, r.Min.Z, r.Max.Z},
	} {
		if math.Abs(axis.d) < 1e-12 {
			if axis.o < axis.lo || axis.o > axis.hi {
				return 0, false
			}
			continue
		}
		t1 := (axis.lo - axis.o) / axis.d
		t2 := (axis.hi - axis.o) / axis.d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
