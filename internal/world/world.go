package world

import (
	"math"

	"github.com/udisondev/wavefall/internal/model"
)

// World holds the live monsters and static obstacles of one run.
// Monsters are kept in insertion order so spatial queries are deterministic
// (ties go to the earlier spawn).
//
// Not safe for concurrent use; owned by the run tick.
type World struct {
	monsters  []*model.Monster
	index     map[uint32]int // objectID → position in monsters
	obstacles []Rect
}

// New creates an empty world.
func New() *World {
	return &World{
		monsters: make([]*model.Monster, 0, 64),
		index:    make(map[uint32]int, 64),
	}
}

// AddMonster registers a monster. Re-adding the same id is a no-op.
func (w *World) AddMonster(m *model.Monster) {
	if _, ok := w.index[m.ID()]; ok {
		return
	}
	w.index[m.ID()] = len(w.monsters)
	w.monsters = append(w.monsters, m)
}

// RemoveMonster unregisters a monster, keeping the order of the rest.
func (w *World) RemoveMonster(id uint32) bool {
	i, ok := w.index[id]
	if !ok {
		return false
	}
	copy(w.monsters[i:], w.monsters[i+1:])
	w.monsters[len(w.monsters)-1] = nil
	w.monsters = w.monsters[:len(w.monsters)-1]
	delete(w.index, id)
	for j := i; j < len(w.monsters); j++ {
		w.index[w.monsters[j].ID()] = j
	}
	return true
}

// Monster returns a registered monster by id.
func (w *World) Monster(id uint32) (*model.Monster, bool) {
	i, ok := w.index[id]
	if !ok {
		return nil, false
	}
	return w.monsters[i], true
}

// Monsters returns the registered monsters in spawn order. The slice is
// shared; callers must not keep it across mutations.
func (w *World) Monsters() []*model.Monster {
	return w.monsters
}

// Count returns the number of registered monsters.
func (w *World) Count() int {
	return len(w.monsters)
}

// Clear removes all monsters (obstacles stay).
func (w *World) Clear() {
	clear(w.monsters)
	w.monsters = w.monsters[:0]
	clear(w.index)
}

// Nearest returns the closest living monster within radius of center,
// skipping ids in exclude. radius <= 0 means unlimited.
func (w *World) Nearest(center model.Vec2, radius float64, exclude map[uint32]struct{}) (*model.Monster, bool) {
	var best *model.Monster
	bestDist := math.MaxFloat64
	limit := radius * radius

	for _, m := range w.monsters {
		if m.IsDead() {
			continue
		}
		if _, skip := exclude[m.ID()]; skip {
			continue
		}
		d := m.Position().DistanceSquared(center)
		if radius > 0 && d > limit {
			continue
		}
		if d < bestDist {
			best = m
			bestDist = d
		}
	}
	return best, best != nil
}

// InRadius returns living monsters within radius of center.
func (w *World) InRadius(center model.Vec2, radius float64) []*model.Monster {
	limit := radius * radius
	out := make([]*model.Monster, 0, 8)
	for _, m := range w.monsters {
		if m.IsDead() {
			continue
		}
		if m.Position().DistanceSquared(center) <= limit {
			out = append(out, m)
		}
	}
	return out
}

// InArc returns living monsters within radius whose direction from center
// is at most halfAngleDeg away from facing. Monsters exactly on center are skipped.
func (w *World) InArc(center, facing model.Vec2, radius, halfAngleDeg float64) []*model.Monster {
	f := facing.Normalized()
	cosLimit := math.Cos(halfAngleDeg * math.Pi / 180)

	out := make([]*model.Monster, 0, 8)
	for _, m := range w.InRadius(center, radius) {
		dir := m.Position().Sub(center)
		if dir.LenSq() < 0.0001 {
			continue
		}
		if f.IsZero() || dir.Normalized().Dot(f) >= cosLimit-1e-9 {
			out = append(out, m)
		}
	}
	return out
}

// InSweptBox returns living monsters inside the rectangle swept from start to
// end with the given full width.
func (w *World) InSweptBox(start, end model.Vec2, width float64) []*model.Monster {
	seg := end.Sub(start)
	length := seg.Len()
	half := math.Max(0, width) / 2

	out := make([]*model.Monster, 0, 8)
	for _, m := range w.monsters {
		if m.IsDead() {
			continue
		}
		rel := m.Position().Sub(start)

		if length < 1e-9 {
			if rel.Len() <= half {
				out = append(out, m)
			}
			continue
		}

		dir := seg.Scale(1 / length)
		along := rel.Dot(dir)
		if along < 0 || along > length {
			continue
		}
		side := math.Abs(rel.X*dir.Z - rel.Z*dir.X)
		if side <= half {
			out = append(out, m)
		}
	}
	return out
}
