package testutil

import (
	"github.com/udisondev/wavefall/internal/model"
	"github.com/udisondev/wavefall/internal/world"
)

// SpawnAt places one monster of tmpl at every position, with ids 1, 2, 3, …
// offset by the monsters already in w.
func SpawnAt(w *world.World, tmpl *model.MonsterTemplate, positions ...model.Vec2) []*model.Monster {
	out := make([]*model.Monster, 0, len(positions))
	next := uint32(w.Count())
	for _, pos := range positions {
		next++
		m := model.NewMonster(next, tmpl, pos)
		w.AddMonster(m)
		out = append(out, m)
	}
	return out
}
