package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wavefall/internal/model"
	"github.com/udisondev/wavefall/internal/stats"
)

var testTmpl = &model.MonsterTemplate{ID: "M001", Stats: stats.StatBlock{MaxHP: 10}}

func spawnAt(w *World, id uint32, x, z float64) *model.Monster {
	m := model.NewMonster(id, testTmpl, model.Vec2{X: x, Z: z})
	w.AddMonster(m)
	return m
}

func ids(ms []*model.Monster) []uint32 {
	out := make([]uint32, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ID())
	}
	return out
}

func TestWorld_AddRemove(t *testing.T) {
	w := New()
	spawnAt(w, 1, 0, 0)
	spawnAt(w, 2, 1, 0)
	spawnAt(w, 3, 2, 0)
	spawnAt(w, 2, 9, 9) // duplicate id ignored

	assert.Equal(t, 3, w.Count())
	require.True(t, w.RemoveMonster(2))
	assert.False(t, w.RemoveMonster(2))
	assert.Equal(t, []uint32{1, 3}, ids(w.Monsters()))

	m, ok := w.Monster(3)
	require.True(t, ok)
	assert.Equal(t, uint32(3), m.ID())

	w.Clear()
	assert.Zero(t, w.Count())
}

func TestWorld_Nearest(t *testing.T) {
	w := New()
	spawnAt(w, 1, 5, 0)
	dead := spawnAt(w, 2, 1, 0)
	dead.TakeFinalDamage(100)
	spawnAt(w, 3, 3, 0)
	spawnAt(w, 4, -3, 0) // same distance as 3, spawned later

	m, ok := w.Nearest(model.Vec2{}, 10, nil)
	require.True(t, ok)
	assert.Equal(t, uint32(3), m.ID(), "dead skipped, ties go to earlier spawn")

	m, ok = w.Nearest(model.Vec2{}, 10, map[uint32]struct{}{3: {}})
	require.True(t, ok)
	assert.Equal(t, uint32(4), m.ID())

	_, ok = w.Nearest(model.Vec2{}, 2, nil)
	assert.False(t, ok)
}

func TestWorld_InArc(t *testing.T) {
	w := New()
	spawnAt(w, 1, 2, 0)  // ahead
	spawnAt(w, 2, 2, 2)  // 45 degrees
	spawnAt(w, 3, 0, 2)  // 90 degrees
	spawnAt(w, 4, -2, 0) // behind
	spawnAt(w, 5, 9, 0)  // out of range

	got := w.InArc(model.Vec2{}, model.Vec2{X: 1}, 3, 45)
	assert.Equal(t, []uint32{1, 2}, ids(got))
}

func TestWorld_InSweptBox(t *testing.T) {
	w := New()
	spawnAt(w, 1, 1, 0.5)
	spawnAt(w, 2, 2.5, -1.2)
	spawnAt(w, 3, 3.5, 0) // past the end
	spawnAt(w, 4, -0.5, 0)

	got := w.InSweptBox(model.Vec2{}, model.Vec2{X: 3}, 2.5)
	assert.Equal(t, []uint32{1, 2}, ids(got))
}

func TestWorld_Raycast(t *testing.T) {
	w := New()
	w.AddObstacle(NewRect(model.Vec2{X: 2, Z: -1}, model.Vec2{X: 3, Z: 1}))

	d, hit := w.Raycast(model.Vec2{}, model.Vec2{X: 1}, 5)
	require.True(t, hit)
	assert.InDelta(t, 2.0, d, 1e-9)

	_, hit = w.Raycast(model.Vec2{}, model.Vec2{X: 1}, 1.5)
	assert.False(t, hit, "obstacle beyond max distance")

	_, hit = w.Raycast(model.Vec2{}, model.Vec2{Z: 1}, 5)
	assert.False(t, hit)

	d, hit = w.Raycast(model.Vec2{X: 2.5}, model.Vec2{X: 1}, 5)
	require.True(t, hit)
	assert.Zero(t, d, "starting inside blocks immediately")
}

func TestObjectIDGenerator(t *testing.T) {
	g := NewObjectIDGenerator()
	p := g.NextPlayerID()
	m1 := g.NextMonsterID()
	m2 := g.NextMonsterID()

	assert.NotEqual(t, m1, m2)
	assert.True(t, IsMonsterID(m1))
	assert.False(t, IsMonsterID(p))
}
