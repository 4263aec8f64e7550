package spawn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wavefall/internal/data"
	"github.com/udisondev/wavefall/internal/model"
	"github.com/udisondev/wavefall/internal/testutil"
	"github.com/udisondev/wavefall/internal/world"
)

type fixedPlacer struct{ pos model.Vec2 }

func (p fixedPlacer) Next() model.Vec2 { return p.pos }

type recordingListener struct {
	spawned []*model.Monster
	cleared []string
}

func (l *recordingListener) MonsterSpawned(m *model.Monster) { l.spawned = append(l.spawned, m) }
func (l *recordingListener) WaveCleared(waveID string)       { l.cleared = append(l.cleared, waveID) }

// killAll kills every spawned monster that is still alive.
func (l *recordingListener) killAll(s *Scheduler) {
	for _, m := range l.spawned {
		if !m.IsDead() {
			m.TakeFinalDamage(m.HP())
			s.OnMonsterDied(m.ID())
		}
	}
}

func newTestScheduler(t *testing.T, cat *data.Catalog) (*Scheduler, *model.RunState, *recordingListener) {
	t.Helper()
	state := model.NewRunState(testutil.Content01)
	l := &recordingListener{}
	s := NewScheduler(cat, NewMonsterFactory(cat, world.NewObjectIDGenerator()), fixedPlacer{}, state, l)
	return s, state, l
}

func TestScheduler_ClearsOnlyAfterKillsAndBothWindows(t *testing.T) {
	s, state, l := newTestScheduler(t, testutil.Catalog())
	require.NoError(t, s.StartWave("Wave001", 0))
	assert.Equal(t, 2, state.PendingGroups)

	s.Tick(0)
	assert.Len(t, l.spawned, 6, "both groups spawn at t=0")
	assert.Equal(t, 6, state.AliveMonsters)

	l.killAll(s)
	assert.Zero(t, state.AliveMonsters)
	assert.False(t, state.Cleared(), "spawn windows still open")
	assert.Empty(t, l.cleared)

	s.Tick(2 * time.Second)
	assert.Len(t, l.spawned, 9, "GA every 2s")
	s.Tick(4 * time.Second)
	assert.Len(t, l.spawned, 15, "GA and GB at 4s")
	l.killAll(s)
	assert.Empty(t, l.cleared)

	s.Tick(6 * time.Second)
	assert.Len(t, l.spawned, 15, "nothing spawns at the window end")
	assert.True(t, state.SpawningEnded)
	assert.Zero(t, state.PendingGroups)
	assert.Equal(t, []string{"Wave001"}, l.cleared)

	s.Tick(7 * time.Second)
	assert.Len(t, l.cleared, 1, "clear is reported once")
}

func TestScheduler_ClearWaitsForLastKill(t *testing.T) {
	s, state, l := newTestScheduler(t, testutil.Catalog())
	require.NoError(t, s.StartWave("Wave001", 0))

	s.Tick(10 * time.Second)
	assert.Len(t, l.spawned, 15, "a late tick catches up every due spawn")
	assert.True(t, state.SpawningEnded)
	assert.Empty(t, l.cleared)

	last := l.spawned[len(l.spawned)-1]
	for _, m := range l.spawned[:len(l.spawned)-1] {
		s.OnMonsterDied(m.ID())
	}
	assert.Empty(t, l.cleared)
	assert.Equal(t, 1, s.Alive())

	s.OnMonsterDied(last.ID())
	assert.Equal(t, []string{"Wave001"}, l.cleared)
}

func TestScheduler_NothingToSpawnClearsImmediately(t *testing.T) {
	s, state, l := newTestScheduler(t, testutil.Catalog())

	require.NoError(t, s.StartWave("Wave003", 0))
	assert.True(t, state.SpawningEnded)
	assert.Zero(t, state.PendingGroups, "missing and empty groups are skipped")
	assert.Equal(t, []string{"Wave003"}, l.cleared)
}

func TestScheduler_DedupesGroups(t *testing.T) {
	cat := testutil.Catalog()
	cat.AddWave(data.Wave{ID: "Dup", MobGroupIDs: []string{"GA", " GA ", "", "GA"}, Duration: 1,
		HPMul: 1, AtkMul: 1, DefMul: 1, ScoreMul: 1})

	s, state, l := newTestScheduler(t, cat)
	require.NoError(t, s.StartWave("Dup", 0))
	assert.Equal(t, 1, state.PendingGroups)

	s.Tick(0)
	assert.Len(t, l.spawned, 3)
}

func TestScheduler_SkipsInvalidRules(t *testing.T) {
	cat := testutil.Catalog()
	cat.AddMobGroup(data.MobGroup{ID: "GBad", Rules: []data.SpawnRule{
		{MobID: "", Count: 1, Interval: 1},
		{MobID: testutil.MobWeak, Count: 0, Interval: 1},
		{MobID: testutil.MobWeak, Count: 1, Interval: 0},
		{MobID: testutil.MobWeak, Count: 1, Interval: 1},
	}})
	cat.AddWave(data.Wave{ID: "Bad", MobGroupIDs: []string{"GBad"}, Duration: 2,
		HPMul: 1, AtkMul: 1, DefMul: 1, ScoreMul: 1})

	s, _, l := newTestScheduler(t, cat)
	require.NoError(t, s.StartWave("Bad", 0))
	s.Tick(2 * time.Second)
	assert.Len(t, l.spawned, 2, "only the valid rule spawns, at 0s and 1s")
}

func TestScheduler_AppliesWaveMultipliers(t *testing.T) {
	s, _, l := newTestScheduler(t, testutil.Catalog())
	require.NoError(t, s.StartWave("Wave002", 0))

	s.Tick(0)
	require.NotEmpty(t, l.spawned)
	m := l.spawned[0]
	assert.Equal(t, 100, m.MaxHP(), "HP x2")
	assert.Equal(t, 100, m.HP())
	assert.Equal(t, 20, m.KillScore(), "score x2")
	assert.Equal(t, 10, m.Atk())
}

func TestScheduler_StopsWhenRunEnded(t *testing.T) {
	s, state, l := newTestScheduler(t, testutil.Catalog())
	require.NoError(t, s.StartWave("Wave001", 0))

	state.End(false)
	s.Tick(10 * time.Second)
	assert.Empty(t, l.spawned)
	assert.Empty(t, l.cleared)
}

func TestScheduler_IgnoresUnknownDeaths(t *testing.T) {
	s, state, l := newTestScheduler(t, testutil.Catalog())
	require.NoError(t, s.StartWave("Wave001", 0))
	s.Tick(0)

	s.OnMonsterDied(12345)
	assert.Equal(t, 6, state.AliveMonsters)

	s.OnMonsterDied(l.spawned[0].ID())
	s.OnMonsterDied(l.spawned[0].ID())
	assert.Equal(t, 5, state.AliveMonsters, "repeated death counted once")
}

func TestScheduler_UnknownWave(t *testing.T) {
	s, _, _ := newTestScheduler(t, testutil.Catalog())
	require.ErrorIs(t, s.StartWave("Nope", 0), ErrUnknownWave)
}

func TestScheduler_RestartResetsProgress(t *testing.T) {
	s, state, l := newTestScheduler(t, testutil.Catalog())
	require.NoError(t, s.StartWave("Wave001", 0))
	s.Tick(0)

	require.NoError(t, s.StartWave("Wave002", time.Second))
	assert.Equal(t, "Wave002", state.WaveID)
	assert.Zero(t, state.AliveMonsters)
	assert.False(t, state.SpawningEnded)
	assert.Equal(t, 1, state.PendingGroups)

	s.Tick(time.Second)
	assert.Len(t, l.spawned, 9)
	s.Tick(4 * time.Second)
	assert.True(t, state.SpawningEnded, "window runs from the wave start")
}
