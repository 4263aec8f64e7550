package skill

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wavefall/internal/game/combat"
	"github.com/udisondev/wavefall/internal/model"
	"github.com/udisondev/wavefall/internal/testutil"
	"github.com/udisondev/wavefall/internal/world"
)

func TestProcEngine_LifeStealOnlyOnBasicAttack(t *testing.T) {
	cat := testutil.Catalog()
	player := testutil.NewPlayer(t, cat, 1)
	player.TakeDamage(0, 60)
	require.Equal(t, 40, player.HP())

	procs := NewProcEngine(DefaultProcConfig(), player, world.New())
	procs.EnableLifeSteal(20)

	procs.OnDealt(0, combat.Hit{Damage: 50, Source: model.SourceBasicAttack})
	assert.Equal(t, 50, player.HP(), "20% of 50")

	procs.OnDealt(0, combat.Hit{Damage: 50, Source: model.SourceExclusiveSkill})
	assert.Equal(t, 50, player.HP(), "exclusive skill damage never lifesteals")

	procs.OnDealt(0, combat.Hit{Damage: 50, Source: model.SourceTransfer})
	assert.Equal(t, 50, player.HP())
}

func TestProcEngine_LifeStealFloors(t *testing.T) {
	cat := testutil.Catalog()
	player := testutil.NewPlayer(t, cat, 1)
	player.TakeDamage(0, 60)

	procs := NewProcEngine(DefaultProcConfig(), player, world.New())
	procs.EnableLifeSteal(20)

	procs.OnDealt(0, combat.Hit{Damage: 4, Source: model.SourceBasicAttack})
	assert.Equal(t, 40, player.HP(), "floor(0.8) = 0")
}

func TestProcEngine_TransferChain(t *testing.T) {
	cat := testutil.Catalog()
	player := testutil.NewPlayer(t, cat, 1)

	w := world.New()
	mobs := testutil.SpawnAt(w, testutil.MonsterTemplate(t, cat, testutil.MobWeak),
		model.Vec2{X: 0},
		model.Vec2{X: 3},
		model.Vec2{X: 6},
		model.Vec2{X: 30}, // out of the 8 radius of the last hop
	)

	procs := NewProcEngine(DefaultProcConfig(), player, w)
	procs.EnableTransfer(testutil.SkillTransfer, 50, 5)

	hops := procs.OnDealt(0, combat.Hit{Target: mobs[0], Damage: 40, Source: model.SourceBasicAttack})
	require.Len(t, hops, 2)
	assert.Same(t, mobs[1], hops[0].Target)
	assert.Same(t, mobs[2], hops[1].Target)
	for _, h := range hops {
		assert.Equal(t, 20, h.Damage)
		assert.Equal(t, model.SourceTransfer, h.Source)
		assert.False(t, h.IsCrit)
	}
	assert.Equal(t, 50, mobs[0].HP(), "the hit target is not hopped to")
	assert.Equal(t, 30, mobs[1].HP())
	assert.Equal(t, 50, mobs[3].HP())

	// cooldown 5s
	assert.Empty(t, procs.OnDealt(4*time.Second, combat.Hit{Target: mobs[0], Damage: 40, Source: model.SourceBasicAttack}))
	assert.Len(t, procs.OnDealt(5*time.Second, combat.Hit{Target: mobs[0], Damage: 40, Source: model.SourceBasicAttack}), 2)
}

func TestProcEngine_TransferMinimumDamage(t *testing.T) {
	cat := testutil.Catalog()
	player := testutil.NewPlayer(t, cat, 1)

	w := world.New()
	mobs := testutil.SpawnAt(w, testutil.MonsterTemplate(t, cat, testutil.MobWeak),
		model.Vec2{X: 0},
		model.Vec2{X: 1},
	)

	procs := NewProcEngine(DefaultProcConfig(), player, w)
	procs.EnableTransfer(testutil.SkillTransfer, 50, 5)

	hops := procs.OnDealt(0, combat.Hit{Target: mobs[0], Damage: 1, Source: model.SourceBasicAttack})
	require.Len(t, hops, 1)
	assert.Equal(t, 1, hops[0].Damage)
}

func TestProcEngine_TransferIgnoresSkillDamage(t *testing.T) {
	cat := testutil.Catalog()
	player := testutil.NewPlayer(t, cat, 1)

	w := world.New()
	mobs := testutil.SpawnAt(w, testutil.MonsterTemplate(t, cat, testutil.MobWeak),
		model.Vec2{X: 0},
		model.Vec2{X: 1},
	)

	procs := NewProcEngine(DefaultProcConfig(), player, w)
	procs.EnableTransfer(testutil.SkillTransfer, 50, 5)

	assert.Empty(t, procs.OnDealt(0, combat.Hit{Target: mobs[0], Damage: 40, Source: model.SourceExclusiveSkill}))
	assert.Empty(t, procs.OnDealt(0, combat.Hit{Target: mobs[0], Damage: 40, Source: model.SourceTransfer}))
	assert.Equal(t, 50, mobs[1].HP())
}

func TestProcEngine_ConditionalHeal(t *testing.T) {
	cat := testutil.Catalog()
	player := testutil.NewPlayer(t, cat, 1)

	procs := NewProcEngine(DefaultProcConfig(), player, world.New())
	procs.EnableConditionalHeal(testutil.SkillRegen, 20, 30, 0)

	assert.Zero(t, procs.Tick(0), "full HP is above the threshold")

	player.TakeDamage(0, 80)
	require.Equal(t, 20, player.HP())

	assert.Equal(t, 4, procs.Tick(time.Second), "20% of current HP")
	assert.Equal(t, 24, player.HP())

	assert.Zero(t, procs.Tick(2*time.Second), "cooling down")
	assert.Equal(t, 4, procs.Tick(31*time.Second))
	assert.Equal(t, 28, player.HP())
}

func TestProcEngine_ConditionalHealClampsPercent(t *testing.T) {
	cat := testutil.Catalog()
	player := testutil.NewPlayer(t, cat, 1)
	player.TakeDamage(0, 80)

	procs := NewProcEngine(DefaultProcConfig(), player, world.New())
	procs.EnableConditionalHeal(testutil.SkillRegen, 500, 30, 0)

	assert.Equal(t, 20, procs.Tick(0), "100% of 20")
}

func TestProcEngine_Cooldowns(t *testing.T) {
	cat := testutil.Catalog()
	player := testutil.NewPlayer(t, cat, 1)

	w := world.New()
	mobs := testutil.SpawnAt(w, testutil.MonsterTemplate(t, cat, testutil.MobWeak), model.Vec2{}, model.Vec2{X: 1})

	procs := NewProcEngine(DefaultProcConfig(), player, w)
	assert.Empty(t, procs.Cooldowns(0))

	procs.EnableTransfer("", 50, 5)
	procs.EnableConditionalHeal(testutil.SkillRegen, 20, 30, 0)
	procs.OnDealt(0, combat.Hit{Target: mobs[0], Damage: 10, Source: model.SourceBasicAttack})

	views := procs.Cooldowns(time.Second)
	require.Len(t, views, 2)

	assert.Equal(t, "SkillTransfer", views[0].SkillID)
	assert.False(t, views[0].Ready)
	assert.Equal(t, 5*time.Second, views[0].Duration)
	assert.Equal(t, 4*time.Second, views[0].Remaining)

	assert.Equal(t, testutil.SkillRegen, views[1].SkillID)
	assert.True(t, views[1].Ready)
	assert.Zero(t, views[1].Remaining)
}
