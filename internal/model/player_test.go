package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wavefall/internal/stats"
)

type sheetCatalog struct{}

func (sheetCatalog) Character(id string) (stats.Character, bool) {
	if id != "Char01" {
		return stats.Character{}, false
	}
	return stats.Character{ID: id, BaseStatID: "Stat01", BracketIDs: []string{"B1"}}, true
}

func (sheetCatalog) BaseStat(id string) (stats.StatBlock, bool) {
	return stats.StatBlock{MaxHP: 100, Atk: 20, Def: 10, Spd: 5, Crd: 50, Crp: 10, Ar: 3, As: 1}, id == "Stat01"
}

func (sheetCatalog) Bracket(id string) (stats.Bracket, bool) {
	return stats.Bracket{ID: id, MinLevel: 2, MaxLevel: 10, Gain: stats.Gain{HP: 100, Atk: 5}}, id == "B1"
}

func newTestPlayer(t *testing.T) *Player {
	t.Helper()
	r := stats.NewResolver(sheetCatalog{}, 10)
	sheet, err := stats.NewSheet("Char01", r, stats.NewBuffLedger(stats.BuffMultiplicative), stats.DefaultCritScales())
	require.NoError(t, err)
	return NewPlayer(1, sheet, Vec2{})
}

func TestPlayer_StartsFull(t *testing.T) {
	p := newTestPlayer(t)

	assert.Equal(t, 100, p.HP())
	assert.Equal(t, 100, p.MaxHP())
	assert.Equal(t, 20, p.Atk())
	assert.InDelta(t, 0.1, p.CritChance01(), 1e-9)
}

func TestPlayer_HealClamps(t *testing.T) {
	p := newTestPlayer(t)

	_, died := p.TakeDamage(0, 30)
	require.False(t, died)
	assert.Equal(t, 70, p.HP())

	assert.Equal(t, 30, p.Heal(50))
	assert.Equal(t, 100, p.HP())
	assert.Zero(t, p.Heal(-5))
}

func TestPlayer_TakeDamage(t *testing.T) {
	p := newTestPlayer(t)
	p.SetInvincibleAfterHit(500 * time.Millisecond)

	dealt, died := p.TakeDamage(time.Second, 0)
	assert.Equal(t, 1, dealt, "damage is at least 1")
	assert.False(t, died)

	dealt, _ = p.TakeDamage(1200*time.Millisecond, 50)
	assert.Zero(t, dealt, "inside i-frames")

	dealt, died = p.TakeDamage(2*time.Second, 500)
	assert.Equal(t, 500, dealt)
	assert.True(t, died)
	assert.Zero(t, p.HP())

	dealt, died = p.TakeDamage(3*time.Second, 5)
	assert.Zero(t, dealt)
	assert.False(t, died, "death is reported once")
	assert.Zero(t, p.Heal(10), "dead players cannot heal")
}

func TestPlayer_MaxHPSyncKeepsRatio(t *testing.T) {
	p := newTestPlayer(t)
	p.TakeDamage(0, 50) // 50/100

	p.SetPercentBuff(stats.StatMaxHP, "Skill001", 100)
	assert.Equal(t, 200, p.MaxHP())
	assert.Equal(t, 100, p.HP())

	p.SetKeepHPRatio(false)
	p.SetPercentBuff(stats.StatMaxHP, "Skill001", 0)
	assert.Equal(t, 100, p.MaxHP())
	assert.Equal(t, 100, p.HP())
}

func TestPlayer_MaxHPShrinkKeepsLivingPlayerAlive(t *testing.T) {
	p := newTestPlayer(t)
	_, died := p.TakeDamage(0, 99) // 1/100
	require.False(t, died)

	p.SetPercentBuff(stats.StatMaxHP, "Curse", -60)
	assert.Equal(t, 40, p.MaxHP())
	assert.Equal(t, 1, p.HP(), "0.4 rounds down but a living player keeps 1 HP")
	assert.False(t, p.IsDead())

	p.SetKeepHPRatio(false)
	p.SetPercentBuff(stats.StatMaxHP, "Curse", -99)
	assert.Equal(t, 1, p.MaxHP())
	assert.Equal(t, 1, p.HP())
	assert.False(t, p.IsDead())
}

func TestPlayer_MaxHPSyncDoesNotRevive(t *testing.T) {
	p := newTestPlayer(t)
	_, died := p.TakeDamage(0, 500)
	require.True(t, died)

	p.SetPercentBuff(stats.StatMaxHP, "Skill001", 100)
	assert.Equal(t, 200, p.MaxHP())
	assert.Zero(t, p.HP())
	assert.True(t, p.IsDead())
}

func TestPlayer_ApplyLevel(t *testing.T) {
	p := newTestPlayer(t)
	p.TakeDamage(0, 50)

	require.NoError(t, p.ApplyLevel(3, true))
	assert.Equal(t, 3, p.Level())
	assert.Equal(t, 300, p.MaxHP())
	assert.Equal(t, 300, p.HP())
	assert.Equal(t, 30, p.Atk())
}

func TestPlayer_Movement(t *testing.T) {
	p := newTestPlayer(t)

	p.LockMovement()
	assert.True(t, p.MovementLocked())
	p.UnlockMovement()
	assert.False(t, p.MovementLocked())

	p.SetFacing(Vec2{X: 10})
	assert.Equal(t, Vec2{X: 1}, p.Facing())
	p.SetFacing(Vec2{})
	assert.Equal(t, Vec2{X: 1}, p.Facing())
}
