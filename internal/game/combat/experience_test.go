package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wavefall/internal/testutil"
)

type fixedMultiplier float64

func (m fixedMultiplier) ExpGainMultiplier() float64 { return float64(m) }

type selectionRecorder struct {
	requests []int
}

func (r *selectionRecorder) RequestSelections(n int) { r.requests = append(r.requests, n) }

func TestExperience_MultiLevelUp(t *testing.T) {
	cat := testutil.Catalog()
	player := testutil.NewPlayer(t, cat, 1)
	player.TakeDamage(0, 40)

	sel := &selectionRecorder{}
	exp := NewExperience(cat, player, true)
	exp.SetSelectionQueue(sel)

	// need: lv1 10, lv2 20
	ups, err := exp.Add(35)
	require.NoError(t, err)

	assert.Equal(t, 2, ups)
	assert.Equal(t, 3, exp.Level())
	assert.Equal(t, 5, exp.Exp())
	assert.Equal(t, 30, exp.Need())
	assert.Equal(t, 3, player.Level())
	assert.Equal(t, 110, player.Atk())
	assert.Equal(t, player.MaxHP(), player.HP(), "refilled on level-up")
	assert.Equal(t, []int{2}, sel.requests, "one request for all levels gained")
}

func TestExperience_NoLevelUp(t *testing.T) {
	cat := testutil.Catalog()
	player := testutil.NewPlayer(t, cat, 1)
	sel := &selectionRecorder{}
	exp := NewExperience(cat, player, true)
	exp.SetSelectionQueue(sel)

	ups, err := exp.Add(9)
	require.NoError(t, err)
	assert.Zero(t, ups)
	assert.Equal(t, 9, exp.Exp())
	assert.Empty(t, sel.requests)
}

func TestExperience_IgnoresNonPositive(t *testing.T) {
	cat := testutil.Catalog()
	exp := NewExperience(cat, testutil.NewPlayer(t, cat, 1), false)

	for _, amount := range []int{0, -5} {
		ups, err := exp.Add(amount)
		require.NoError(t, err)
		assert.Zero(t, ups)
	}
	assert.Zero(t, exp.Exp())
	assert.Zero(t, exp.Gained())
}

func TestExperience_Multiplier(t *testing.T) {
	cat := testutil.Catalog()
	exp := NewExperience(cat, testutil.NewPlayer(t, cat, 1), false)
	exp.SetMultiplier(fixedMultiplier(1.5))

	ups, err := exp.Add(10)
	require.NoError(t, err)
	assert.Equal(t, 1, ups)
	assert.Equal(t, 5, exp.Exp(), "round(10*1.5)=15, 10 consumed")
	assert.Equal(t, 15, exp.Gained())

	exp.SetMultiplier(fixedMultiplier(-2))
	ups, err = exp.Add(100)
	require.NoError(t, err)
	assert.Zero(t, ups, "negative multiplier counts as 0")
	assert.Equal(t, 5, exp.Exp())
}

func TestExperience_MissingRowStopsLeveling(t *testing.T) {
	cat := testutil.Catalog()
	player := testutil.NewPlayer(t, cat, 9)
	exp := NewExperience(cat, player, false)

	// lv9 needs 90; the table has no row for 10.
	ups, err := exp.Add(100_000)
	require.NoError(t, err)
	assert.Equal(t, 1, ups)
	assert.Equal(t, 10, exp.Level())
	assert.Equal(t, 100_000-90, exp.Exp())
	assert.Equal(t, unreachableExp, exp.Need())
}
