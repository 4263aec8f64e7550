package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffLedger_MultiplicativeFactor(t *testing.T) {
	l := NewBuffLedger(BuffMultiplicative)

	l.SetPercent(StatAtk, "Skill001", 10)
	l.SetPercent(StatAtk, "Skill002", 20)
	l.SetPercent(StatDef, "Skill003", 50)

	assert.InDelta(t, 1.32, l.Factor(StatAtk), 1e-9)
	assert.InDelta(t, 1.5, l.Factor(StatDef), 1e-9)
	assert.Equal(t, 1.0, l.Factor(StatSpd))

	l.SetPercent(StatAtk, "Skill001", 0)
	assert.InDelta(t, 1.2, l.Factor(StatAtk), 1e-9)
	assert.Equal(t, 2, l.Len())
}

func TestBuffLedger_AdditiveFactor(t *testing.T) {
	l := NewBuffLedger(BuffAdditive)

	l.SetPercent(StatAtk, "Skill001", 10)
	l.SetPercent(StatAtk, "Skill002", 20)

	assert.InDelta(t, 1.3, l.Factor(StatAtk), 1e-9)
}

func TestBuffLedger_ReplaceNotStack(t *testing.T) {
	for _, policy := range []BuffPolicy{BuffMultiplicative, BuffAdditive} {
		l := NewBuffLedger(policy)

		l.SetPercent(StatAtk, "S", 10)
		l.SetPercent(StatAtk, "s", 20) // source ids are case-insensitive

		p, ok := l.Percent(StatAtk, "S")
		require.True(t, ok)
		assert.Equal(t, 20.0, p)
		assert.Equal(t, 1, l.Len())
		assert.InDelta(t, 1.2, l.Factor(StatAtk), 1e-9)
	}
}

func TestBuffLedger_BlankSource(t *testing.T) {
	l := NewBuffLedger(BuffMultiplicative)

	l.SetPercent(StatAtk, "  ", 10)
	p, ok := l.Percent(StatAtk, "unknownskill")
	require.True(t, ok)
	assert.Equal(t, 10.0, p)
}

func TestParseBuffPolicy(t *testing.T) {
	assert.Equal(t, BuffAdditive, ParseBuffPolicy("Additive"))
	assert.Equal(t, BuffMultiplicative, ParseBuffPolicy("multiplicative"))
	assert.Equal(t, BuffMultiplicative, ParseBuffPolicy(""))
}

func TestSheet_RebuildFromBase(t *testing.T) {
	r := NewResolver(newFakeCatalog(), 0)
	s, err := NewSheet("Char01", r, NewBuffLedger(BuffMultiplicative), DefaultCritScales())
	require.NoError(t, err)

	s.SetPercentBuff(StatAtk, "Skill001", 50)
	s.SetPercentBuff(StatCrp, "Skill002", 10)
	s.SetPercentBuff(StatMaxHP, "Skill003", 10)

	assert.Equal(t, 15, s.Atk())
	assert.Equal(t, 15, s.Final().Crp, "crp is additive percent points")
	assert.Equal(t, 110, s.Final().MaxHP)
	assert.InDelta(t, 0.15, s.CritChance01(), 1e-9)
	assert.InDelta(t, 0.5, s.ExtraCritBonus(), 1e-9)

	// Level up keeps buffs applied on the new base.
	require.NoError(t, s.ApplyLevel(2))
	assert.Equal(t, 2, s.Level())
	assert.Equal(t, 18, s.Atk()) // (10+2)*1.5

	// Removing the buff restores the base exactly.
	s.SetPercentBuff(StatAtk, "Skill001", 0)
	assert.Equal(t, 12, s.Atk())
}

func TestSheet_UnknownCharacter(t *testing.T) {
	r := NewResolver(newFakeCatalog(), 0)
	_, err := NewSheet("Ghost", r, NewBuffLedger(BuffMultiplicative), DefaultCritScales())
	assert.ErrorIs(t, err, ErrUnknownCharacter)
}

func TestParseReferenceStat(t *testing.T) {
	s, err := ParseReferenceStat("maxhp")
	require.NoError(t, err)
	assert.Equal(t, StatMaxHP, s)
	assert.Equal(t, "ExpGain", StatExpGain.String())

	_, err = ParseReferenceStat("luck")
	assert.Error(t, err)
}
