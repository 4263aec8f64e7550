package testutil

import (
	"errors"
	"testing"

	"github.com/udisondev/wavefall/internal/data"
	"github.com/udisondev/wavefall/internal/model"
	"github.com/udisondev/wavefall/internal/stats"
)

// Fixture ids used across package tests.
const (
	CharHero = "Hero"

	SkillAtk       = "SkillAtk"
	SkillMaxHP     = "SkillHP"
	SkillExpGain   = "SkillExp"
	SkillCooldown  = "Skill011"
	SkillHeal      = "SkillHeal"
	SkillLifeSteal = "SkillLS"
	SkillTransfer  = "SkillTR"
	SkillRegen     = "SkillRegen"
	SkillDash      = "SkillDash"
	SkillDamage    = "SkillDmg"

	MobWeak = "M001"
	MobTank = "M002"

	Content01 = "Content01"
)

// Catalog returns a small, fully deterministic catalog: every effect value
// has min == max so rolls do not depend on the RNG.
//
// Hero: HP 100, Atk 100, Def 10, Crp 0, Ar 3, As 2 at level 1; +10 HP and
// +5 Atk per level in 2..10. Weak mobs (50 HP, Def 0) die to one basic hit.
//
// Routing: Content01 → Stage01 (Wave001, Wave002) → Stage02 (Wave003).
// Wave001 runs two 3-monster groups over 6s; Wave003 has no spawnable groups.
func Catalog() *data.Catalog {
	c := data.NewCatalog()

	c.AddBaseStat(data.BaseStatRow{ID: "PStat", MaxHP: 100, Atk: 100, Def: 10, Spd: 4, Crd: 50, Crp: 0, Ar: 3, As: 2})
	c.AddBaseStat(data.BaseStatRow{ID: "MStat", MaxHP: 50, Atk: 10, Def: 0, Spd: 2, Ar: 1, As: 1})
	c.AddBaseStat(data.BaseStatRow{ID: "MTank", MaxHP: 1000, Atk: 5, Def: 50, Spd: 1, Ar: 1, As: 1})
	c.AddBracket(data.LevelBracket{ID: "LB01", MinLevel: 2, MaxLevel: 10, HPGain: 10, AtkGain: 5})
	c.AddCharacter(data.Character{
		ID:                CharHero,
		BaseStatID:        "PStat",
		BracketIDs:        []string{"LB01"},
		ExclusiveSkillIDs: []string{SkillDash},
	})

	addSkill(c, SkillAtk, "E_ATK", "-", data.EffectUp, stats.StatAtk, data.DurationUnlimited, 10, 20, 30)
	addSkill(c, SkillMaxHP, "E_HP", "-", data.EffectUp, stats.StatMaxHP, data.DurationUnlimited, 20)
	addSkill(c, SkillExpGain, "E_EXP", "-", data.EffectUp, stats.StatExpGain, data.DurationUnlimited, 50)
	addSkill(c, SkillCooldown, "E_CD", "-", data.EffectUp, stats.StatSkillCooldown, data.DurationUnlimited, 10)
	addSkill(c, SkillHeal, "E_HEAL", "-", data.EffectHeal, stats.StatMaxHP, data.DurationOnce, 10)
	addSkill(c, SkillLifeSteal, "E_LS", "-", data.EffectLifeSteal, stats.StatNone, data.DurationUnlimited, 20)
	addSkill(c, SkillTransfer, "E_TR", "5", data.EffectTransfer, stats.StatNone, data.DurationUnlimited, 50)
	addSkill(c, SkillRegen, "E_REGEN", "30", data.EffectHeal, stats.StatMaxHP, data.DurationTime, 20)
	addSkill(c, SkillDash, "E_DASH", "8", data.EffectDamage, stats.StatAtk, data.DurationOnce, 100, 150)
	addSkill(c, SkillDamage, "E_DMG", "-", data.EffectDamage, stats.StatAtk, data.DurationOnce, 10)

	c.AddMonster(data.MonsterRow{ID: MobWeak, StatID: "MStat", Score: 10, ExpReward: 5})
	c.AddMonster(data.MonsterRow{ID: MobTank, StatID: "MTank", Score: 50, ExpReward: 20})

	c.AddMobGroup(data.MobGroup{ID: "GA", Rules: []data.SpawnRule{{MobID: MobWeak, Count: 3, Interval: 2}}})
	c.AddMobGroup(data.MobGroup{ID: "GB", Rules: []data.SpawnRule{{MobID: MobWeak, Count: 3, Interval: 4}}})
	c.AddMobGroup(data.MobGroup{ID: "GEmpty"})

	c.AddWave(data.Wave{ID: "Wave001", MobGroupIDs: []string{"GA", "GB"}, Duration: 6, ClearScore: 100,
		HPMul: 1, AtkMul: 1, DefMul: 1, ScoreMul: 1})
	c.AddWave(data.Wave{ID: "Wave002", MobGroupIDs: []string{"GA"}, Duration: 3, ClearScore: 200,
		HPMul: 2, AtkMul: 1, DefMul: 1, ScoreMul: 2})
	c.AddWave(data.Wave{ID: "Wave003", MobGroupIDs: []string{"GEmpty", "Missing"}, Duration: 5, ClearScore: 300,
		HPMul: 1, AtkMul: 1, DefMul: 1, ScoreMul: 1})

	c.AddContent(data.ContentRow{ContentID: Content01, Step: 1, StageID: "Stage01"})
	c.AddContent(data.ContentRow{ContentID: Content01, Step: 2, StageID: "Stage02"})
	c.AddStage(data.StageRow{StageID: "Stage01", Step: 1, WaveID: "Wave001"})
	c.AddStage(data.StageRow{StageID: "Stage01", Step: 2, WaveID: "Wave002"})
	c.AddStage(data.StageRow{StageID: "Stage02", Step: 1, WaveID: "Wave003"})

	for lv := 1; lv <= 9; lv++ {
		c.AddLevelExp(data.LevelExpRow{Level: lv, NeedExp: lv * 10})
	}
	return c
}

// addSkill registers a skill, its effect and one value row per level
// (values[i] is both min and max of level i+1).
func addSkill(c *data.Catalog, id, effectID, cooldown string, typ data.EffectType,
	stat stats.ReferenceStat, dur data.DurationType, values ...int) {
	c.AddSkill(data.Skill{ID: id, Name: id, EffectID: effectID, Cooldown: cooldown, Explain: "+x%"})
	c.AddEffect(data.Effect{ID: effectID, Type: typ, ReferenceStat: stat, Duration: dur})
	for i, v := range values {
		c.AddEffectValue(data.EffectValue{EffectID: effectID, Level: i + 1, ValueMin: v, ValueMax: v})
	}
}

// NewPlayer builds the Hero at level with a multiplicative ledger.
func NewPlayer(tb testing.TB, cat *data.Catalog, level int) *model.Player {
	tb.Helper()

	resolver := stats.NewResolver(cat, 0)
	sheet, err := stats.NewSheet(CharHero, resolver, stats.NewBuffLedger(stats.BuffMultiplicative), stats.DefaultCritScales())
	if err != nil {
		tb.Fatalf("creating sheet: %v", err)
	}
	if level > 1 {
		if err := sheet.ApplyLevel(level); err != nil {
			tb.Fatalf("applying level %d: %v", level, err)
		}
	}
	return model.NewPlayer(1, sheet, model.Vec2{})
}

// MonsterTemplate returns the template for a fixture mob id.
func MonsterTemplate(tb testing.TB, cat *data.Catalog, mobID string) *model.MonsterTemplate {
	tb.Helper()

	tmpl, ok := cat.Monster(mobID)
	if !ok {
		tb.Fatalf("fixture monster %q not found", mobID)
	}
	return tmpl
}

// ErrSimulated is a sentinel error for testing error handling paths.
var ErrSimulated = errors.New("simulated error for testing")
