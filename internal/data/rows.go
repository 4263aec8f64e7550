package data

import (
	"github.com/udisondev/wavefall/internal/stats"
)

// BaseStatRow is one row of the character/monster stat sheet.
type BaseStatRow struct {
	ID    string  `yaml:"id"`
	MaxHP int     `yaml:"max_hp"`
	Atk   int     `yaml:"atk"`
	Def   int     `yaml:"def"`
	Spd   float64 `yaml:"spd"`
	Crd   int     `yaml:"crd"`
	Crp   int     `yaml:"crp"`
	Ar    float64 `yaml:"ar"`
	As    float64 `yaml:"as"`
}

// Block converts the row into a stat block.
func (r BaseStatRow) Block() stats.StatBlock {
	return stats.StatBlock{
		MaxHP: r.MaxHP,
		Atk:   r.Atk,
		Def:   r.Def,
		Spd:   r.Spd,
		Crd:   r.Crd,
		Crp:   r.Crp,
		Ar:    r.Ar,
		As:    r.As,
	}
}

// LevelBracket is a level range with per-level gains.
type LevelBracket struct {
	ID       string  `yaml:"id"`
	MinLevel int     `yaml:"min_level"`
	MaxLevel int     `yaml:"max_level"`
	HPGain   int     `yaml:"hp_gain"`
	AtkGain  int     `yaml:"atk_gain"`
	DefGain  int     `yaml:"def_gain"`
	CrdGain  int     `yaml:"crd_gain"`
	CrpGain  int     `yaml:"crp_gain"`
	AsGain   float64 `yaml:"as_gain"`
}

// Bracket converts the row into the resolver's bracket.
func (r LevelBracket) Bracket() stats.Bracket {
	return stats.Bracket{
		ID:       r.ID,
		MinLevel: r.MinLevel,
		MaxLevel: r.MaxLevel,
		Gain: stats.Gain{
			HP:  r.HPGain,
			Atk: r.AtkGain,
			Def: r.DefGain,
			Crd: r.CrdGain,
			Crp: r.CrpGain,
			As:  r.AsGain,
		},
	}
}

// Character is a playable character definition.
type Character struct {
	ID                string   `yaml:"id"`
	BaseStatID        string   `yaml:"base_stat_id"`
	BracketIDs        []string `yaml:"bracket_ids"`
	ExclusiveSkillIDs []string `yaml:"exclusive_skill_ids"`
}

// Skill is an offerable skill. Cooldown is kept as the raw sheet string
// ("", "-" and unparsable values fall back to per-effect defaults).
type Skill struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	EffectID string `yaml:"effect_id"`
	Cooldown string `yaml:"cooldown"`
	Explain  string `yaml:"explain"`
}

// Effect describes what a skill does.
type Effect struct {
	ID              string              `yaml:"id"`
	Type            EffectType          `yaml:"type"`
	ReferenceStat   stats.ReferenceStat `yaml:"reference_stat"`
	Duration        DurationType        `yaml:"duration"`
	DurationSeconds float64             `yaml:"duration_seconds"`
}

// EffectValue is the inclusive roll range of an effect at a skill level.
type EffectValue struct {
	EffectID string `yaml:"effect_id"`
	Level    int    `yaml:"level"`
	ValueMin int    `yaml:"value_min"`
	ValueMax int    `yaml:"value_max"`
}

// Normalized returns the row with ValueMin <= ValueMax.
func (v EffectValue) Normalized() EffectValue {
	if v.ValueMin > v.ValueMax {
		v.ValueMin, v.ValueMax = v.ValueMax, v.ValueMin
	}
	return v
}

// MaxMobGroups is the number of mob group slots a wave row has.
const MaxMobGroups = 5

// Wave is one spawn phase.
type Wave struct {
	ID          string   `yaml:"id"`
	MobGroupIDs []string `yaml:"mob_group_ids"`
	Duration    float64  `yaml:"duration"` // seconds
	ClearScore  int      `yaml:"clear_score"`
	HPMul       float64  `yaml:"hp_mul"`
	AtkMul      float64  `yaml:"atk_mul"`
	DefMul      float64  `yaml:"def_mul"`
	ScoreMul    float64  `yaml:"score_mul"`
}

// SpawnRule spawns Count monsters of MobID every Interval seconds.
type SpawnRule struct {
	MobID    string  `yaml:"mob_id"`
	Count    int     `yaml:"count"`
	Interval float64 `yaml:"interval"`
}

// MobGroup is an ordered list of spawn rules (a "wave mob id").
type MobGroup struct {
	ID    string      `yaml:"id"`
	Rules []SpawnRule `yaml:"rules"`
}

// ContentRow maps (content, step) to a stage.
type ContentRow struct {
	ContentID string `yaml:"content_id"`
	Step      int    `yaml:"step"`
	StageID   string `yaml:"stage_id"`
}

// StageRow maps (stage, step) to a wave.
type StageRow struct {
	StageID string `yaml:"stage_id"`
	Step    int    `yaml:"step"`
	WaveID  string `yaml:"wave_id"`
}

// MonsterRow is a spawnable monster definition.
type MonsterRow struct {
	ID        string `yaml:"id"`
	StatID    string `yaml:"stat_id"`
	Score     int    `yaml:"score"`
	ExpReward int    `yaml:"exp"`
}

// LevelExpRow is the exp needed to go from Level to Level+1.
type LevelExpRow struct {
	Level   int `yaml:"level"`
	NeedExp int `yaml:"need_exp"`
}
