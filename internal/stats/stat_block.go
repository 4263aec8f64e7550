package stats

import (
	"fmt"
	"strings"
)

// StatBlock is an immutable snapshot of a combatant's stats.
// Crp and Crd are stored in sheet units (percent points); use the
// Sheet accessors to get the 0..1 crit chance and the extra crit bonus.
type StatBlock struct {
	MaxHP int
	Atk   int
	Def   int
	Spd   float64
	Crd   int     // crit damage bonus, percent points
	Crp   int     // crit chance, percent points
	Ar    float64 // attack range
	As    float64 // attacks per second
}

// Add returns b with the gains of one level bracket applied.
func (b StatBlock) Add(g Gain) StatBlock {
	b.MaxHP += g.HP
	b.Atk += g.Atk
	b.Def += g.Def
	b.Crd += g.Crd
	b.Crp += g.Crp
	b.As += g.As
	return b
}

// AttackInterval returns seconds between attacks, or 0 when As is not positive.
func (b StatBlock) AttackInterval() float64 {
	if b.As <= 0 {
		return 0
	}
	return 1 / b.As
}

func (b StatBlock) String() string {
	return fmt.Sprintf("HP:%d ATK:%d DEF:%d SPD:%.2f CRD:%d CRP:%d AR:%.2f AS:%.2f",
		b.MaxHP, b.Atk, b.Def, b.Spd, b.Crd, b.Crp, b.Ar, b.As)
}

// Gain is the per-level increment contributed by a level bracket.
type Gain struct {
	HP  int
	Atk int
	Def int
	Crd int
	Crp int
	As  float64
}

// ReferenceStat identifies the stat a skill effect targets.
// Numeric values match the sheet columns.
type ReferenceStat int8

const (
	StatNone          ReferenceStat = 0
	StatAtk           ReferenceStat = 1
	StatDef           ReferenceStat = 2
	StatSpd           ReferenceStat = 3
	StatCrd           ReferenceStat = 4
	StatCrp           ReferenceStat = 5
	StatAs            ReferenceStat = 6
	StatAr            ReferenceStat = 7
	StatMaxHP         ReferenceStat = 8
	StatExpGain       ReferenceStat = 9
	StatSkillCooldown ReferenceStat = 10
)

var referenceStatNames = map[ReferenceStat]string{
	StatNone:          "None",
	StatAtk:           "Atk",
	StatDef:           "Def",
	StatSpd:           "Spd",
	StatCrd:           "Crd",
	StatCrp:           "Crp",
	StatAs:            "As",
	StatAr:            "Ar",
	StatMaxHP:         "MaxHp",
	StatExpGain:       "ExpGain",
	StatSkillCooldown: "SkillCooldown",
}

func (s ReferenceStat) String() string {
	if name, ok := referenceStatNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ReferenceStat(%d)", int8(s))
}

// ParseReferenceStat parses a stat name (case-insensitive).
func ParseReferenceStat(name string) (ReferenceStat, error) {
	name = strings.TrimSpace(name)
	for stat, n := range referenceStatNames {
		if strings.EqualFold(n, name) {
			return stat, nil
		}
	}
	return StatNone, fmt.Errorf("unknown reference stat %q", name)
}

// UnmarshalYAML accepts either the numeric sheet value or the stat name.
func (s *ReferenceStat) UnmarshalYAML(unmarshal func(any) error) error {
	var n int8
	if err := unmarshal(&n); err == nil {
		*s = ReferenceStat(n)
		return nil
	}
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseReferenceStat(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
