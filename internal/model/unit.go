package model

// UnitStats is the stat view damage resolution needs from any combatant.
type UnitStats interface {
	Atk() int
	Def() int
	CritChance01() float64
	ExtraCritBonus() float64
}

// DamageSource tags who dealt a damage event. Procs key off it.
type DamageSource int8

const (
	SourceUnknown DamageSource = iota
	SourceBasicAttack
	SourceExclusiveSkill
	SourceTransfer
	SourceMonster
)

func (s DamageSource) String() string {
	switch s {
	case SourceBasicAttack:
		return "BasicAttack"
	case SourceExclusiveSkill:
		return "ExclusiveSkill"
	case SourceTransfer:
		return "Transfer"
	case SourceMonster:
		return "Monster"
	default:
		return "Unknown"
	}
}
