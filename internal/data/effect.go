package data

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// EffectType is what an effect does. Values match the sheet columns.
type EffectType int8

const (
	EffectDamage    EffectType = 1
	EffectUp        EffectType = 2
	EffectHeal      EffectType = 3
	EffectLifeSteal EffectType = 4
	EffectTransfer  EffectType = 5
)

var effectTypeNames = map[EffectType]string{
	EffectDamage:    "Damage",
	EffectUp:        "Up",
	EffectHeal:      "Heal",
	EffectLifeSteal: "LifeSteal",
	EffectTransfer:  "Transfer",
}

func (t EffectType) String() string {
	if n, ok := effectTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("EffectType(%d)", int8(t))
}

// UnmarshalYAML accepts the sheet number or the name.
func (t *EffectType) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, effectTypeNames)
	if err != nil {
		return fmt.Errorf("effect type: %w", err)
	}
	*t = v
	return nil
}

// DurationType is how long an effect lasts.
type DurationType int8

const (
	DurationOnce      DurationType = 1
	DurationUnlimited DurationType = 2
	DurationFlooring  DurationType = 3
	DurationTime      DurationType = 4
)

var durationTypeNames = map[DurationType]string{
	DurationOnce:      "Once",
	DurationUnlimited: "Unlimited",
	DurationFlooring:  "Flooring",
	DurationTime:      "Time",
}

func (d DurationType) String() string {
	if n, ok := durationTypeNames[d]; ok {
		return n
	}
	return fmt.Sprintf("DurationType(%d)", int8(d))
}

// UnmarshalYAML accepts the sheet number or the name.
func (d *DurationType) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, durationTypeNames)
	if err != nil {
		return fmt.Errorf("duration type: %w", err)
	}
	*d = v
	return nil
}

func decodeEnum[T ~int8](value *yaml.Node, names map[T]string) (T, error) {
	var n int8
	if err := value.Decode(&n); err == nil {
		return T(n), nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return 0, err
	}
	s = strings.TrimSpace(s)
	for v, name := range names {
		if strings.EqualFold(name, s) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown value %q", s)
}
