package data

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk layout of an exported catalog.
type catalogFile struct {
	BaseStats    []BaseStatRow  `yaml:"base_stats"`
	Brackets     []LevelBracket `yaml:"brackets"`
	Characters   []Character    `yaml:"characters"`
	Skills       []Skill        `yaml:"skills"`
	Effects      []Effect       `yaml:"effects"`
	EffectValues []EffectValue  `yaml:"effect_values"`
	Waves        []Wave         `yaml:"waves"`
	MobGroups    []MobGroup     `yaml:"mob_groups"`
	Contents     []ContentRow   `yaml:"contents"`
	Stages       []StageRow     `yaml:"stages"`
	Monsters     []MonsterRow   `yaml:"monsters"`
	LevelExp     []LevelExpRow  `yaml:"level_exp"`
}

// UnmarshalYAML fills sheet defaults for omitted wave columns
// (duration 10s, multipliers 1).
func (w *Wave) UnmarshalYAML(value *yaml.Node) error {
	type plain Wave
	v := plain{
		Duration: DefaultWaveDuration,
		HPMul:    1,
		AtkMul:   1,
		DefMul:   1,
		ScoreMul: 1,
	}
	if err := value.Decode(&v); err != nil {
		return err
	}
	*w = Wave(v)
	return nil
}

// LoadCatalog reads a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	defer f.Close()

	c, err := DecodeCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return c, nil
}

// DecodeCatalog decodes a YAML catalog stream. Unknown fields are rejected.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	c := NewCatalog()
	for _, r := range file.BaseStats {
		c.AddBaseStat(r)
	}
	for _, r := range file.Brackets {
		c.AddBracket(r)
	}
	for _, r := range file.Characters {
		c.AddCharacter(r)
	}
	for _, r := range file.Skills {
		c.AddSkill(r)
	}
	for _, r := range file.Effects {
		c.AddEffect(r)
	}
	for _, r := range file.EffectValues {
		c.AddEffectValue(r)
	}
	for _, r := range file.Waves {
		c.AddWave(r)
	}
	for _, r := range file.MobGroups {
		c.AddMobGroup(r)
	}
	for _, r := range file.Contents {
		c.AddContent(r)
	}
	for _, r := range file.Stages {
		c.AddStage(r)
	}
	for _, r := range file.Monsters {
		c.AddMonster(r)
	}
	for _, r := range file.LevelExp {
		c.AddLevelExp(r)
	}

	for _, err := range c.Validate() {
		slog.Warn("catalog reference problem", "error", err)
	}

	counts := c.Counts()
	slog.Info("catalog loaded",
		"characters", counts["characters"],
		"skills", counts["skills"],
		"waves", counts["waves"],
		"monsters", counts["monsters"])

	return c, nil
}
