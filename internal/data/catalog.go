package data

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/udisondev/wavefall/internal/model"
	"github.com/udisondev/wavefall/internal/stats"
)

// DefaultWaveDuration is used for wave rows without a duration.
const DefaultWaveDuration = 10.0

// Catalog is the read-only row store consumed by the simulation.
// Populated once (loader or Add*), then only read from the run tick.
//
// Lookups trim ids and return (row, false) on a miss.
type Catalog struct {
	baseStats    map[string]BaseStatRow
	brackets     map[string]LevelBracket
	characters   map[string]Character
	skills       map[string]Skill
	skillOrder   []string
	effects      map[string]Effect
	effectValues map[effectValueKey]EffectValue
	waves        map[string]Wave
	mobGroups    map[string]MobGroup
	contents     map[stepKey]string // (contentID, step) → stageID
	stages       map[stepKey]string // (stageID, step) → waveID
	monsters     map[string]MonsterRow
	needExp      map[int]int
	maxLevel     int
}

type effectValueKey struct {
	effectID string
	level    int
}

type stepKey struct {
	id   string
	step int
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		baseStats:    make(map[string]BaseStatRow),
		brackets:     make(map[string]LevelBracket),
		characters:   make(map[string]Character),
		skills:       make(map[string]Skill),
		effects:      make(map[string]Effect),
		effectValues: make(map[effectValueKey]EffectValue),
		waves:        make(map[string]Wave),
		mobGroups:    make(map[string]MobGroup),
		contents:     make(map[stepKey]string),
		stages:       make(map[stepKey]string),
		monsters:     make(map[string]MonsterRow),
		needExp:      make(map[int]int),
	}
}

func key(id string) string { return strings.TrimSpace(id) }

// AddBaseStat registers a stat row.
func (c *Catalog) AddBaseStat(r BaseStatRow) { c.baseStats[key(r.ID)] = r }

// AddBracket registers a level bracket.
func (c *Catalog) AddBracket(r LevelBracket) { c.brackets[key(r.ID)] = r }

// AddCharacter registers a character definition.
func (c *Catalog) AddCharacter(r Character) { c.characters[key(r.ID)] = r }

// AddSkill registers a skill. Offer pools iterate skills in registration order.
func (c *Catalog) AddSkill(r Skill) {
	k := key(r.ID)
	if _, exists := c.skills[k]; !exists {
		c.skillOrder = append(c.skillOrder, k)
	}
	c.skills[k] = r
}

// AddEffect registers an effect definition.
func (c *Catalog) AddEffect(r Effect) { c.effects[key(r.ID)] = r }

// AddEffectValue registers a per-level roll range, normalized so min <= max.
func (c *Catalog) AddEffectValue(r EffectValue) {
	c.effectValues[effectValueKey{effectID: key(r.EffectID), level: r.Level}] = r.Normalized()
}

// AddWave registers a wave.
func (c *Catalog) AddWave(r Wave) { c.waves[key(r.ID)] = r }

// AddMobGroup registers a mob group (appending rules when the id repeats,
// matching one-rule-per-row sheets).
func (c *Catalog) AddMobGroup(r MobGroup) {
	k := key(r.ID)
	if existing, ok := c.mobGroups[k]; ok {
		existing.Rules = append(existing.Rules, r.Rules...)
		c.mobGroups[k] = existing
		return
	}
	c.mobGroups[k] = r
}

// AddContent registers a content routing row.
func (c *Catalog) AddContent(r ContentRow) {
	c.contents[stepKey{id: key(r.ContentID), step: r.Step}] = key(r.StageID)
}

// AddStage registers a stage routing row.
func (c *Catalog) AddStage(r StageRow) {
	c.stages[stepKey{id: key(r.StageID), step: r.Step}] = key(r.WaveID)
}

// AddMonster registers a monster definition.
func (c *Catalog) AddMonster(r MonsterRow) { c.monsters[key(r.ID)] = r }

// AddLevelExp registers the exp needed to leave a level.
func (c *Catalog) AddLevelExp(r LevelExpRow) {
	c.needExp[r.Level] = r.NeedExp
	c.maxLevel = max(c.maxLevel, r.Level)
}

// --- stats.CharacterCatalog ---

// Character returns the resolver view of a character.
func (c *Catalog) Character(id string) (stats.Character, bool) {
	r, ok := c.characters[key(id)]
	if !ok {
		return stats.Character{}, false
	}
	return stats.Character{ID: r.ID, BaseStatID: r.BaseStatID, BracketIDs: r.BracketIDs}, true
}

// BaseStat returns a stat row as a block.
func (c *Catalog) BaseStat(id string) (stats.StatBlock, bool) {
	r, ok := c.baseStats[key(id)]
	if !ok {
		return stats.StatBlock{}, false
	}
	return r.Block(), true
}

// Bracket returns a level bracket.
func (c *Catalog) Bracket(id string) (stats.Bracket, bool) {
	r, ok := c.brackets[key(id)]
	if !ok {
		return stats.Bracket{}, false
	}
	return r.Bracket(), true
}

// CharacterDef returns the full character row.
func (c *Catalog) CharacterDef(id string) (Character, bool) {
	r, ok := c.characters[key(id)]
	return r, ok
}

// ExclusiveSkillIDs returns the character's exclusive skill ids.
func (c *Catalog) ExclusiveSkillIDs(charID string) []string {
	r, ok := c.characters[key(charID)]
	if !ok {
		return nil
	}
	return slices.Clone(r.ExclusiveSkillIDs)
}

// --- skill catalog ---

// Skills returns all skills in registration order.
func (c *Catalog) Skills() []Skill {
	out := make([]Skill, 0, len(c.skillOrder))
	for _, id := range c.skillOrder {
		out = append(out, c.skills[id])
	}
	return out
}

// Skill returns a skill definition.
func (c *Catalog) Skill(id string) (Skill, bool) {
	r, ok := c.skills[key(id)]
	return r, ok
}

// Effect returns an effect definition.
func (c *Catalog) Effect(id string) (Effect, bool) {
	r, ok := c.effects[key(id)]
	return r, ok
}

// EffectValue returns the roll range of effectID at level.
func (c *Catalog) EffectValue(effectID string, level int) (EffectValue, bool) {
	r, ok := c.effectValues[effectValueKey{effectID: key(effectID), level: level}]
	return r, ok
}

// --- wave catalog ---

// Wave returns a wave definition.
func (c *Catalog) Wave(id string) (Wave, bool) {
	r, ok := c.waves[key(id)]
	return r, ok
}

// MobGroup returns a mob group.
func (c *Catalog) MobGroup(id string) (MobGroup, bool) {
	r, ok := c.mobGroups[key(id)]
	return r, ok
}

// --- routing catalog ---

// StageID resolves (contentID, step) to a stage id.
func (c *Catalog) StageID(contentID string, step int) (string, bool) {
	v, ok := c.contents[stepKey{id: key(contentID), step: step}]
	return v, ok && v != ""
}

// WaveID resolves (stageID, step) to a wave id.
func (c *Catalog) WaveID(stageID string, step int) (string, bool) {
	v, ok := c.stages[stepKey{id: key(stageID), step: step}]
	return v, ok && v != ""
}

// --- monsters / levels ---

// Monster builds the spawn template of a monster id.
func (c *Catalog) Monster(id string) (*model.MonsterTemplate, bool) {
	r, ok := c.monsters[key(id)]
	if !ok {
		return nil, false
	}
	base, ok := c.baseStats[key(r.StatID)]
	if !ok {
		slog.Warn("monster stat row not found", "mobID", id, "statID", r.StatID)
		return nil, false
	}
	return &model.MonsterTemplate{
		ID:        r.ID,
		Stats:     base.Block(),
		BaseScore: r.Score,
		ExpReward: r.ExpReward,
	}, true
}

// NeedExp returns the exp needed to go from level to level+1.
func (c *Catalog) NeedExp(level int) (int, bool) {
	v, ok := c.needExp[level]
	return v, ok
}

// MaxLevel returns the highest level present in the exp table (0 when empty).
func (c *Catalog) MaxLevel() int { return c.maxLevel }

// Counts returns row counts per table for logging.
func (c *Catalog) Counts() map[string]int {
	return map[string]int{
		"base_stats":    len(c.baseStats),
		"brackets":      len(c.brackets),
		"characters":    len(c.characters),
		"skills":        len(c.skills),
		"effects":       len(c.effects),
		"effect_values": len(c.effectValues),
		"waves":         len(c.waves),
		"mob_groups":    len(c.mobGroups),
		"contents":      len(c.contents),
		"stages":        len(c.stages),
		"monsters":      len(c.monsters),
		"level_exp":     len(c.needExp),
	}
}

// Validate reports references that point at missing rows. Problems are
// returned as a list; the simulation tolerates them as configuration misses.
func (c *Catalog) Validate() []error {
	var errs []error

	for _, ch := range c.characters {
		if _, ok := c.baseStats[key(ch.BaseStatID)]; !ok {
			errs = append(errs, fmt.Errorf("character %q: base stat %q not found", ch.ID, ch.BaseStatID))
		}
		if len(ch.BracketIDs) > stats.MaxBrackets {
			errs = append(errs, fmt.Errorf("character %q: %d brackets, max %d", ch.ID, len(ch.BracketIDs), stats.MaxBrackets))
		}
		for _, b := range ch.BracketIDs {
			if key(b) == "" {
				continue
			}
			if _, ok := c.brackets[key(b)]; !ok {
				errs = append(errs, fmt.Errorf("character %q: bracket %q not found", ch.ID, b))
			}
		}
	}

	for _, id := range c.skillOrder {
		s := c.skills[id]
		if _, ok := c.effects[key(s.EffectID)]; !ok {
			errs = append(errs, fmt.Errorf("skill %q: effect %q not found", s.ID, s.EffectID))
		}
	}

	for _, w := range c.waves {
		if len(w.MobGroupIDs) > MaxMobGroups {
			errs = append(errs, fmt.Errorf("wave %q: %d mob groups, max %d", w.ID, len(w.MobGroupIDs), MaxMobGroups))
		}
		for _, g := range w.MobGroupIDs {
			if key(g) == "" {
				continue
			}
			if _, ok := c.mobGroups[key(g)]; !ok {
				errs = append(errs, fmt.Errorf("wave %q: mob group %q not found", w.ID, g))
			}
		}
	}

	for _, g := range c.mobGroups {
		for _, r := range g.Rules {
			if _, ok := c.monsters[key(r.MobID)]; !ok && key(r.MobID) != "" {
				errs = append(errs, fmt.Errorf("mob group %q: monster %q not found", g.ID, r.MobID))
			}
		}
	}

	for k, waveID := range c.stages {
		if _, ok := c.waves[waveID]; !ok {
			errs = append(errs, fmt.Errorf("stage %q step %d: wave %q not found", k.id, k.step, waveID))
		}
	}

	return errs
}
