package stats

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// MaxBrackets is the number of bracket references a character row carries.
const MaxBrackets = 5

var (
	ErrUnknownCharacter = errors.New("unknown character")
	ErrUnknownBaseStat  = errors.New("unknown base stat")
)

// Character is the part of a character row the resolver needs.
type Character struct {
	ID         string
	BaseStatID string
	BracketIDs []string
}

// Bracket is a level range contributing Gain once per level inside [MinLevel, MaxLevel].
type Bracket struct {
	ID       string
	MinLevel int
	MaxLevel int
	Gain     Gain
}

// Contains reports whether level falls inside the bracket range.
func (b Bracket) Contains(level int) bool {
	return level >= b.MinLevel && level <= b.MaxLevel
}

// CharacterCatalog is a read-only lookup over character, base stat and bracket rows.
type CharacterCatalog interface {
	Character(id string) (Character, bool)
	BaseStat(id string) (StatBlock, bool)
	Bracket(id string) (Bracket, bool)
}

// Resolver computes final stat blocks for a character at a given level.
//
// Overlapping brackets: the bracket list is sorted by MinLevel (stable) and the
// first bracket containing a level wins, so the lowest MinLevel takes priority.
type Resolver struct {
	catalog  CharacterCatalog
	maxLevel int // 0 = unlimited
	validate bool
}

// NewResolver creates a resolver. maxLevel <= 0 disables the level cap.
func NewResolver(catalog CharacterCatalog, maxLevel int) *Resolver {
	return &Resolver{
		catalog:  catalog,
		maxLevel: maxLevel,
		validate: true,
	}
}

// SetValidation toggles bracket range warnings.
func (r *Resolver) SetValidation(enabled bool) {
	r.validate = enabled
}

// MaxLevel returns the configured level cap (0 = unlimited).
func (r *Resolver) MaxLevel() int {
	return r.maxLevel
}

// Resolve returns the stat block of charID at level.
// Level is clamped to [1, maxLevel]. Levels not covered by any bracket
// contribute nothing and are logged.
func (r *Resolver) Resolve(charID string, level int) (StatBlock, error) {
	level = r.clampLevel(charID, level)

	c, ok := r.catalog.Character(charID)
	if !ok {
		return StatBlock{}, fmt.Errorf("resolving %q: %w", charID, ErrUnknownCharacter)
	}

	result, ok := r.catalog.BaseStat(c.BaseStatID)
	if !ok {
		return StatBlock{}, fmt.Errorf("resolving %q (base stat %q): %w", charID, c.BaseStatID, ErrUnknownBaseStat)
	}

	if level == 1 {
		return result, nil
	}

	brackets := r.brackets(c)
	if len(brackets) == 0 {
		slog.Error("character has no loadable brackets", "charID", charID)
		return result, nil
	}

	if r.validate {
		validateBrackets(charID, brackets)
	}

	for lv := 2; lv <= level; lv++ {
		b, ok := findBracket(brackets, lv)
		if !ok {
			slog.Warn("no bracket covers level", "charID", charID, "level", lv)
			continue
		}
		result = result.Add(b.Gain)
	}

	return result, nil
}

func (r *Resolver) clampLevel(charID string, level int) int {
	if level < 1 {
		level = 1
	}
	if r.maxLevel > 0 && level > r.maxLevel {
		slog.Warn("level above max supported level, clamping",
			"charID", charID,
			"level", level,
			"maxLevel", r.maxLevel)
		level = r.maxLevel
	}
	return level
}

// brackets loads the character's bracket rows sorted by MinLevel.
func (r *Resolver) brackets(c Character) []Bracket {
	list := make([]Bracket, 0, MaxBrackets)

	for i, id := range c.BracketIDs {
		if i >= MaxBrackets {
			slog.Warn("character references more brackets than supported, ignoring rest",
				"charID", c.ID,
				"max", MaxBrackets)
			break
		}
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		b, ok := r.catalog.Bracket(id)
		if !ok {
			slog.Warn("level bracket not found", "charID", c.ID, "bracketID", id)
			continue
		}
		list = append(list, b)
	}

	slices.SortStableFunc(list, func(a, b Bracket) int {
		return a.MinLevel - b.MinLevel
	})
	return list
}

// findBracket returns the first bracket containing level. Linear scan: at most 5 entries.
func findBracket(brackets []Bracket, level int) (Bracket, bool) {
	for _, b := range brackets {
		if b.Contains(level) {
			return b, true
		}
	}
	return Bracket{}, false
}

// validateBrackets logs inverted, overlapping and discontinuous ranges.
// brackets must be sorted by MinLevel.
func validateBrackets(charID string, brackets []Bracket) {
	for i, b := range brackets {
		if b.MinLevel > b.MaxLevel {
			slog.Warn("bracket range inverted",
				"charID", charID, "bracketID", b.ID,
				"minLevel", b.MinLevel, "maxLevel", b.MaxLevel)
		}
		if i == 0 {
			continue
		}
		prev := brackets[i-1]
		if b.MinLevel <= prev.MaxLevel {
			slog.Warn("bracket ranges overlap",
				"charID", charID, "first", prev.ID, "second", b.ID,
				"firstMax", prev.MaxLevel, "secondMin", b.MinLevel)
		}
		if b.MinLevel > prev.MaxLevel+1 {
			slog.Warn("bracket ranges not contiguous",
				"charID", charID, "first", prev.ID, "second", b.ID,
				"firstMax", prev.MaxLevel, "secondMin", b.MinLevel)
		}
	}
}
