package spawn

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/udisondev/wavefall/internal/model"
	"github.com/udisondev/wavefall/internal/world"
)

var ErrUnknownMonster = errors.New("unknown monster")

// MonsterCatalog loads monster templates.
type MonsterCatalog interface {
	Monster(id string) (*model.MonsterTemplate, bool)
}

// Factory creates monsters for the scheduler.
type Factory interface {
	Create(mobID string, pos model.Vec2) (*model.Monster, error)
}

// MonsterFactory builds monsters from catalog templates with ids from the
// run's generator. Templates are cached per mob id.
type MonsterFactory struct {
	catalog MonsterCatalog
	ids     *world.ObjectIDGenerator
	cache   map[string]*model.MonsterTemplate
}

// NewMonsterFactory creates a factory.
func NewMonsterFactory(catalog MonsterCatalog, ids *world.ObjectIDGenerator) *MonsterFactory {
	return &MonsterFactory{
		catalog: catalog,
		ids:     ids,
		cache:   make(map[string]*model.MonsterTemplate),
	}
}

// Create implements Factory.
func (f *MonsterFactory) Create(mobID string, pos model.Vec2) (*model.Monster, error) {
	key := strings.TrimSpace(mobID)
	tmpl, ok := f.cache[key]
	if !ok {
		tmpl, ok = f.catalog.Monster(key)
		if !ok {
			return nil, fmt.Errorf("creating %q: %w", mobID, ErrUnknownMonster)
		}
		f.cache[key] = tmpl
	}
	return model.NewMonster(f.ids.NextMonsterID(), tmpl, pos), nil
}

// Roller is the randomness spawn placement needs.
type Roller interface {
	Float64() float64
}

// RingPlacer places monsters at a random point on a circle around Center.
type RingPlacer struct {
	Center model.Vec2
	Radius float64
	rng    Roller
}

// NewRingPlacer creates a placer.
func NewRingPlacer(center model.Vec2, radius float64, rng Roller) *RingPlacer {
	return &RingPlacer{Center: center, Radius: radius, rng: rng}
}

// Next returns the next spawn position.
func (p *RingPlacer) Next() model.Vec2 {
	angle := p.rng.Float64() * 2 * math.Pi
	return p.Center.Add(model.Vec2{X: math.Cos(angle), Z: math.Sin(angle)}.Scale(p.Radius))
}
