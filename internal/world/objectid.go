package world

import "sync/atomic"

// ID ranges (convention):
//
//	0x00000000 - 0x0FFFFFFF: reserved (0 = invalid)
//	0x10000000 - 0x1FFFFFFF: players
//	0x20000000 - 0xFFFFFFFF: monsters
const (
	playerIDBase  uint32 = 0x10000000
	monsterIDBase uint32 = 0x20000000
)

// ObjectIDGenerator hands out unique entity ids per run.
type ObjectIDGenerator struct {
	nextPlayerID  atomic.Uint32
	nextMonsterID atomic.Uint32
}

// NewObjectIDGenerator creates a generator starting at the range bases.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextPlayerID.Store(playerIDBase)
	gen.nextMonsterID.Store(monsterIDBase)
	return gen
}

// NextPlayerID returns the next player id.
func (g *ObjectIDGenerator) NextPlayerID() uint32 {
	return g.nextPlayerID.Add(1)
}

// NextMonsterID returns the next monster id.
func (g *ObjectIDGenerator) NextMonsterID() uint32 {
	return g.nextMonsterID.Add(1)
}

// IsMonsterID reports whether id is in the monster range.
func IsMonsterID(id uint32) bool {
	return id > monsterIDBase
}
