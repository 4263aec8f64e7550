package ai

import (
	"fmt"
	"log/slog"
	"time"
)

// TickManager keeps the controllers of live monsters in spawn order and ticks
// them together. Owned by the run tick; not safe for concurrent use.
type TickManager struct {
	controllers []Controller
	index       map[uint32]int // monsterID → position in controllers
}

// NewTickManager creates an empty manager.
func NewTickManager() *TickManager {
	return &TickManager{
		controllers: make([]Controller, 0, 64),
		index:       make(map[uint32]int, 64),
	}
}

// Register adds a controller. Re-registering an id replaces the old controller.
func (m *TickManager) Register(c Controller) {
	id := c.MonsterID()
	if i, ok := m.index[id]; ok {
		m.controllers[i] = c
		return
	}
	m.index[id] = len(m.controllers)
	m.controllers = append(m.controllers, c)

	if IsDebugEnabled() {
		slog.Debug("AI controller registered", "monsterID", id)
	}
}

// Unregister removes the controller of monsterID.
func (m *TickManager) Unregister(monsterID uint32) {
	i, ok := m.index[monsterID]
	if !ok {
		return
	}
	copy(m.controllers[i:], m.controllers[i+1:])
	m.controllers[len(m.controllers)-1] = nil
	m.controllers = m.controllers[:len(m.controllers)-1]
	delete(m.index, monsterID)
	for j := i; j < len(m.controllers); j++ {
		m.index[m.controllers[j].MonsterID()] = j
	}

	if IsDebugEnabled() {
		slog.Debug("AI controller unregistered", "monsterID", monsterID)
	}
}

// TickAll ticks every controller in spawn order and returns the hits that
// landed. Ticking stops once the target dies.
func (m *TickManager) TickAll(now, dt time.Duration, target Target) []PlayerHit {
	var hits []PlayerHit
	for _, c := range m.controllers {
		if target.IsDead() {
			break
		}
		if hit, ok := c.Tick(now, dt, target); ok {
			hits = append(hits, hit)
		}
	}
	return hits
}

// Count returns the number of registered controllers.
func (m *TickManager) Count() int {
	return len(m.controllers)
}

// Controller returns the controller of monsterID.
func (m *TickManager) Controller(monsterID uint32) (Controller, error) {
	i, ok := m.index[monsterID]
	if !ok {
		return nil, fmt.Errorf("controller not found for monsterID %d", monsterID)
	}
	return m.controllers[i], nil
}

// Clear drops every controller.
func (m *TickManager) Clear() {
	clear(m.controllers)
	m.controllers = m.controllers[:0]
	clear(m.index)
}
