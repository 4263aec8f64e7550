package spawn

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/udisondev/wavefall/internal/data"
	"github.com/udisondev/wavefall/internal/model"
)

var ErrUnknownWave = errors.New("unknown wave")

// WaveCatalog is the wave data the scheduler reads.
type WaveCatalog interface {
	Wave(id string) (data.Wave, bool)
	MobGroup(id string) (data.MobGroup, bool)
}

// Placer picks spawn positions.
type Placer interface {
	Next() model.Vec2
}

// Listener is notified by the scheduler on the tick the event happens.
// Callbacks must not start another wave.
type Listener interface {
	MonsterSpawned(m *model.Monster)
	WaveCleared(waveID string)
}

// ruleTask spawns Count monsters every interval while the wave window is open.
type ruleTask struct {
	mobID    string
	count    int
	interval time.Duration
	next     time.Duration
}

// groupTask runs the rules of one mob group until the wave window closes.
type groupTask struct {
	id    string
	rules []*ruleTask
	done  bool
}

// Scheduler runs one wave at a time: it spawns the wave's mob groups on
// their rule timers, applies the wave multipliers to every spawn and
// reports the clear once spawning has ended and no spawned monster is alive.
//
// Timers are deadlines on the run clock advanced by Tick; there are no
// goroutines. Not safe for concurrent use; owned by the run tick.
type Scheduler struct {
	catalog  WaveCatalog
	factory  Factory
	placer   Placer
	state    *model.RunState
	listener Listener

	wave       data.Wave
	mul        model.WaveMultipliers
	endAt      time.Duration
	groups     []*groupTask
	alive      map[uint32]struct{}
	clearFired bool
}

// NewScheduler creates an idle scheduler writing progress into state.
func NewScheduler(catalog WaveCatalog, factory Factory, placer Placer, state *model.RunState, listener Listener) *Scheduler {
	return &Scheduler{
		catalog:  catalog,
		factory:  factory,
		placer:   placer,
		state:    state,
		listener: listener,
		alive:    make(map[uint32]struct{}),
	}
}

// StartWave resets per-wave progress and schedules the groups of waveID from
// now. Missing and empty groups are skipped; a wave with nothing to spawn
// clears immediately.
func (s *Scheduler) StartWave(waveID string, now time.Duration) error {
	w, ok := s.catalog.Wave(waveID)
	if !ok {
		return fmt.Errorf("starting wave %q: %w", waveID, ErrUnknownWave)
	}

	s.state.ResetWave(w.ID)
	s.wave = w
	s.mul = model.WaveMultipliers{HP: w.HPMul, Atk: w.AtkMul, Def: w.DefMul, Score: w.ScoreMul}
	dur := w.Duration
	if dur <= 0 {
		dur = data.DefaultWaveDuration
	}
	s.endAt = now + model.Seconds(dur)
	s.groups = s.groups[:0]
	clear(s.alive)
	s.clearFired = false

	seen := make(map[string]struct{}, len(w.MobGroupIDs))
	for _, raw := range w.MobGroupIDs {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		g, ok := s.catalog.MobGroup(id)
		if !ok {
			slog.Warn("mob group not found", "waveID", w.ID, "groupID", id)
			continue
		}
		if len(g.Rules) == 0 {
			slog.Warn("mob group has no rules", "waveID", w.ID, "groupID", id)
			continue
		}
		s.groups = append(s.groups, newGroupTask(w.ID, g, now))
	}

	s.state.PendingGroups = len(s.groups)
	slog.Info("wave started",
		"waveID", w.ID,
		"groups", len(s.groups),
		"duration", model.Seconds(dur))

	if len(s.groups) == 0 {
		s.state.SpawningEnded = true
		s.checkClear()
	}
	return nil
}

func newGroupTask(waveID string, g data.MobGroup, now time.Duration) *groupTask {
	task := &groupTask{id: g.ID}
	for _, r := range g.Rules {
		mobID := strings.TrimSpace(r.MobID)
		if mobID == "" || r.Count <= 0 || r.Interval <= 0 {
			slog.Warn("spawn rule skipped",
				"waveID", waveID,
				"groupID", g.ID,
				"mobID", r.MobID,
				"count", r.Count,
				"interval", r.Interval)
			continue
		}
		task.rules = append(task.rules, &ruleTask{
			mobID:    mobID,
			count:    r.Count,
			interval: model.Seconds(r.Interval),
			next:     now,
		})
	}
	return task
}

// Tick runs every spawn that is due at now and closes the group windows that
// have ended.
func (s *Scheduler) Tick(now time.Duration) {
	for _, g := range s.groups {
		if s.state.Ended {
			return
		}
		if g.done {
			continue
		}
		for _, r := range g.rules {
			for r.next <= now && r.next < s.endAt {
				s.spawnBatch(r)
				if s.state.Ended {
					return
				}
				r.next += r.interval
			}
		}
		if now >= s.endAt {
			s.finishGroup(g)
		}
	}
}

func (s *Scheduler) spawnBatch(r *ruleTask) {
	for range r.count {
		if s.state.Ended {
			return
		}
		m, err := s.factory.Create(r.mobID, s.placer.Next())
		if err != nil {
			slog.Warn("spawn failed", "waveID", s.wave.ID, "mobID", r.mobID, "err", err)
			return
		}
		m.ApplyWaveMultipliers(s.mul)
		s.alive[m.ID()] = struct{}{}
		s.state.AliveMonsters++
		if s.listener != nil {
			s.listener.MonsterSpawned(m)
		}
	}
}

func (s *Scheduler) finishGroup(g *groupTask) {
	g.done = true
	s.state.PendingGroups = max(0, s.state.PendingGroups-1)
	slog.Debug("mob group finished", "waveID", s.wave.ID, "groupID", g.id, "pending", s.state.PendingGroups)

	if s.state.PendingGroups == 0 {
		s.state.SpawningEnded = true
		s.checkClear()
	}
}

// OnMonsterDied records the death of a monster spawned by the current wave.
// Unknown and repeated ids are ignored.
func (s *Scheduler) OnMonsterDied(id uint32) {
	if _, ok := s.alive[id]; !ok {
		return
	}
	delete(s.alive, id)
	s.state.AliveMonsters = max(0, s.state.AliveMonsters-1)
	s.checkClear()
}

func (s *Scheduler) checkClear() {
	if s.clearFired || s.state.Ended || !s.state.Cleared() {
		return
	}
	s.clearFired = true
	slog.Info("wave cleared", "waveID", s.wave.ID, "clearScore", s.wave.ClearScore)
	if s.listener != nil {
		s.listener.WaveCleared(s.wave.ID)
	}
}

// Wave returns the current wave row.
func (s *Scheduler) Wave() data.Wave { return s.wave }

// Alive returns the number of living monsters of the current wave.
func (s *Scheduler) Alive() int { return len(s.alive) }
