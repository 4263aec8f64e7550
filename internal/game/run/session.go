package run

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/wavefall/internal/ai"
	"github.com/udisondev/wavefall/internal/game/combat"
	"github.com/udisondev/wavefall/internal/game/skill"
	"github.com/udisondev/wavefall/internal/model"
	"github.com/udisondev/wavefall/internal/spawn"
	"github.com/udisondev/wavefall/internal/stats"
	"github.com/udisondev/wavefall/internal/world"
)

var ErrNotStarted = errors.New("run not started")

// Rand is the single randomness source of a run.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Catalog is every table a run reads.
type Catalog interface {
	stats.CharacterCatalog
	skill.Catalog
	spawn.WaveCatalog
	spawn.MonsterCatalog
	RoutingCatalog
	combat.ExpTable
	ExclusiveSkillIDs(charID string) []string
}

// Config is the full tuning of a run.
type Config struct {
	CharacterID   string
	ContentID     string
	ContentStep   int // first content step when routing, 0 means 1
	StageStep     int // first stage step when routing, 0 means 1
	UseRouting    bool
	StartWaveID   string // first wave when routing is off
	NextWaveDelay time.Duration
	SpawnRadius   float64
	AutoPick      bool // pick a random offer whenever a selection round is open

	MaxLevel           int
	BuffPolicy         stats.BuffPolicy
	CritScales         stats.CritScales
	RefillOnLevelUp    bool
	KeepHPRatio        bool
	InvincibleAfterHit time.Duration

	Attack      combat.ArcConfig
	Melee       ai.MeleeConfig
	Progression skill.ProgressionConfig
	Procs       skill.ProcConfig
	Exclusive   skill.ExclusiveConfig

	Obstacles []world.Rect
}

// DefaultConfig returns routed play of Content01 with a 1s next-wave delay.
func DefaultConfig() Config {
	return Config{
		ContentID:       "Content01",
		ContentStep:     1,
		StageStep:       1,
		UseRouting:      true,
		StartWaveID:     "Wave001",
		NextWaveDelay:   time.Second,
		SpawnRadius:     20,
		AutoPick:        true,
		BuffPolicy:      stats.BuffMultiplicative,
		CritScales:      stats.DefaultCritScales(),
		RefillOnLevelUp: true,
		KeepHPRatio:     true,
		Attack:          combat.DefaultArcConfig(),
		Melee:           ai.DefaultMeleeConfig(),
		Progression:     skill.DefaultProgressionConfig(),
		Procs:           skill.DefaultProcConfig(),
		Exclusive:       skill.DefaultExclusiveConfig(),
	}
}

// Session is one run: the player, the live monsters and every system that
// acts on them, advanced by Tick on a simulated clock.
//
// Not safe for concurrent use. A single goroutine (the Driver) owns it.
type Session struct {
	cfg     Config
	catalog Catalog
	rng     Rand
	runID   string

	now     time.Duration
	started bool
	endedAt time.Time
	reason  string

	state  *model.RunState
	router *Router
	world  *world.World

	player      *model.Player
	attack      *combat.ArcAttack
	exclusive   *skill.ExclusiveSkill
	procs       *skill.ProcEngine
	progression *skill.Progression
	exp         *combat.Experience

	monsters  *ai.TickManager
	scheduler *spawn.Scheduler

	score     Score
	meter     *DamageMeter
	sinks     []combat.DamageSink
	advanceAt time.Duration
}

// NewSession wires a run for cfg.CharacterID. It fails when the character
// cannot be resolved.
func NewSession(cfg Config, catalog Catalog, rng Rand) (*Session, error) {
	resolver := stats.NewResolver(catalog, cfg.MaxLevel)
	sheet, err := stats.NewSheet(cfg.CharacterID, resolver, stats.NewBuffLedger(cfg.BuffPolicy), cfg.CritScales)
	if err != nil {
		return nil, fmt.Errorf("creating player %q: %w", cfg.CharacterID, err)
	}

	ids := world.NewObjectIDGenerator()
	player := model.NewPlayer(ids.NextPlayerID(), sheet, model.Vec2{})
	player.SetKeepHPRatio(cfg.KeepHPRatio)
	player.SetInvincibleAfterHit(cfg.InvincibleAfterHit)

	s := &Session{
		cfg:      cfg,
		catalog:  catalog,
		rng:      rng,
		runID:    uuid.NewString(),
		state:    model.NewRunState(cfg.ContentID),
		world:    world.New(),
		player:   player,
		monsters: ai.NewTickManager(),
		meter:    NewDamageMeter(),
	}
	s.state.SeekSteps(cfg.ContentStep, cfg.StageStep)
	for _, r := range cfg.Obstacles {
		s.world.AddObstacle(r)
	}
	s.router = NewRouter(catalog, s.state)

	s.attack = combat.NewArcAttack(cfg.Attack, rng)
	s.exclusive = skill.NewExclusiveSkill(cfg.Exclusive, rng)
	s.procs = skill.NewProcEngine(cfg.Procs, player, s.world)
	s.progression = skill.NewProgression(cfg.Progression, catalog, rng, player,
		s.procs, s.exclusive, catalog.ExclusiveSkillIDs(cfg.CharacterID))

	s.exp = combat.NewExperience(catalog, player, cfg.RefillOnLevelUp)
	s.exp.SetMultiplier(s.progression)
	s.exp.SetSelectionQueue(s.progression)

	placer := spawn.NewRingPlacer(player.Position(), cfg.SpawnRadius, rng)
	factory := spawn.NewMonsterFactory(catalog, ids)
	s.scheduler = spawn.NewScheduler(catalog, factory, placer, s.state, sessionListener{s})

	s.sinks = []combat.DamageSink{s.meter}
	return s, nil
}

// AddDamageSink registers an observer of every damage the player deals.
func (s *Session) AddDamageSink(sink combat.DamageSink) {
	s.sinks = append(s.sinks, sink)
}

// Start resolves and starts the first wave.
func (s *Session) Start() error {
	if s.started {
		return nil
	}

	waveID := s.cfg.StartWaveID
	if s.cfg.UseRouting {
		_, w, err := s.router.ResolveStart()
		if err != nil {
			return fmt.Errorf("starting run: %w", err)
		}
		waveID = w
	}
	if err := s.scheduler.StartWave(waveID, s.now); err != nil {
		return fmt.Errorf("starting run: %w", err)
	}
	s.started = true

	slog.Info("run started",
		"runID", s.runID,
		"charID", s.cfg.CharacterID,
		"contentID", s.state.ContentID,
		"stageID", s.state.StageID,
		"waveID", waveID)
	return nil
}

// Tick advances the run by dt. Order per tick: spawns, player skills and
// basic attack (with procs), conditional heal, monster AI, offer picks,
// wave advance.
func (s *Session) Tick(dt time.Duration) {
	if !s.started || s.state.Ended {
		return
	}
	s.now += max(0, dt)
	now := s.now

	s.scheduler.Tick(now)
	if s.state.Ended {
		return
	}

	s.faceNearest()
	s.handleHits(now, s.exclusive.Tick(now, s.player, s.world))
	s.handleHits(now, s.attack.Tick(now, s.player, s.world))
	s.procs.Tick(now)

	for _, hit := range s.monsters.TickAll(now, max(0, dt), s.player) {
		if hit.Died {
			s.finish(false, "player died")
			return
		}
	}

	s.autoPick(now)

	if s.state.Advancing && now >= s.advanceAt {
		s.advance()
	}
}

// Abort ends a running session as a defeat.
func (s *Session) Abort(reason string) {
	s.finish(false, reason)
}

// Pick resolves the open selection round with offer i.
func (s *Session) Pick(i int) (skill.Offer, error) {
	if !s.started {
		return skill.Offer{}, ErrNotStarted
	}
	return s.progression.Pick(i, s.now)
}

// faceNearest turns the player toward the nearest monster while it can move.
func (s *Session) faceNearest() {
	if s.player.MovementLocked() {
		return
	}
	if m, ok := s.world.Nearest(s.player.Position(), 0, nil); ok {
		if dir := m.Position().Sub(s.player.Position()); !dir.IsZero() {
			s.player.SetFacing(dir)
		}
	}
}

func (s *Session) handleHits(now time.Duration, hits []combat.Hit) {
	for _, h := range hits {
		s.report(h)
		hops := s.procs.OnDealt(now, h)
		if h.Died {
			s.onMonsterDied(h.Target)
		}
		for _, hop := range hops {
			s.report(hop)
			if hop.Died {
				s.onMonsterDied(hop.Target)
			}
		}
	}
}

func (s *Session) report(h combat.Hit) {
	if h.Target == nil || h.Damage <= 0 {
		return
	}
	for _, sink := range s.sinks {
		sink.OnDealt(h.Target.ID(), h.Damage, h.IsCrit, h.Source)
	}
}

func (s *Session) onMonsterDied(m *model.Monster) {
	if !s.world.RemoveMonster(m.ID()) {
		return
	}
	s.monsters.Unregister(m.ID())

	s.score.AddKill(m.KillScore())
	s.state.Kills = s.score.Kills()
	s.state.Score = s.score.Total()

	if _, err := s.exp.Add(m.ExpReward()); err != nil {
		slog.Error("granting exp", "monsterID", m.ID(), "err", err)
	}
	s.scheduler.OnMonsterDied(m.ID())
}

func (s *Session) autoPick(now time.Duration) {
	if !s.cfg.AutoPick {
		return
	}
	for {
		offers, ok := s.progression.Current()
		if !ok {
			return
		}
		if _, err := s.progression.Pick(s.rng.IntN(len(offers)), now); err != nil {
			slog.Warn("auto pick failed", "err", err)
			return
		}
	}
}

func (s *Session) advance() {
	s.state.Advancing = false

	var next string
	if s.cfg.UseRouting {
		_, waveID, ok := s.router.ResolveNext()
		if !ok {
			s.finish(true, "content complete")
			return
		}
		next = waveID
	} else {
		waveID, ok := NextWaveID(s.state.WaveID)
		if !ok {
			s.finish(true, "wave id has no number")
			return
		}
		next = waveID
	}

	if _, exists := s.catalog.Wave(next); !exists {
		if s.cfg.UseRouting {
			slog.Warn("routed wave has no data", "stageID", s.state.StageID, "waveID", next)
		}
		s.finish(true, "no next wave")
		return
	}
	if err := s.scheduler.StartWave(next, s.now); err != nil {
		slog.Error("starting next wave", "waveID", next, "err", err)
		s.finish(false, "next wave failed")
	}
}

func (s *Session) finish(victory bool, reason string) {
	if !s.state.End(victory) {
		return
	}
	s.exclusive.Cancel(s.player)
	s.endedAt = time.Now()
	s.reason = reason

	slog.Info("run ended",
		"runID", s.runID,
		"victory", victory,
		"reason", reason,
		"waveID", s.state.WaveID,
		"score", s.state.Score,
		"level", s.player.Level(),
		"elapsed", s.now)
}

// Result summarizes the run. It is meaningful once the run has ended.
func (s *Session) Result() Result {
	waveNum, _ := ExtractWaveNumber(s.state.WaveID)
	return Result{
		RunID:        s.runID,
		CharacterID:  s.cfg.CharacterID,
		ContentID:    s.state.ContentID,
		StageID:      s.state.StageID,
		WaveID:       s.state.WaveID,
		WaveNumber:   waveNum,
		Victory:      s.state.Victory,
		Level:        s.exp.Level(),
		Exp:          s.exp.Exp(),
		ExpMax:       s.exp.Need(),
		ExpGain:      s.exp.Multiplier(),
		Score:        s.score.Total(),
		Kills:        s.score.Kills(),
		WavesCleared: s.score.WavesCleared(),
		DamageDealt:  s.meter.Total(),
		Duration:     s.now,
		Rewards:      []Reward{},
		FinishedAt:   s.endedAt,
	}
}

func (s *Session) RunID() string                    { return s.runID }
func (s *Session) Now() time.Duration               { return s.now }
func (s *Session) Ended() bool                      { return s.state.Ended }
func (s *Session) EndReason() string                { return s.reason }
func (s *Session) State() model.RunState            { return *s.state }
func (s *Session) Player() *model.Player            { return s.player }
func (s *Session) World() *world.World              { return s.world }
func (s *Session) Progression() *skill.Progression  { return s.progression }
func (s *Session) Experience() *combat.Experience   { return s.exp }
func (s *Session) Exclusive() *skill.ExclusiveSkill { return s.exclusive }
func (s *Session) Damage() *DamageMeter             { return s.meter }

// sessionListener receives scheduler events for the session.
type sessionListener struct{ s *Session }

func (l sessionListener) MonsterSpawned(m *model.Monster) {
	s := l.s
	s.world.AddMonster(m)
	s.monsters.Register(ai.NewMonsterAI(m, s.cfg.Melee, s.rng))
}

func (l sessionListener) WaveCleared(waveID string) {
	s := l.s
	s.score.AddWaveClear(s.scheduler.Wave().ClearScore)
	s.state.WavesCleared = s.score.WavesCleared()
	s.state.Score = s.score.Total()
	s.state.Advancing = true
	s.advanceAt = s.now + s.cfg.NextWaveDelay

	slog.Info("wave clear scored",
		"waveID", waveID,
		"score", s.state.Score,
		"nextIn", s.cfg.NextWaveDelay)
}
