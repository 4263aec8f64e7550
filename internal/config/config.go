package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	StoreNone     = "none"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid config")

// Sim holds all configuration for the headless wave simulator.
type Sim struct {
	LogLevel    string `yaml:"log_level" env:"WAVEFALL_LOG_LEVEL"`
	CatalogPath string `yaml:"catalog_path" env:"WAVEFALL_CATALOG"`
	Character   string `yaml:"character" env:"WAVEFALL_CHARACTER"`
	Seed        uint64 `yaml:"seed" env:"WAVEFALL_SEED"` // 0 = seed from the clock
	DebugAI     bool   `yaml:"debug_ai" env:"WAVEFALL_DEBUG_AI"`

	Tick      TickConfig      `yaml:"tick"`
	Stats     StatsConfig     `yaml:"stats"`
	Combat    CombatConfig    `yaml:"combat"`
	Skills    SkillsConfig    `yaml:"skills"`
	Exclusive ExclusiveConfig `yaml:"exclusive"`
	Procs     ProcsConfig     `yaml:"procs"`
	Waves     WavesConfig     `yaml:"waves"`
	Arena     ArenaConfig     `yaml:"arena"`
	Store     StoreConfig     `yaml:"store"`
}

// TickConfig controls the simulation clock.
type TickConfig struct {
	Step        time.Duration `yaml:"step"`
	Realtime    bool          `yaml:"realtime" env:"WAVEFALL_REALTIME"`
	MaxDuration time.Duration `yaml:"max_duration"` // simulated, 0 = none
}

// StatsConfig holds stat resolution and player HP rules.
type StatsConfig struct {
	MaxLevel           int           `yaml:"max_level"` // 0 = no cap
	BuffPolicy         string        `yaml:"buff_policy"` // multiplicative | additive
	CrpToChance        float64       `yaml:"crp_to_chance"`
	CrdToBonus         float64       `yaml:"crd_to_bonus"`
	RefillOnLevelUp    bool          `yaml:"refill_on_level_up"`
	KeepHPRatio        bool          `yaml:"keep_hp_ratio"`
	InvincibleAfterHit time.Duration `yaml:"invincible_after_hit"`
}

// CombatConfig holds the damage formula and the basic attacks.
type CombatConfig struct {
	DefenseK          float64       `yaml:"defense_k"`
	BaseCritBonus     float64       `yaml:"base_crit_bonus"`
	ArcAngleDeg       float64       `yaml:"arc_angle_deg"`
	RangeScale        float64       `yaml:"range_scale"`
	MinRadius         float64       `yaml:"min_radius"`
	MaxRadius         float64       `yaml:"max_radius"`
	MinCooldown       time.Duration `yaml:"min_cooldown"`
	FallbackCooldown  time.Duration `yaml:"fallback_cooldown"`
	MonsterRangeScale float64       `yaml:"monster_range_scale"`
}

// SkillsConfig holds level-up offers.
type SkillsConfig struct {
	AutoPick             bool    `yaml:"auto_pick"`
	OfferCount           int     `yaml:"offer_count"`
	MaxSkillLevel        int     `yaml:"max_skill_level"`
	ExcludeCooldownSkill bool    `yaml:"exclude_cooldown_skill"`
	CooldownSkillID      string  `yaml:"cooldown_skill_id"`
	ExclusiveCooldown    float64 `yaml:"exclusive_cooldown"` // seconds
	HealCooldown         float64 `yaml:"heal_cooldown"`
	TransferCooldown     float64 `yaml:"transfer_cooldown"`
}

// ExclusiveConfig holds the dash strike.
type ExclusiveConfig struct {
	AcquireRadius   float64       `yaml:"acquire_radius"`
	PreDelay        time.Duration `yaml:"pre_delay"`
	DashDuration    time.Duration `yaml:"dash_duration"`
	MaxDashDistance float64       `yaml:"max_dash_distance"`
	BoxWidth        float64       `yaml:"box_width"`
	BoxHeight       float64       `yaml:"box_height"`
	AllowCritical   bool          `yaml:"allow_critical"`
	RequireTarget   bool          `yaml:"require_target"`
	ForwardCast     bool          `yaml:"forward_cast"`
	DashToMax       bool          `yaml:"dash_to_max"`
	StopAtObstacle  bool          `yaml:"stop_at_obstacle"`
	ObstacleMargin  float64       `yaml:"obstacle_margin"`
}

// ProcsConfig holds lifesteal, transfer and the conditional heal.
type ProcsConfig struct {
	TransferSearchRadius float64 `yaml:"transfer_search_radius"`
	TransferMaxTargets   int     `yaml:"transfer_max_targets"`
	HealThreshold        float64 `yaml:"heal_threshold"`
	OnlyBasicAttack      bool    `yaml:"only_basic_attack"`
}

// WavesConfig holds run routing and spawning.
type WavesConfig struct {
	ContentID     string        `yaml:"content_id" env:"WAVEFALL_CONTENT"`
	ContentStep   int           `yaml:"content_step" env:"WAVEFALL_CONTENT_STEP"`
	StageStep     int           `yaml:"stage_step" env:"WAVEFALL_STAGE_STEP"`
	UseRouting    bool          `yaml:"use_routing"`
	StartWaveID   string        `yaml:"start_wave_id" env:"WAVEFALL_START_WAVE"`
	NextWaveDelay time.Duration `yaml:"next_wave_delay"`
	SpawnRadius   float64       `yaml:"spawn_radius"`
}

// ArenaConfig holds the static layout of the play field.
type ArenaConfig struct {
	Obstacles []ObstacleConfig `yaml:"obstacles"`
}

// ObstacleConfig is an axis-aligned blocking rect on the ground plane.
type ObstacleConfig struct {
	MinX float64 `yaml:"min_x"`
	MinZ float64 `yaml:"min_z"`
	MaxX float64 `yaml:"max_x"`
	MaxZ float64 `yaml:"max_z"`
}

// StoreConfig selects where finished runs are recorded.
type StoreConfig struct {
	Driver     string         `yaml:"driver" env:"WAVEFALL_STORE_DRIVER"`
	SQLitePath string         `yaml:"sqlite_path" env:"WAVEFALL_SQLITE_PATH"`
	DSN        string         `yaml:"dsn" env:"WAVEFALL_STORE_DSN"` // overrides Database when set
	Database   DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// PostgresDSN returns the explicit DSN or one built from Database.
func (s StoreConfig) PostgresDSN() string {
	if dsn := strings.TrimSpace(s.DSN); dsn != "" {
		return dsn
	}
	return s.Database.DSN()
}

// DefaultSim returns the tuning the simulator ships with.
func DefaultSim() Sim {
	return Sim{
		LogLevel:    "info",
		CatalogPath: "config/catalog.yaml",
		Character:   "Char01",
		Tick: TickConfig{
			Step:        50 * time.Millisecond,
			MaxDuration: 30 * time.Minute,
		},
		Stats: StatsConfig{
			BuffPolicy:      "multiplicative",
			CrpToChance:     0.01,
			CrdToBonus:      0.01,
			RefillOnLevelUp: true,
			KeepHPRatio:     true,
		},
		Combat: CombatConfig{
			DefenseK:          100,
			BaseCritBonus:     0.5,
			ArcAngleDeg:       90,
			RangeScale:        1,
			MinRadius:         0.25,
			MaxRadius:         50,
			MinCooldown:       50 * time.Millisecond,
			FallbackCooldown:  time.Second,
			MonsterRangeScale: 1,
		},
		Skills: SkillsConfig{
			AutoPick:             true,
			OfferCount:           3,
			MaxSkillLevel:        5,
			ExcludeCooldownSkill: true,
			CooldownSkillID:      "Skill011",
			ExclusiveCooldown:    10,
			HealCooldown:         30,
			TransferCooldown:     10,
		},
		Exclusive: ExclusiveConfig{
			AcquireRadius:   3,
			PreDelay:        time.Second,
			DashDuration:    70 * time.Millisecond,
			MaxDashDistance: 3,
			BoxWidth:        2.5,
			BoxHeight:       2,
			AllowCritical:   true,
			RequireTarget:   true,
			DashToMax:       true,
			StopAtObstacle:  true,
			ObstacleMargin:  0.05,
		},
		Procs: ProcsConfig{
			TransferSearchRadius: 8,
			TransferMaxTargets:   5,
			HealThreshold:        0.3,
			OnlyBasicAttack:      true,
		},
		Waves: WavesConfig{
			ContentID:     "Content01",
			ContentStep:   1,
			StageStep:     1,
			UseRouting:    true,
			StartWaveID:   "Wave001",
			NextWaveDelay: time.Second,
			SpawnRadius:   20,
		},
		Store: StoreConfig{
			Driver:     StoreNone,
			SQLitePath: "wavefall.db",
			Database: DatabaseConfig{
				Host:     "127.0.0.1",
				Port:     5432,
				User:     "wavefall",
				Password: "wavefall",
				DBName:   "wavefall",
				SSLMode:  "disable",
			},
		},
	}
}

// Load loads the simulator config from a YAML file and applies WAVEFALL_*
// environment overrides. If the file doesn't exist, defaults are used.
func Load(path string) (Sim, error) {
	cfg := DefaultSim()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the simulator cannot run with.
func (s Sim) Validate() error {
	var errs []error
	if strings.TrimSpace(s.CatalogPath) == "" {
		errs = append(errs, errors.New("catalog_path is required"))
	}
	if strings.TrimSpace(s.Character) == "" {
		errs = append(errs, errors.New("character is required"))
	}
	if s.Tick.Step <= 0 {
		errs = append(errs, fmt.Errorf("tick.step must be positive, got %s", s.Tick.Step))
	}
	if s.Tick.MaxDuration < 0 {
		errs = append(errs, fmt.Errorf("tick.max_duration must not be negative, got %s", s.Tick.MaxDuration))
	}
	if s.Waves.UseRouting && strings.TrimSpace(s.Waves.ContentID) == "" {
		errs = append(errs, errors.New("waves.content_id is required when routing"))
	}
	if !s.Waves.UseRouting && strings.TrimSpace(s.Waves.StartWaveID) == "" {
		errs = append(errs, errors.New("waves.start_wave_id is required without routing"))
	}
	if s.Waves.ContentStep < 0 || s.Waves.StageStep < 0 {
		errs = append(errs, fmt.Errorf("waves steps must not be negative, got content %d stage %d",
			s.Waves.ContentStep, s.Waves.StageStep))
	}
	for i, o := range s.Arena.Obstacles {
		if o.MinX == o.MaxX || o.MinZ == o.MaxZ {
			errs = append(errs, fmt.Errorf("arena.obstacles[%d] has zero area", i))
		}
	}
	switch s.Store.Driver {
	case StoreNone, "":
	case StoreSQLite:
		if strings.TrimSpace(s.Store.SQLitePath) == "" {
			errs = append(errs, errors.New("store.sqlite_path is required for the sqlite driver"))
		}
	case StorePostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown store.driver %q", s.Store.Driver))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
