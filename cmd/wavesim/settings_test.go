package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wavefall/internal/config"
	"github.com/udisondev/wavefall/internal/game/run"
	"github.com/udisondev/wavefall/internal/model"
	"github.com/udisondev/wavefall/internal/stats"
)

func TestSessionConfig_DefaultsMatchPackages(t *testing.T) {
	assert.Equal(t, run.DefaultConfig().Attack, sessionConfig(config.DefaultSim()).Attack)
	assert.Equal(t, run.DefaultConfig().Melee, sessionConfig(config.DefaultSim()).Melee)
	assert.Equal(t, run.DefaultConfig().Progression, sessionConfig(config.DefaultSim()).Progression)
	assert.Equal(t, run.DefaultConfig().Procs, sessionConfig(config.DefaultSim()).Procs)
	assert.Equal(t, run.DefaultConfig().Exclusive, sessionConfig(config.DefaultSim()).Exclusive)
	assert.Equal(t, run.DefaultConfig().CritScales, sessionConfig(config.DefaultSim()).CritScales)
}

func TestSessionConfig_Mapping(t *testing.T) {
	cfg := config.DefaultSim()
	cfg.Character = "Char02"
	cfg.Stats.BuffPolicy = "additive"
	cfg.Waves.UseRouting = false
	cfg.Waves.StartWaveID = "Wave007"
	cfg.Combat.DefenseK = 50
	cfg.Exclusive.ForwardCast = true
	cfg.Waves.ContentStep = 2
	cfg.Waves.StageStep = 3
	cfg.Arena.Obstacles = []config.ObstacleConfig{{MinX: 5, MinZ: 1, MaxX: 4, MaxZ: -1}}

	rc := sessionConfig(cfg)
	assert.Equal(t, "Char02", rc.CharacterID)
	assert.Equal(t, stats.BuffAdditive, rc.BuffPolicy)
	assert.False(t, rc.UseRouting)
	assert.Equal(t, "Wave007", rc.StartWaveID)
	assert.Equal(t, 50.0, rc.Attack.Params.DefenseK)
	assert.Equal(t, 50.0, rc.Melee.Params.DefenseK)
	assert.True(t, rc.Exclusive.ForwardCast)
	assert.Equal(t, 2, rc.ContentStep)
	assert.Equal(t, 3, rc.StageStep)
	require.Len(t, rc.Obstacles, 1)
	assert.Equal(t, model.Vec2{X: 4, Z: -1}, rc.Obstacles[0].Min, "corners are normalized")
	assert.Equal(t, model.Vec2{X: 5, Z: 1}, rc.Obstacles[0].Max)
}

func TestDriverConfig(t *testing.T) {
	dc := driverConfig(config.TickConfig{Step: 20 * time.Millisecond, Realtime: true, MaxDuration: time.Minute})
	assert.Equal(t, run.DriverConfig{Step: 20 * time.Millisecond, Realtime: true, MaxDuration: time.Minute}, dc)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("loud"))
}
