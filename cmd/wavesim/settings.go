package main

import (
	"github.com/udisondev/wavefall/internal/ai"
	"github.com/udisondev/wavefall/internal/config"
	"github.com/udisondev/wavefall/internal/game/combat"
	"github.com/udisondev/wavefall/internal/game/run"
	"github.com/udisondev/wavefall/internal/game/skill"
	"github.com/udisondev/wavefall/internal/model"
	"github.com/udisondev/wavefall/internal/stats"
	"github.com/udisondev/wavefall/internal/world"
)

// sessionConfig maps the file/env config onto the run tuning. Knobs the file
// does not expose keep their package defaults.
func sessionConfig(cfg config.Sim) run.Config {
	rc := run.DefaultConfig()

	rc.CharacterID = cfg.Character
	rc.ContentID = cfg.Waves.ContentID
	rc.ContentStep = cfg.Waves.ContentStep
	rc.StageStep = cfg.Waves.StageStep
	rc.UseRouting = cfg.Waves.UseRouting
	rc.StartWaveID = cfg.Waves.StartWaveID
	rc.NextWaveDelay = cfg.Waves.NextWaveDelay
	rc.SpawnRadius = cfg.Waves.SpawnRadius
	rc.AutoPick = cfg.Skills.AutoPick

	rc.MaxLevel = cfg.Stats.MaxLevel
	rc.BuffPolicy = stats.ParseBuffPolicy(cfg.Stats.BuffPolicy)
	rc.CritScales = stats.CritScales{CrpToChance: cfg.Stats.CrpToChance, CrdToBonus: cfg.Stats.CrdToBonus}
	rc.RefillOnLevelUp = cfg.Stats.RefillOnLevelUp
	rc.KeepHPRatio = cfg.Stats.KeepHPRatio
	rc.InvincibleAfterHit = cfg.Stats.InvincibleAfterHit

	params := combat.DefaultParams()
	params.DefenseK = cfg.Combat.DefenseK
	params.BaseCritBonus = cfg.Combat.BaseCritBonus

	rc.Attack = combat.ArcConfig{
		AngleDeg:         cfg.Combat.ArcAngleDeg,
		RangeScale:       cfg.Combat.RangeScale,
		MinRadius:        cfg.Combat.MinRadius,
		MaxRadius:        cfg.Combat.MaxRadius,
		MinCooldown:      cfg.Combat.MinCooldown,
		FallbackCooldown: cfg.Combat.FallbackCooldown,
		Params:           params,
	}

	melee := ai.DefaultMeleeConfig()
	melee.RangeScale = cfg.Combat.MonsterRangeScale
	melee.Params = params
	rc.Melee = melee

	rc.Progression = skill.ProgressionConfig{
		OfferCount:           cfg.Skills.OfferCount,
		MaxSkillLevel:        cfg.Skills.MaxSkillLevel,
		ExcludeCooldownSkill: cfg.Skills.ExcludeCooldownSkill,
		CooldownSkillID:      cfg.Skills.CooldownSkillID,
		ExclusiveCooldown:    cfg.Skills.ExclusiveCooldown,
		HealCooldown:         cfg.Skills.HealCooldown,
		TransferCooldown:     cfg.Skills.TransferCooldown,
	}

	procs := skill.DefaultProcConfig()
	procs.TransferSearchRadius = cfg.Procs.TransferSearchRadius
	procs.TransferMaxTargets = cfg.Procs.TransferMaxTargets
	procs.HealThreshold = cfg.Procs.HealThreshold
	procs.OnlyBasicAttack = cfg.Procs.OnlyBasicAttack
	rc.Procs = procs

	ex := skill.DefaultExclusiveConfig()
	ex.AcquireRadius = cfg.Exclusive.AcquireRadius
	ex.PreDelay = cfg.Exclusive.PreDelay
	ex.DashDuration = cfg.Exclusive.DashDuration
	ex.MaxDashDistance = cfg.Exclusive.MaxDashDistance
	ex.BoxWidth = cfg.Exclusive.BoxWidth
	ex.BoxHeight = cfg.Exclusive.BoxHeight
	ex.BaseCritBonus = cfg.Combat.BaseCritBonus
	ex.AllowCritical = cfg.Exclusive.AllowCritical
	ex.RequireTarget = cfg.Exclusive.RequireTarget
	ex.ForwardCast = cfg.Exclusive.ForwardCast
	ex.DashToMax = cfg.Exclusive.DashToMax
	ex.StopAtObstacle = cfg.Exclusive.StopAtObstacle
	ex.ObstacleMargin = cfg.Exclusive.ObstacleMargin
	rc.Exclusive = ex

	rc.Obstacles = make([]world.Rect, 0, len(cfg.Arena.Obstacles))
	for _, o := range cfg.Arena.Obstacles {
		rc.Obstacles = append(rc.Obstacles, world.NewRect(
			model.Vec2{X: o.MinX, Z: o.MinZ},
			model.Vec2{X: o.MaxX, Z: o.MaxZ},
		))
	}

	return rc
}

func driverConfig(cfg config.TickConfig) run.DriverConfig {
	return run.DriverConfig{
		Step:        cfg.Step,
		Realtime:    cfg.Realtime,
		MaxDuration: cfg.MaxDuration,
	}
}
