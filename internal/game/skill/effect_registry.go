package skill

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/udisondev/wavefall/internal/data"
	"github.com/udisondev/wavefall/internal/stats"
)

// pick is one resolved skill choice handed to an effect handler.
type pick struct {
	skill  data.Skill
	effect data.Effect
	level  int
	value  int
}

// effectHandler applies a picked skill of one effect type.
type effectHandler func(p *Progression, pk pick)

// effectRegistry maps effect type → handler.
// Populated by init() below.
var effectRegistry = map[data.EffectType]effectHandler{}

// registerEffect registers the handler for an effect type.
func registerEffect(t data.EffectType, h effectHandler) {
	effectRegistry[t] = h
}

// applyEffect dispatches pk to the handler of its effect type.
func applyEffect(p *Progression, pk pick) error {
	h, ok := effectRegistry[pk.effect.Type]
	if !ok {
		return fmt.Errorf("effect type not implemented: %s", pk.effect.Type)
	}
	h(p, pk)
	return nil
}

func init() {
	registerEffect(data.EffectUp, applyUp)
	registerEffect(data.EffectHeal, applyHeal)
	registerEffect(data.EffectLifeSteal, applyLifeSteal)
	registerEffect(data.EffectTransfer, applyTransfer)
}

func applyUp(p *Progression, pk pick) {
	pct := float64(pk.value)
	switch pk.effect.ReferenceStat {
	case stats.StatSkillCooldown:
		// reserved, never offered
	case stats.StatExpGain:
		p.expGain[strings.ToLower(strings.TrimSpace(pk.skill.ID))] = pct
	default:
		p.player.SetPercentBuff(pk.effect.ReferenceStat, pk.skill.ID, pct)
	}
}

func applyHeal(p *Progression, pk pick) {
	if pk.value <= 0 {
		return
	}
	if amount := percentOf(p.player.MaxHP(), float64(pk.value)); amount > 0 {
		p.player.Heal(amount)
	}
}

func applyLifeSteal(p *Progression, pk pick) {
	if p.procs == nil {
		slog.Warn("lifesteal picked without proc engine", "skillID", pk.skill.ID)
		return
	}
	p.procs.EnableLifeSteal(float64(pk.value))
}

func applyTransfer(p *Progression, pk pick) {
	if p.procs == nil {
		slog.Warn("transfer picked without proc engine", "skillID", pk.skill.ID)
		return
	}
	p.procs.EnableTransfer(pk.skill.ID, float64(pk.value), ParseCooldown(pk.skill.Cooldown, p.cfg.TransferCooldown))
}
