package skill

import "time"

// minCooldownView is the smallest duration a cooldown entry reports.
const minCooldownView = 10 * time.Millisecond

// CooldownView is one HUD cooldown entry.
type CooldownView struct {
	SkillID   string
	Exclusive bool
	Ready     bool
	Duration  time.Duration
	Remaining time.Duration
}

// cooldown is a ready-at gate on the simulation clock.
type cooldown struct {
	duration time.Duration
	readyAt  time.Duration
}

func (c *cooldown) ready(now time.Duration) bool { return now >= c.readyAt }

// arm starts the cooldown at now.
func (c *cooldown) arm(now time.Duration) { c.readyAt = now + c.duration }

func (c *cooldown) view(skillID string, now time.Duration, exclusive bool) CooldownView {
	return CooldownView{
		SkillID:   skillID,
		Exclusive: exclusive,
		Ready:     c.ready(now),
		Duration:  max(minCooldownView, c.duration),
		Remaining: max(0, c.readyAt-now),
	}
}

func orDefault(id, def string) string {
	if id == "" {
		return def
	}
	return id
}
