package engine

import "github.com/ericogr/energy-duel/internal/game"

// payCosts deducts each plan's cost and applies the self effects of
// non-attack cards (gathering, self damage, shields).
func (rc *roundContext) payCosts(plans []plannedAction) {
	for _, p := range plans {
		p.actor.Energy -= p.cost
		if p.move().Kind == game.KindAttack || p.move().Kind == game.KindHeal {
			continue
		}
		rc.applySelf(p.actor, p.move())
	}
}

// applySelf applies a move's effects on its own user. It backs both the
// committed self actions and the instant defend and sacrifice cards.
func (rc *roundContext) applySelf(c *game.Combatant, mv game.Move) {
	if mv.SelfDamage > 0 {
		c.TakeDamage(mv.SelfDamage)
		rc.add(game.LogCombat, "%s loses %d HP to %s", c.Name, mv.SelfDamage, mv.Label)
	}
	gain := mv.EnergyGain
	if mv.Kind == game.KindGather && mv.Tier == game.TierBasic {
		gain += rc.class(c).GatherBonus
	}
	if got := c.GainEnergy(gain); got > 0 {
		rc.add(game.LogInfo, "%s gains %d energy", c.Name, got)
	}
	if mv.Shield > 0 {
		c.Shield += mv.Shield
		rc.add(game.LogInfo, "%s raises %d shield", c.Name, mv.Shield)
	}
	if mv.Invulnerable {
		c.AddBuff(game.BuffInvulnerable)
		if c.HasBuff(game.BuffThorn) {
			c.AddBuff(game.BuffReflect)
		}
		rc.add(game.LogInfo, "%s becomes invulnerable", c.Name)
	}
	if mv.Reflect {
		c.AddBuff(game.BuffReflect)
	}
}
