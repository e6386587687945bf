package engine

import "github.com/ericogr/energy-duel/internal/game"

// resolveHeals applies every committed heal whose target still stands.
func (rc *roundContext) resolveHeals(plans []plannedAction) {
	for _, p := range plans {
		if p.move().Kind != game.KindHeal || !standing(p.target) {
			continue
		}
		got := p.target.GainHP(p.move().Heal)
		rc.add(game.LogInfo, "%s restores %d HP to %s", p.actor.Name, got, p.target.Name)
	}
}

// resolveAttacks runs the committed attacks in seat order. Knocked out
// combatants still act and on-hit rewards wait until every attack has
// landed, so the round is simultaneous.
func (rc *roundContext) resolveAttacks(plans []plannedAction) {
	hits := make([]plannedAction, 0, len(plans))
	for _, p := range plans {
		if p.move().Kind != game.KindAttack {
			continue
		}
		targets := rc.targetsOf(p)
		if len(targets) == 0 {
			rc.add(game.LogInfo, "%s's %s finds no target", p.actor.Name, p.card.Label)
			continue
		}
		if rc.attack(p.actor, p.move(), targets) > 0 {
			hits = append(hits, p)
		}
	}
	for _, p := range hits {
		rc.onHit(p.actor, p.move())
	}
}

// cleanup drops per-round state: temporary buffs, shields, committed cards
// and the round counters, which are kept as LastRound.
func (rc *roundContext) cleanup() map[int]game.RoundStats {
	stats := make(map[int]game.RoundStats, len(rc.m.Combatants))
	for i := range rc.m.Combatants {
		c := &rc.m.Combatants[i]
		for _, b := range game.TemporaryBuffs {
			c.RemoveBuff(b)
		}
		c.Shield = 0
		if c.Pending != nil {
			if c.Pending.Card.InstanceID != "" {
				c.DiscardPile = append(c.DiscardPile, c.Pending.Card.ID)
			}
			c.LastAction = c.Pending
			c.Pending = nil
		}
		c.Struck = nil
		stats[c.ID] = c.Round
		c.LastRound = c.Round
		c.Round = game.RoundStats{}
	}
	return stats
}
