package engine

import "github.com/ericogr/energy-duel/internal/game"

func standing(c *game.Combatant) bool {
	return c.Standing()
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// areaTargets returns every living combatant except the actor.
func areaTargets(m *game.Match, actor *game.Combatant) []*game.Combatant {
	out := make([]*game.Combatant, 0, len(m.Combatants))
	for i := range m.Combatants {
		c := &m.Combatants[i]
		if c.ID != actor.ID && c.IsAlive {
			out = append(out, c)
		}
	}
	return out
}

// validTarget checks the declared target of a move: attacks need a living
// enemy, heals a living ally (self included), other moves none at all.
func validTarget(m *game.Match, actor *game.Combatant, mv game.Move, targetID int) bool {
	if !mv.NeedsTarget() {
		return true
	}
	t := m.Combatant(targetID)
	if !standing(t) {
		return false
	}
	if mv.Kind == game.KindAttack {
		return m.AreEnemies(actor, t)
	}
	return !m.AreEnemies(actor, t)
}
