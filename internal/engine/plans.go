package engine

import (
	"github.com/ericogr/energy-duel/internal/deck"
	"github.com/ericogr/energy-duel/internal/game"
)

// --- Planned action model ---------------------------------------------
type plannedAction struct {
	actor  *game.Combatant
	card   game.Card
	cost   int
	target *game.Combatant
}

func (p plannedAction) move() game.Move { return p.card.Move }

// buildPlans turns committed actions into executable plans in seat order.
// Seats without a usable commitment gather instead.
func (rc *roundContext) buildPlans() []plannedAction {
	plans := make([]plannedAction, 0, len(rc.m.Combatants))
	gather := game.Card{Move: rc.e.Catalog.Gather(), Level: 1}

	for i := range rc.m.Combatants {
		c := &rc.m.Combatants[i]
		if !standing(c) {
			continue
		}
		c.Status = game.StatusActing
		if c.Pending == nil {
			c.Pending = &game.CommittedAction{Card: gather}
		}
		plan := plannedAction{actor: c, card: c.Pending.Card}
		plan.cost = rc.e.Catalog.Cost(plan.move(), c.Class)
		if plan.cost > c.Energy {
			rc.add(game.LogInfo, "%s cannot afford %s and charges instead", c.Name, plan.card.Label)
			if plan.card.InstanceID != "" {
				deck.ReturnToHand(c, plan.card)
			}
			c.Pending = &game.CommittedAction{Card: gather}
			plan = plannedAction{actor: c, card: gather}
		}
		if plan.move().NeedsTarget() {
			plan.target = rc.m.Combatant(c.Pending.TargetID)
		}
		plans = append(plans, plan)
	}
	return plans
}
