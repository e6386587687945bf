package engine

import (
	"github.com/ericogr/energy-duel/internal/bot"
	"github.com/ericogr/energy-duel/internal/deck"
	"github.com/ericogr/energy-duel/internal/game"
)

// botDecisionAttempts bounds how many instants a bot may chain while
// deciding its main move.
const botDecisionAttempts = 3

// gatherRequested reports whether the instance id names the gather action,
// which is always available and never held in hand.
func gatherRequested(instanceID string) bool {
	return instanceID == "" || instanceID == game.MoveCharge
}

// CommitAction locks in the end-of-round action of a combatant. It returns
// false without touching the match when the command is invalid: wrong
// phase, card not in hand, instant card, unaffordable or bad target.
// Committing again replaces the previous choice.
func (e *Engine) CommitAction(m *game.Match, combatantID int, instanceID string, targetID int) bool {
	if m.Terminal() || m.Phase != game.PhasePlanning {
		return false
	}
	c := m.Combatant(combatantID)
	if !standing(c) {
		return false
	}

	var card game.Card
	switch {
	case gatherRequested(instanceID):
		card = game.Card{Move: e.Catalog.Gather(), Level: 1}
	case c.HandIndex(instanceID) >= 0:
		card = c.Hand[c.HandIndex(instanceID)]
	case c.Pending != nil && c.Pending.Card.InstanceID == instanceID:
		card = c.Pending.Card
	default:
		return false
	}
	if card.Instant {
		return false
	}
	if e.Catalog.Cost(card.Move, c.Class) > c.Energy {
		return false
	}
	if !validTarget(m, c, card.Move, targetID) {
		return false
	}
	if !card.NeedsTarget() {
		targetID = 0
	}

	if c.Pending != nil && c.Pending.Card.InstanceID != "" && c.Pending.Card.InstanceID != card.InstanceID {
		deck.ReturnToHand(c, c.Pending.Card)
	}
	if card.InstanceID != "" {
		deck.TakeFromHand(c, card.InstanceID)
	}
	c.Pending = &game.CommittedAction{Card: card, TargetID: targetID}
	c.Status = game.StatusReady
	return true
}

// CommitInstant plays an instant card right away: it pays the cost,
// discards the card and applies its effect before the round resolves.
// Invalid commands return false and change nothing.
func (e *Engine) CommitInstant(m *game.Match, combatantID int, instanceID string, targetID int) bool {
	if m.Terminal() || m.Phase != game.PhasePlanning {
		return false
	}
	c := m.Combatant(combatantID)
	if !standing(c) {
		return false
	}
	idx := c.HandIndex(instanceID)
	if idx < 0 {
		return false
	}
	card := c.Hand[idx]
	if !card.Instant {
		return false
	}
	cost := e.Catalog.Cost(card.Move, c.Class)
	if cost > c.Energy {
		return false
	}
	if card.Kind == game.KindSacrifice && c.HP <= 1 {
		return false
	}
	if !validTarget(m, c, card.Move, targetID) {
		return false
	}

	deck.Discard(c, instanceID)
	c.Energy -= cost
	rc := newRoundContext(e, m)
	rc.add(game.LogInfo, "%s plays %s", c.Name, card.Label)
	switch card.Kind {
	case game.KindAttack:
		var targets []*game.Combatant
		if card.Area {
			targets = areaTargets(m, c)
		} else {
			targets = []*game.Combatant{m.Combatant(targetID)}
		}
		if rc.attack(c, card.Move, targets) > 0 {
			rc.onHit(c, card.Move)
		}
	case game.KindHeal:
		t := m.Combatant(targetID)
		got := t.GainHP(card.Heal)
		rc.add(game.LogInfo, "%s restores %d HP to %s", c.Name, got, t.Name)
	default:
		rc.applySelf(c, card.Move)
	}
	return true
}

// Reveal lets every bot play its instants and commit its action, then
// moves the match to the revealing phase.
func (e *Engine) Reveal(m *game.Match) {
	if m.Terminal() || m.Phase != game.PhasePlanning {
		return
	}
	for i := range m.Combatants {
		c := &m.Combatants[i]
		if c.IsHuman || !standing(c) {
			continue
		}
		e.playBot(m, c)
	}
	m.Phase = game.PhaseRevealing
}

func (e *Engine) playBot(m *game.Match, c *game.Combatant) {
	if d, ok := bot.PlanInstant(c, e.Catalog); ok {
		e.CommitInstant(m, c.ID, d.InstanceID, d.TargetID)
	}
	for i := 0; i < botDecisionAttempts && standing(c); i++ {
		d := bot.Decide(c, m, e.Catalog, e.Rand)
		if d.Move.Instant {
			if !e.CommitInstant(m, c.ID, d.InstanceID, d.TargetID) {
				break
			}
			continue
		}
		if e.CommitAction(m, c.ID, d.InstanceID, d.TargetID) {
			return
		}
		break
	}
	if c.Pending == nil && standing(c) {
		e.CommitAction(m, c.ID, "", 0)
	}
}
