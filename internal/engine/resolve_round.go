package engine

import (
	"github.com/ericogr/energy-duel/internal/bot"
	"github.com/ericogr/energy-duel/internal/deck"
	"github.com/ericogr/energy-duel/internal/game"
)

// RoundReport is what one resolution produced.
type RoundReport struct {
	Round   int                     `json:"round"`
	Entries []game.LogEntry         `json:"entries"`
	Result  *game.Result            `json:"result,omitempty"`
	Stats   map[int]game.RoundStats `json:"stats"`
}

// StartMatch shuffles every library into a draw pile, deals opening hands
// and opens round 1.
func (e *Engine) StartMatch(m *game.Match) {
	if m.HandSize <= 0 {
		m.HandSize = e.Catalog.HandSize
	}
	for i := range m.Combatants {
		c := &m.Combatants[i]
		if c.CardLevels == nil {
			c.CardLevels = map[string]int{}
		}
		deck.Reset(c, e.Rand)
		deck.DrawToHandSize(c, m.HandSize, e.Catalog, e.Rand)
		c.Status = game.StatusIdle
	}
	m.Round = 1
	m.Result = nil
	m.Phase = game.PhasePlanning
	m.AddLog("The duel begins", game.LogInfo)
}

// EvaluateWinner applies the mode's win condition to the combatants still
// standing. It returns nil while the match goes on.
func EvaluateWinner(m *game.Match) *game.Result {
	switch m.Mode {
	case game.ModeTeam:
		var a, b int
		for i := range m.Combatants {
			c := &m.Combatants[i]
			if !standing(c) {
				continue
			}
			if c.Team == game.TeamA {
				a++
			} else if c.Team == game.TeamB {
				b++
			}
		}
		switch {
		case a == 0 && b == 0:
			return &game.Result{Outcome: game.OutcomeDraw}
		case a == 0:
			return &game.Result{Outcome: game.OutcomeWinner, WinnerTeam: game.TeamB}
		case b == 0:
			return &game.Result{Outcome: game.OutcomeWinner, WinnerTeam: game.TeamA}
		}
		return nil
	case game.ModeAdventure:
		h := m.Human()
		if h == nil || !standing(h) {
			return &game.Result{Outcome: game.OutcomeDefeat}
		}
		if !anyStanding(m.Enemies(h)) {
			return &game.Result{Outcome: game.OutcomeVictory, WinnerID: h.ID, WinnerName: h.Name}
		}
		return nil
	default:
		var last *game.Combatant
		alive := 0
		for i := range m.Combatants {
			if standing(&m.Combatants[i]) {
				alive++
				last = &m.Combatants[i]
			}
		}
		switch {
		case alive == 0:
			return &game.Result{Outcome: game.OutcomeDraw}
		case alive == 1:
			return &game.Result{Outcome: game.OutcomeWinner, WinnerID: last.ID, WinnerName: last.Name}
		}
		return nil
	}
}

func anyStanding(cs []*game.Combatant) bool {
	for _, c := range cs {
		if standing(c) {
			return true
		}
	}
	return false
}

// finalizeRound marks the fallen, checks the win condition and either ends
// the match or moves to hand management.
func (rc *roundContext) finalizeRound() {
	for i := range rc.m.Combatants {
		c := &rc.m.Combatants[i]
		if c.IsAlive && c.HP <= 0 {
			c.HP = 0
			c.IsAlive = false
			c.Status = game.StatusEliminated
			rc.add(game.LogDeath, "%s is eliminated", c.Name)
		}
	}

	if res := EvaluateWinner(rc.m); res != nil {
		rc.m.Result = res
		rc.m.Phase = game.PhaseGameOver
		switch res.Outcome {
		case game.OutcomeDraw:
			rc.add(game.LogWin, "Nobody is left standing: draw")
		case game.OutcomeDefeat:
			rc.add(game.LogWin, "Defeat")
		case game.OutcomeVictory:
			rc.add(game.LogWin, "Victory!")
		default:
			if res.WinnerTeam != "" {
				rc.add(game.LogWin, "Team %s wins", res.WinnerTeam)
			} else {
				rc.add(game.LogWin, "%s wins", res.WinnerName)
			}
		}
		return
	}

	rc.m.Phase = game.PhaseHandManagement
	for i := range rc.m.Combatants {
		c := &rc.m.Combatants[i]
		if !c.IsAlive {
			continue
		}
		c.Status = game.StatusIdle
		if c.IsHuman {
			continue
		}
		deck.DiscardIndices(c, bot.CalculateDiscard(c, rc.m.HandSize, rc.e.Catalog))
		deck.DrawToHandSize(c, rc.m.HandSize, rc.e.Catalog, rc.e.Rand)
	}
	if h := rc.m.Human(); h == nil || !h.IsAlive {
		rc.advanceRound()
	}
}

func (rc *roundContext) advanceRound() {
	rc.m.Round++
	rc.m.Phase = game.PhasePlanning
}

// FinishHandManagement discards the human's chosen hand positions, refills
// the hand and opens the next round.
func (e *Engine) FinishHandManagement(m *game.Match, indices []int) bool {
	if m.Phase != game.PhaseHandManagement {
		return false
	}
	h := m.Human()
	if h == nil || !h.IsAlive {
		return false
	}
	deck.DiscardIndices(h, indices)
	deck.DrawToHandSize(h, m.HandSize, e.Catalog, e.Rand)
	newRoundContext(e, m).advanceRound()
	return true
}

// ResolveRound applies every committed action of the round at once. When
// called during planning the bots are revealed first. It returns nil when
// the match is not waiting for a resolution.
func (e *Engine) ResolveRound(m *game.Match) *RoundReport {
	if m.Terminal() {
		return nil
	}
	if m.Phase == game.PhasePlanning {
		e.Reveal(m)
	}
	if m.Phase != game.PhaseRevealing {
		return nil
	}
	m.Phase = game.PhaseResolving
	round := m.Round
	rc := newRoundContext(e, m)

	plans := rc.buildPlans()
	rc.payCosts(plans)
	rc.resolveHeals(plans)
	rc.resolveAttacks(plans)
	rc.grantKillRewards()
	stats := rc.cleanup()
	rc.finalizeRound()

	entries := make([]game.LogEntry, 0, 16)
	for _, le := range m.Log {
		if le.Round == round {
			entries = append(entries, le)
		}
	}
	return &RoundReport{Round: round, Entries: entries, Result: m.Result, Stats: stats}
}
