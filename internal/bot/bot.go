// Package bot picks actions and discards for computer controlled seats.
package bot

import (
	"github.com/ericogr/energy-duel/internal/game"
)

// AttackChance is the probability of a random attack on the fallback roll.
const AttackChance = 0.7

// MaxDiscards bounds how many cards a bot throws away per round.
const MaxDiscards = 2

// Decision is a chosen action. An empty InstanceID is the gather action.
type Decision struct {
	InstanceID string
	Move       game.Move
	TargetID   int
}

type option struct {
	instanceID string
	move       game.Move
	cost       int
}

// affordable lists the hand cards plus gather the combatant can pay for.
func affordable(c *game.Combatant, cat *game.Catalog) []option {
	opts := make([]option, 0, len(c.Hand)+1)
	for _, card := range c.Hand {
		cost := cat.Cost(card.Move, c.Class)
		if cost > c.Energy {
			continue
		}
		if card.Kind == game.KindSacrifice && c.HP <= 1 {
			continue
		}
		opts = append(opts, option{instanceID: card.InstanceID, move: card.Move, cost: cost})
	}
	return append(opts, option{move: cat.Gather()})
}

// strikeDamage estimates what one use of m does to target.
func strikeDamage(attacker, target *game.Combatant, m game.Move, cost int) int {
	if target.HasBuff(game.BuffInvulnerable) {
		return 0
	}
	per := m.Damage
	if m.EnergyBurst {
		per = attacker.Energy - cost
	}
	total := per * m.Strikes()
	if !m.IgnoresShield {
		mit := target.Shield
		if mit > total {
			mit = total
		}
		total -= mit
	}
	return total
}

func (o option) decision(target int) Decision {
	return Decision{InstanceID: o.instanceID, Move: o.move, TargetID: target}
}

// Decide picks the bot's next action and target.
func Decide(c *game.Combatant, m *game.Match, cat *game.Catalog, rng game.Rand) Decision {
	opts := affordable(c, cat)
	enemies := m.Enemies(c)

	attacks := make([]option, 0, len(opts))
	for _, o := range opts {
		if o.move.Kind == game.KindAttack && len(enemies) > 0 {
			attacks = append(attacks, o)
		}
	}
	targetFor := func(o option, enemy int) int {
		switch {
		case o.move.Kind == game.KindAttack && !o.move.Area:
			return enemies[enemy].ID
		case o.move.Kind == game.KindHeal:
			return c.ID
		}
		return 0
	}

	// kill priority
	for _, o := range attacks {
		for i, e := range enemies {
			if dmg := strikeDamage(c, e, o.move, o.cost); dmg > 0 && dmg >= e.HP {
				return o.decision(targetFor(o, i))
			}
		}
	}

	if c.HP <= 2 {
		for _, o := range opts {
			if o.move.Kind == game.KindHeal {
				return o.decision(c.ID)
			}
		}
		for _, o := range opts {
			if o.move.Kind == game.KindDefend && o.move.Invulnerable {
				return o.decision(0)
			}
		}
	}

	if c.Energy >= 3 {
		for _, o := range attacks {
			if o.move.EnergyBurst {
				return o.decision(targetFor(o, 0))
			}
		}
		for _, o := range opts {
			if o.cost < 2 {
				continue
			}
			if o.move.Kind == game.KindAttack && len(enemies) == 0 {
				continue
			}
			return o.decision(targetFor(o, 0))
		}
	}

	if c.HP > 2 {
		for _, o := range opts {
			if o.move.Kind == game.KindSacrifice {
				return o.decision(0)
			}
		}
	}

	if len(attacks) > 0 && rng.Float64() < AttackChance {
		o := attacks[rng.Intn(len(attacks))]
		return o.decision(targetFor(o, rng.Intn(len(enemies))))
	}
	pool := opts
	if len(enemies) == 0 {
		pool = pool[:0:0]
		for _, o := range opts {
			if o.move.Kind != game.KindAttack {
				pool = append(pool, o)
			}
		}
	}
	o := pool[rng.Intn(len(pool))]
	enemy := 0
	if o.move.Kind == game.KindAttack && !o.move.Area {
		enemy = rng.Intn(len(enemies))
	}
	return o.decision(targetFor(o, enemy))
}

// PlanInstant returns the instant a bot plays before its main move: a
// defend card when affordable, otherwise a sacrifice while HP is above 2.
func PlanInstant(c *game.Combatant, cat *game.Catalog) (Decision, bool) {
	opts := affordable(c, cat)
	for _, o := range opts {
		if o.move.Instant && o.move.Kind == game.KindDefend {
			return o.decision(0), true
		}
	}
	if c.HP > 2 {
		for _, o := range opts {
			if o.move.Instant && o.move.Kind == game.KindSacrifice {
				return o.decision(0), true
			}
		}
	}
	return Decision{}, false
}

// CalculateDiscard returns the hand positions a bot discards at the end of
// a round: cards it cannot hope to afford soon and heals it does not need.
// A full hand with nothing to drop sheds its first card so it keeps cycling.
func CalculateDiscard(c *game.Combatant, handSize int, cat *game.Catalog) []int {
	out := make([]int, 0, MaxDiscards)
	for i, card := range c.Hand {
		if len(out) == MaxDiscards {
			break
		}
		tooCostly := cat.Cost(card.Move, c.Class) > c.Energy+2
		wastedHeal := card.Kind == game.KindHeal && c.HP >= c.MaxHP
		if tooCostly || wastedHeal {
			out = append(out, i)
		}
	}
	if len(out) == 0 && len(c.Hand) >= handSize && len(c.Hand) > 0 {
		out = append(out, 0)
	}
	return out
}
