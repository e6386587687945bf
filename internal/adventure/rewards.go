package adventure

import (
	"fmt"

	"github.com/ericogr/energy-duel/internal/game"
)

type EventKind string

const (
	EventHeal    EventKind = "heal"
	EventGold    EventKind = "gold"
	EventLevelUp EventKind = "level_up"
)

// EventOutcome describes what a random event did to the run.
type EventOutcome struct {
	Kind   EventKind `json:"kind"`
	Amount int       `json:"amount"`
	CardID string    `json:"card_id,omitempty"`
	Text   string    `json:"text"`
}

// ResolveEvent rolls a random event: a heal, a gold find or a level up of a
// random deck card. An empty deck turns the level up into gold.
func (p *Progression) ResolveEvent(run *game.AdventureState) EventOutcome {
	r := p.Rand.Float64()
	switch {
	case r < p.Config.EventHealChance:
		got := heal(run, p.Config.EventHeal)
		return EventOutcome{Kind: EventHeal, Amount: got, Text: fmt.Sprintf("A healing spring restores %d HP", got)}
	case r < p.Config.EventHealChance+p.Config.EventGoldChance || len(run.Deck) == 0:
		gold := p.scaleGold(run, p.Config.EventGold)
		run.Gold += gold
		return EventOutcome{Kind: EventGold, Amount: gold, Text: fmt.Sprintf("You find %d gold", gold)}
	}
	id := run.Deck[p.Rand.Intn(len(run.Deck))]
	lv := levelUp(run, id)
	return EventOutcome{Kind: EventLevelUp, Amount: lv, CardID: id, Text: fmt.Sprintf("%s rises to level %d", p.cardLabel(id), lv)}
}

func (p *Progression) cardLabel(id string) string {
	if m, ok := p.Catalog.Move(id); ok {
		return m.Label
	}
	return id
}

// BuildLoot offers the post-battle choices: maybe a perk the player lacks,
// an upgrade of an owned card, new cards to fill, and always gold.
func (p *Progression) BuildLoot(run *game.AdventureState) []game.LootChoice {
	limit := p.Config.MaxLoot
	if limit < 1 {
		limit = 1
	}
	out := make([]game.LootChoice, 0, limit)
	room := func() bool { return len(out) < limit-1 }

	if room() && p.Rand.Float64() < p.Config.LootItemChance {
		items := make([]game.ShopItem, 0, len(p.Catalog.ShopItems))
		for _, it := range p.Catalog.ShopItems {
			if it.Type == game.ItemBuff && !run.HasBuff(it.ID) {
				items = append(items, it)
			}
		}
		if len(items) > 0 {
			it := items[p.Rand.Intn(len(items))]
			out = append(out, game.LootChoice{Kind: game.LootItem, ItemID: it.ID, Label: it.Name})
		}
	}

	if room() && len(run.Deck) > 0 {
		id := run.Deck[p.Rand.Intn(len(run.Deck))]
		lv := run.CardLevels[id]
		if lv < 1 {
			lv = 1
		}
		out = append(out, game.LootChoice{Kind: game.LootUpgrade, CardID: id, Label: fmt.Sprintf("Upgrade %s to level %d", p.cardLabel(id), lv+1)})
	}

	offered := map[string]bool{}
	fresh := make([]string, 0, len(p.Catalog.LootPool))
	for _, id := range p.Catalog.LootPool {
		if !run.OwnsCard(id) && !offered[id] {
			fresh = append(fresh, id)
			offered[id] = true
		}
	}
	for room() && len(fresh) > 0 {
		i := p.Rand.Intn(len(fresh))
		id := fresh[i]
		fresh = append(fresh[:i], fresh[i+1:]...)
		out = append(out, game.LootChoice{Kind: game.LootCard, CardID: id, Label: "New card: " + p.cardLabel(id)})
	}

	gold := p.scaleGold(run, p.Config.LootGold)
	return append(out, game.LootChoice{Kind: game.LootGold, Gold: gold, Label: fmt.Sprintf("Take %d gold", gold)})
}

// SelectLoot applies the chosen loot. Owned cards level up, new cards join
// the deck. Out of range choices are rejected.
func (p *Progression) SelectLoot(run *game.AdventureState, choices []game.LootChoice, idx int) (string, bool) {
	if idx < 0 || idx >= len(choices) {
		return "", false
	}
	ch := choices[idx]
	switch ch.Kind {
	case game.LootGold:
		run.Gold += ch.Gold
		return fmt.Sprintf("Gained %d gold", ch.Gold), true
	case game.LootItem:
		item, ok := p.Catalog.ShopItem(ch.ItemID)
		if !ok {
			return "", false
		}
		return applyItem(run, item), true
	case game.LootUpgrade, game.LootCard:
		if _, ok := p.Catalog.Move(ch.CardID); !ok {
			return "", false
		}
		if run.OwnsCard(ch.CardID) {
			lv := levelUp(run, ch.CardID)
			return fmt.Sprintf("%s rises to level %d", p.cardLabel(ch.CardID), lv), true
		}
		run.Deck = append(run.Deck, ch.CardID)
		return fmt.Sprintf("%s joins your deck", p.cardLabel(ch.CardID)), true
	}
	return "", false
}
