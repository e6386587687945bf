// Package deck owns the draw pile, hand and discard pile of a combatant and
// the per-card upgrade scaling.
package deck

import (
	"fmt"
	"sort"

	"github.com/ericogr/energy-duel/internal/game"
	"github.com/google/uuid"
)

// Shuffle permutes ids in place with Fisher-Yates.
func Shuffle(ids []string, rng game.Rand) {
	for i := len(ids) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}

// ApplyLevel returns the template scaled to the given upgrade level. Levels
// of 1 or less leave the template untouched; above that, damage and heal
// grow by one per level and the label is annotated. Defend and buff cards
// only get the annotation.
func ApplyLevel(m game.Move, level int) game.Move {
	if level <= 1 {
		return m
	}
	bonus := level - 1
	if m.Damage > 0 {
		m.Damage += bonus
	}
	if m.Heal > 0 {
		m.Heal += bonus
	}
	m.Label = fmt.Sprintf("%s Lv%d", m.Label, level)
	return m
}

// NewCard resolves a template id into a fresh card instance.
func NewCard(cat *game.Catalog, id string, level int) (game.Card, bool) {
	m, ok := cat.Move(id)
	if !ok {
		return game.Card{}, false
	}
	if level < 1 {
		level = 1
	}
	return game.Card{Move: ApplyLevel(m, level), InstanceID: uuid.NewString(), Level: level}, true
}

// BuildLibrary returns the owned card ids for a class: the standard deck,
// the class bonus cards and, in matches with more than two seats, the
// multiplayer extras. Unknown ids are dropped.
func BuildLibrary(cat *game.Catalog, class game.ClassID, seats int) []string {
	lib := make([]string, 0, len(cat.StandardDeck)+4)
	add := func(ids []string) {
		for _, id := range ids {
			if _, ok := cat.Move(id); ok {
				lib = append(lib, id)
			}
		}
	}
	add(cat.StandardDeck)
	if cd, ok := cat.Class(class); ok {
		add(cd.BonusCards)
	}
	if seats > 2 {
		add(cat.MultiplayerExtra)
	}
	return lib
}

// Reset puts the whole library into a freshly shuffled draw pile and empties
// the hand and discard pile.
func Reset(c *game.Combatant, rng game.Rand) {
	c.DrawPile = append([]string(nil), c.Library...)
	Shuffle(c.DrawPile, rng)
	c.Hand = nil
	c.DiscardPile = nil
}

// Draw moves up to count cards from the draw pile into the hand, reshuffling
// the discard pile into the draw pile when it runs out. It returns how many
// cards were drawn; the hand may end up short when both piles are empty.
func Draw(c *game.Combatant, count int, cat *game.Catalog, rng game.Rand) int {
	if len(c.Library) == 0 || count <= 0 {
		return 0
	}
	drawn := 0
	// unknown ids go back to the discard pile; the bound keeps a pile made
	// only of them from cycling forever
	budget := 2*(len(c.DrawPile)+len(c.DiscardPile)) + count
	for drawn < count && budget > 0 {
		budget--
		if len(c.DrawPile) == 0 {
			if len(c.DiscardPile) == 0 {
				break
			}
			c.DrawPile = c.DiscardPile
			c.DiscardPile = nil
			Shuffle(c.DrawPile, rng)
		}
		last := len(c.DrawPile) - 1
		id := c.DrawPile[last]
		c.DrawPile = c.DrawPile[:last]
		card, ok := NewCard(cat, id, c.CardLevels[id])
		if !ok {
			c.DiscardPile = append(c.DiscardPile, id)
			continue
		}
		c.Hand = append(c.Hand, card)
		drawn++
	}
	return drawn
}

// DrawToHandSize refills the hand up to size.
func DrawToHandSize(c *game.Combatant, size int, cat *game.Catalog, rng game.Rand) int {
	return Draw(c, size-len(c.Hand), cat, rng)
}

// Discard moves one card instance from the hand to the discard pile.
func Discard(c *game.Combatant, instanceID string) bool {
	idx := c.HandIndex(instanceID)
	if idx < 0 {
		return false
	}
	c.DiscardPile = append(c.DiscardPile, c.Hand[idx].ID)
	c.Hand = append(c.Hand[:idx], c.Hand[idx+1:]...)
	return true
}

// DiscardIndices discards the hand cards at the given positions. Duplicate
// and out of range indices are ignored. It returns the number discarded.
func DiscardIndices(c *game.Combatant, indices []int) int {
	uniq := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(c.Hand) {
			uniq[i] = true
		}
	}
	if len(uniq) == 0 {
		return 0
	}
	sorted := make([]int, 0, len(uniq))
	for i := range uniq {
		sorted = append(sorted, i)
	}
	sort.Ints(sorted)
	keep := make([]game.Card, 0, len(c.Hand)-len(sorted))
	next := 0
	for i, card := range c.Hand {
		if next < len(sorted) && sorted[next] == i {
			c.DiscardPile = append(c.DiscardPile, card.ID)
			next++
			continue
		}
		keep = append(keep, card)
	}
	c.Hand = keep
	return len(sorted)
}

// TakeFromHand removes a card instance from the hand without discarding it.
func TakeFromHand(c *game.Combatant, instanceID string) (game.Card, bool) {
	idx := c.HandIndex(instanceID)
	if idx < 0 {
		return game.Card{}, false
	}
	card := c.Hand[idx]
	c.Hand = append(c.Hand[:idx], c.Hand[idx+1:]...)
	return card, true
}

// ReturnToHand puts a withdrawn card back into the hand.
func ReturnToHand(c *game.Combatant, card game.Card) {
	c.Hand = append(c.Hand, card)
}

// CountConservation compares the piles against the library and returns,
// per card id, the surplus (positive) or shortfall (negative). A committed
// card that left the hand but is not yet discarded is counted as held. An
// empty map means the piles are conserved.
func CountConservation(c *game.Combatant) map[string]int {
	diff := make(map[string]int)
	for _, id := range c.Library {
		diff[id]--
	}
	for _, card := range c.Hand {
		diff[card.ID]++
	}
	for _, id := range c.DrawPile {
		diff[id]++
	}
	for _, id := range c.DiscardPile {
		diff[id]++
	}
	if c.Pending != nil && c.Pending.Card.InstanceID != "" {
		diff[c.Pending.Card.ID]++
	}
	for id, n := range diff {
		if n == 0 {
			delete(diff, id)
		}
	}
	return diff
}
