package adventure

import (
	"fmt"

	"github.com/ericogr/energy-duel/internal/game"
)

// Purchase buys a shop item. Heal and max HP items apply at once; buffs
// become permanent. It returns a notice and whether gold was spent.
// Unknown items, missing gold and already owned buffs change nothing.
func (p *Progression) Purchase(run *game.AdventureState, itemID string) (string, bool) {
	item, ok := p.Catalog.ShopItem(itemID)
	if !ok {
		return "That item is not for sale", false
	}
	if item.Type == game.ItemBuff && run.HasBuff(item.ID) {
		return fmt.Sprintf("You already own %s", item.Name), false
	}
	if run.Gold < item.Cost {
		return fmt.Sprintf("Not enough gold for %s", item.Name), false
	}
	run.Gold -= item.Cost
	return applyItem(run, item), true
}

func applyItem(run *game.AdventureState, item game.ShopItem) string {
	switch item.Type {
	case game.ItemHeal:
		got := heal(run, item.Value)
		return fmt.Sprintf("%s restores %d HP", item.Name, got)
	case game.ItemMaxHP:
		run.MaxHP += item.Value
		run.MaxHPMod += item.Value
		run.HP += item.Value
		return fmt.Sprintf("%s raises max HP by %d", item.Name, item.Value)
	case game.ItemGold:
		run.Gold += item.Value
		return fmt.Sprintf("%s is worth %d gold", item.Name, item.Value)
	default:
		if !run.HasBuff(item.ID) {
			run.PermanentBuffs = append(run.PermanentBuffs, item.ID)
		}
		return fmt.Sprintf("%s acquired", item.Name)
	}
}
