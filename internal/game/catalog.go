package game

import "sort"

// ClassID identifies a class archetype.
type ClassID string

const (
	ClassGuardian  ClassID = "GUARDIAN"
	ClassStriker   ClassID = "STRIKER"
	ClassChanneler ClassID = "CHANNELER"
	ClassBerserker ClassID = "BERSERKER"
	ClassArcanist  ClassID = "ARCANIST"
	ClassBoss      ClassID = "BOSS"
)

// ClassData describes an archetype and the numeric knobs of its passive.
type ClassData struct {
	ID          ClassID  `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	BaseHP      int      `json:"base_hp" yaml:"base_hp"`
	BaseEnergy  int      `json:"base_energy" yaml:"base_energy"`
	Passive     string   `json:"passive" yaml:"passive"`
	BonusCards  []string `json:"bonus_cards" yaml:"bonus_cards"`

	// AdvancedAttackDiscount lowers the cost of advanced attack cards.
	AdvancedAttackDiscount int `json:"advanced_attack_discount,omitempty" yaml:"advanced_attack_discount"`
	// GatherBonus is added to what the gather action yields.
	GatherBonus int `json:"gather_bonus,omitempty" yaml:"gather_bonus"`
	// EnergyOnDamage is gained whenever the class deals damage.
	EnergyOnDamage int `json:"energy_on_damage,omitempty" yaml:"energy_on_damage"`
}

// Card identifiers of the default catalog.
const (
	MoveCharge       = "CHARGE"
	MoveAttackLow    = "ATTACK_LOW"
	MoveDefendLow    = "DEFEND_LOW"
	MoveAttackHigh   = "ATTACK_HIGH"
	MoveDefendHigh   = "DEFEND_HIGH"
	MoveSacrifice    = "SACRIFICE"
	MoveLightShield  = "LIGHT_SHIELD"
	MoveHeal         = "HEAL"
	MoveShockwave    = "SHOCKWAVE"
	MoveDoubleStrike = "DOUBLE_STRIKE"
	MoveMeditate     = "MEDITATE"
	MoveVampStrike   = "VAMP_STRIKE"
	MoveSpikeShield  = "SPIKE_SHIELD"
	MoveArcaneBurst  = "ARCANE_BURST"
)

// Catalog is the balance data the engine reads templates from.
type Catalog struct {
	Moves            map[string]Move               `json:"moves"`
	Classes          map[ClassID]ClassData         `json:"classes"`
	StandardDeck     []string                      `json:"standard_deck"`
	MultiplayerExtra []string                      `json:"multiplayer_extra"`
	LootPool         []string                      `json:"loot_pool"`
	ShopItems        []ShopItem                    `json:"shop_items"`
	Difficulties     map[Difficulty]DifficultyData `json:"difficulties"`
	HandSize         int                           `json:"hand_size"`
	MaxEnergy        int                           `json:"max_energy"`
}

// Move looks up a template by id.
func (c *Catalog) Move(id string) (Move, bool) {
	m, ok := c.Moves[id]
	return m, ok
}

// Gather returns the always-available gather template.
func (c *Catalog) Gather() Move {
	if m, ok := c.Moves[MoveCharge]; ok {
		return m
	}
	return Move{ID: MoveCharge, Kind: KindGather, Tier: TierBasic, EnergyGain: 1, Label: "Charge"}
}

// Cost is the energy a class pays for the move after its passive discount.
func (c *Catalog) Cost(m Move, class ClassID) int {
	cost := m.Cost
	if cd, ok := c.Classes[class]; ok && m.Kind == KindAttack && m.Tier == TierAdvanced {
		cost -= cd.AdvancedAttackDiscount
	}
	if cost < 0 {
		return 0
	}
	return cost
}

func (c *Catalog) Class(id ClassID) (ClassData, bool) {
	cd, ok := c.Classes[id]
	return cd, ok
}

func (c *Catalog) ShopItem(id string) (ShopItem, bool) {
	for _, it := range c.ShopItems {
		if it.ID == id {
			return it, true
		}
	}
	return ShopItem{}, false
}

func (c *Catalog) Difficulty(d Difficulty) DifficultyData {
	if dd, ok := c.Difficulties[d]; ok {
		return dd
	}
	return DifficultyData{Name: string(d), HPMod: 1, GoldMod: 1}
}

// PlayableClasses lists every class a seat may roll, excluding the boss.
func (c *Catalog) PlayableClasses() []ClassID {
	order := []ClassID{ClassGuardian, ClassStriker, ClassChanneler, ClassBerserker, ClassArcanist}
	out := make([]ClassID, 0, len(c.Classes))
	seen := map[ClassID]bool{}
	for _, id := range order {
		if _, ok := c.Classes[id]; ok {
			out = append(out, id)
			seen[id] = true
		}
	}
	// classes added by balance files follow the built-in ones in id order
	extra := make([]ClassID, 0)
	for id := range c.Classes {
		if !seen[id] && id != ClassBoss {
			extra = append(extra, id)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// DefaultCatalog returns the built-in balance data.
func DefaultCatalog() *Catalog {
	moves := []Move{
		{ID: MoveCharge, Kind: KindGather, Tier: TierBasic, Cost: 0, EnergyGain: 1, Label: "Charge", Description: "Gain 1 energy. Does not use a card."},
		{ID: MoveAttackLow, Kind: KindAttack, Tier: TierBasic, Cost: 1, Damage: 1, OnHitHeal: 1, Label: "Pulse", Description: "Deal 1 damage. On hit restore 1 HP."},
		{ID: MoveDefendLow, Kind: KindDefend, Tier: TierBasic, Cost: 0, Shield: 1, Instant: true, Label: "Block", Description: "Instant: gain 1 shield this round."},
		{ID: MoveAttackHigh, Kind: KindAttack, Tier: TierAdvanced, Cost: 3, Damage: 2, IgnoresShield: true, OnHitHeal: 1, OnHitEnergy: 1, Label: "Spirit Bomb", Description: "Deal 2 damage ignoring shields. On hit restore 1 HP and 1 energy."},
		{ID: MoveDefendHigh, Kind: KindDefend, Tier: TierAdvanced, Cost: 1, Invulnerable: true, Instant: true, Label: "Absolute Defense", Description: "Instant: immune to all damage this round."},
		{ID: MoveSacrifice, Kind: KindSacrifice, Tier: TierBasic, Cost: 0, SelfDamage: 1, EnergyGain: 2, Instant: true, Label: "Blood Burn", Description: "Instant: lose 1 HP, gain 2 energy."},
		{ID: MoveLightShield, Kind: KindBuff, Tier: TierBasic, Cost: 1, Shield: 1, Label: "Light Shield", Description: "Gain 1 shield."},
		{ID: MoveHeal, Kind: KindHeal, Tier: TierAdvanced, Cost: 2, Heal: 1, Label: "Mend", Description: "Restore 1 HP to an ally."},
		{ID: MoveShockwave, Kind: KindAttack, Tier: TierAdvanced, Cost: 2, Damage: 1, Area: true, OnHitHeal: 1, Label: "Shockwave", Description: "Deal 1 damage to every other unit. On hit restore 1 HP."},
		{ID: MoveDoubleStrike, Kind: KindAttack, Tier: TierAdvanced, Cost: 1, Damage: 1, Hits: 2, Instant: true, Label: "Double Strike", Description: "Instant: hit the target twice for 1 damage."},
		{ID: MoveMeditate, Kind: KindGather, Tier: TierAdvanced, Cost: 0, SelfDamage: 1, EnergyGain: 2, Label: "Meditate", Description: "Lose 1 HP, gain 2 energy."},
		{ID: MoveVampStrike, Kind: KindAttack, Tier: TierAdvanced, Cost: 3, Damage: 1, IgnoresShield: true, OnHitHeal: 1, Label: "Vampire Slash", Description: "Deal 1 damage ignoring shields. On hit restore 1 HP."},
		{ID: MoveSpikeShield, Kind: KindDefend, Tier: TierAdvanced, Cost: 1, Invulnerable: true, Reflect: true, Instant: true, Label: "Spike Shield", Description: "Instant: immune to damage this round; blocked attackers take 1 damage."},
		{ID: MoveArcaneBurst, Kind: KindAttack, Tier: TierAdvanced, Cost: 0, EnergyBurst: true, Label: "Arcane Burst", Description: "Spend all energy, dealing 1 damage per energy spent."},
	}
	byID := make(map[string]Move, len(moves))
	for _, m := range moves {
		byID[m.ID] = m
	}

	classes := []ClassData{
		{ID: ClassGuardian, Name: "Guardian", Description: "High HP, reflects", BaseHP: 5, BaseEnergy: 0, Passive: "+2 base HP", BonusCards: []string{MoveSpikeShield, MoveSpikeShield}},
		{ID: ClassStriker, Name: "Striker", Description: "Cheap combos", BaseHP: 3, BaseEnergy: 0, Passive: "Advanced attacks cost 1 less", BonusCards: []string{MoveDoubleStrike, MoveDoubleStrike}, AdvancedAttackDiscount: 1},
		{ID: ClassChanneler, Name: "Channeler", Description: "High energy, area damage", BaseHP: 3, BaseEnergy: 2, Passive: "Starts battles with extra energy", BonusCards: []string{MoveShockwave, MoveShockwave}},
		{ID: ClassBerserker, Name: "Berserker", Description: "Burst and lifesteal", BaseHP: 4, BaseEnergy: 0, Passive: "Gain 1 energy when dealing damage", BonusCards: []string{MoveVampStrike, MoveVampStrike}, EnergyOnDamage: 1},
		{ID: ClassArcanist, Name: "Arcanist", Description: "Energy burst", BaseHP: 3, BaseEnergy: 0, Passive: "Charge yields 2 energy", BonusCards: []string{MoveArcaneBurst, MoveArcaneBurst}, GatherBonus: 1},
		{ID: ClassBoss, Name: "Overlord", Description: "Boss", BaseHP: 10, BaseEnergy: 2, Passive: "Overwhelming"},
	}
	classByID := make(map[ClassID]ClassData, len(classes))
	for _, c := range classes {
		classByID[c.ID] = c
	}

	return &Catalog{
		Moves:   byID,
		Classes: classByID,
		StandardDeck: []string{
			MoveAttackLow, MoveAttackLow, MoveAttackLow,
			MoveDefendLow, MoveDefendLow,
			MoveAttackHigh,
			MoveDefendHigh,
			MoveSacrifice,
			MoveLightShield, MoveLightShield,
		},
		MultiplayerExtra: []string{MoveShockwave},
		LootPool: []string{
			MoveAttackLow, MoveAttackHigh, MoveDefendHigh, MoveLightShield, MoveHeal,
			MoveShockwave, MoveDoubleStrike, MoveMeditate, MoveVampStrike, MoveSpikeShield, MoveArcaneBurst,
		},
		ShopItems: []ShopItem{
			{ID: "POTION_S", Name: "Small Potion", Type: ItemHeal, Cost: 30, Value: 1, Description: "Restore 1 HP"},
			{ID: "POTION_L", Name: "Large Potion", Type: ItemHeal, Cost: 50, Value: 3, Description: "Restore 3 HP"},
			{ID: "HEART", Name: "Heart of Life", Type: ItemMaxHP, Cost: 80, Value: 1, Description: "Max HP +1"},
			{ID: BuffStartEnergy, Name: "Charging Ring", Type: ItemBuff, Cost: 100, Description: "+1 energy at battle start"},
			{ID: BuffThorn, Name: "Thorn Armor", Type: ItemBuff, Cost: 120, Description: "Absolute defense reflects 1 damage"},
			{ID: BuffVampire, Name: "Vampire Fang", Type: ItemBuff, Cost: 150, Description: "Restore 1 HP on kill"},
			{ID: BuffStartShield, Name: "Amulet of Light", Type: ItemBuff, Cost: 90, Description: "+1 shield at battle start"},
		},
		Difficulties: map[Difficulty]DifficultyData{
			DifficultyEasy:   {Name: "Easy", HPMod: 0.6, GoldMod: 1.5},
			DifficultyNormal: {Name: "Normal", HPMod: 0.85, GoldMod: 1.2},
			DifficultyHard:   {Name: "Hard", HPMod: 1.1, GoldMod: 1.0},
		},
		HandSize:  5,
		MaxEnergy: 10,
	}
}
