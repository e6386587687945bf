package game

// NodeType is the kind of encounter a map node leads to.
type NodeType string

const (
	NodeStart  NodeType = "START"
	NodeBattle NodeType = "BATTLE"
	NodeElite  NodeType = "ELITE"
	NodeShop   NodeType = "SHOP"
	NodeRest   NodeType = "REST"
	NodeEvent  NodeType = "EVENT"
	NodeBoss   NodeType = "BOSS"
)

// IsCombat reports whether entering the node starts a battle.
func (t NodeType) IsCombat() bool {
	return t == NodeBattle || t == NodeElite || t == NodeBoss
}

type NodeStatus string

const (
	NodeLocked    NodeStatus = "LOCKED"
	NodeAvailable NodeStatus = "AVAILABLE"
	NodeCompleted NodeStatus = "COMPLETED"
	NodeSkipped   NodeStatus = "SKIPPED"
)

type MapNode struct {
	ID        string     `json:"id"`
	Row       int        `json:"row"`
	Col       int        `json:"col"`
	Type      NodeType   `json:"type"`
	Status    NodeStatus `json:"status"`
	NextNodes []string   `json:"next_nodes"`
}

// Difficulty scales enemy HP and gold income.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyNormal Difficulty = "NORMAL"
	DifficultyHard   Difficulty = "HARD"
)

type DifficultyData struct {
	Name    string  `json:"name" yaml:"name"`
	HPMod   float64 `json:"hp_mod" yaml:"hp_mod"`
	GoldMod float64 `json:"gold_mod" yaml:"gold_mod"`
}

type ShopItemType string

const (
	ItemBuff  ShopItemType = "BUFF"
	ItemHeal  ShopItemType = "HEAL"
	ItemMaxHP ShopItemType = "MAX_HP"
	ItemGold  ShopItemType = "GOLD"
)

type ShopItem struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Type        ShopItemType `json:"type" yaml:"type"`
	Cost        int          `json:"cost" yaml:"cost"`
	Value       int          `json:"value,omitempty" yaml:"value"`
	Description string       `json:"description,omitempty" yaml:"description"`
}

type LootKind string

const (
	LootItem    LootKind = "item"
	LootUpgrade LootKind = "upgrade"
	LootCard    LootKind = "card"
	LootGold    LootKind = "gold"
)

type LootChoice struct {
	Kind   LootKind `json:"kind"`
	CardID string   `json:"card_id,omitempty"`
	ItemID string   `json:"item_id,omitempty"`
	Gold   int      `json:"gold,omitempty"`
	Label  string   `json:"label"`
}

// AdventureState is the roguelike run: everything that survives between
// battles. It is discarded on defeat or when the player returns to the menu.
type AdventureState struct {
	Stage          int            `json:"stage"`
	Floor          int            `json:"floor"`
	Gold           int            `json:"gold"`
	Class          ClassID        `json:"class"`
	HP             int            `json:"hp"`
	MaxHP          int            `json:"max_hp"`
	MaxHPMod       int            `json:"max_hp_mod"`
	PermanentBuffs []string       `json:"permanent_buffs"`
	Map            [][]MapNode    `json:"map"`
	Difficulty     Difficulty     `json:"difficulty"`
	Deck           []string       `json:"deck"`
	CardLevels     map[string]int `json:"card_levels"`
	// CurrentNodeID is the node most recently entered.
	CurrentNodeID string `json:"current_node_id,omitempty"`
}

// Node returns a pointer to the node with the given id, or nil.
func (a *AdventureState) Node(id string) *MapNode {
	for r := range a.Map {
		for c := range a.Map[r] {
			if a.Map[r][c].ID == id {
				return &a.Map[r][c]
			}
		}
	}
	return nil
}

func (a *AdventureState) HasBuff(id string) bool {
	for _, b := range a.PermanentBuffs {
		if b == id {
			return true
		}
	}
	return false
}

// OwnsCard reports whether the deck contains at least one copy of id.
func (a *AdventureState) OwnsCard(id string) bool {
	for _, c := range a.Deck {
		if c == id {
			return true
		}
	}
	return false
}
