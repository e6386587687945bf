// Package adventure drives the roguelike layer: the branching map, the shop,
// events, loot and the stage loop that feed the combat engine.
package adventure

import (
	"math"

	"github.com/ericogr/energy-duel/internal/deck"
	"github.com/ericogr/energy-duel/internal/game"
)

// Config holds the progression tuning. Zero values are not meaningful; start
// from DefaultConfig and override.
type Config struct {
	RowWidths     []int   `json:"row_widths" yaml:"row_widths"`
	ShopRow       int     `json:"shop_row" yaml:"shop_row"`
	LinkTolerance float64 `json:"link_tolerance" yaml:"link_tolerance"`

	// odd rows roll battle, elite, otherwise event
	BattleChance float64 `json:"battle_chance" yaml:"battle_chance"`
	EliteChance  float64 `json:"elite_chance" yaml:"elite_chance"`
	// even rows roll rest, otherwise event
	RestChance float64 `json:"rest_chance" yaml:"rest_chance"`

	EventHealChance float64 `json:"event_heal_chance" yaml:"event_heal_chance"`
	EventGoldChance float64 `json:"event_gold_chance" yaml:"event_gold_chance"`
	EventHeal       int     `json:"event_heal" yaml:"event_heal"`
	EventGold       int     `json:"event_gold" yaml:"event_gold"`
	RestHeal        int     `json:"rest_heal" yaml:"rest_heal"`

	LootItemChance float64 `json:"loot_item_chance" yaml:"loot_item_chance"`
	LootGold       int     `json:"loot_gold" yaml:"loot_gold"`
	MaxLoot        int     `json:"max_loot" yaml:"max_loot"`

	StartGold  int `json:"start_gold" yaml:"start_gold"`
	BattleGold int `json:"battle_gold" yaml:"battle_gold"`
	EliteGold  int `json:"elite_gold" yaml:"elite_gold"`
	BossGold   int `json:"boss_gold" yaml:"boss_gold"`

	RowHPFactor   float64 `json:"row_hp_factor" yaml:"row_hp_factor"`
	StageHPFactor float64 `json:"stage_hp_factor" yaml:"stage_hp_factor"`
	EliteHPFactor float64 `json:"elite_hp_factor" yaml:"elite_hp_factor"`
}

func DefaultConfig() Config {
	return Config{
		RowWidths:       []int{1, 2, 2, 3, 2, 2, 1},
		ShopRow:         3,
		LinkTolerance:   0.25,
		BattleChance:    0.6,
		EliteChance:     0.2,
		RestChance:      0.5,
		EventHealChance: 0.35,
		EventGoldChance: 0.35,
		EventHeal:       2,
		EventGold:       40,
		RestHeal:        2,
		LootItemChance:  0.6,
		LootGold:        25,
		MaxLoot:         3,
		StartGold:       50,
		BattleGold:      20,
		EliteGold:       40,
		BossGold:        80,
		RowHPFactor:     0.15,
		StageHPFactor:   0.5,
		EliteHPFactor:   1.5,
	}
}

// Progression applies the adventure rules to a run. Like the combat
// engine it keeps no state of its own.
type Progression struct {
	Catalog *game.Catalog
	Rand    game.Rand
	Config  Config
}

func New(cat *game.Catalog, rng game.Rand, cfg Config) *Progression {
	if cat == nil {
		cat = game.DefaultCatalog()
	}
	if len(cfg.RowWidths) < 2 {
		cfg.RowWidths = DefaultConfig().RowWidths
	}
	return &Progression{Catalog: cat, Rand: rng, Config: cfg}
}

// NewRun starts a fresh adventure for the chosen class.
func (p *Progression) NewRun(class game.ClassID, diff game.Difficulty) *game.AdventureState {
	cd, ok := p.Catalog.Class(class)
	if !ok {
		class = game.ClassGuardian
		cd, _ = p.Catalog.Class(class)
	}
	if _, ok := p.Catalog.Difficulties[diff]; !ok {
		diff = game.DifficultyNormal
	}
	return &game.AdventureState{
		Stage:          1,
		Floor:          0,
		Gold:           p.Config.StartGold,
		Class:          class,
		HP:             cd.BaseHP,
		MaxHP:          cd.BaseHP,
		PermanentBuffs: []string{},
		Map:            p.GenerateMap(1),
		Difficulty:     diff,
		Deck:           deck.BuildLibrary(p.Catalog, class, 2),
		CardLevels:     map[string]int{},
	}
}

func (p *Progression) goldMod(run *game.AdventureState) float64 {
	return p.Catalog.Difficulty(run.Difficulty).GoldMod
}

func (p *Progression) scaleGold(run *game.AdventureState, base int) int {
	return int(math.Floor(float64(base)*p.goldMod(run) + 1e-9))
}

// levelUp raises a card's upgrade level; missing entries count as level 1.
func levelUp(run *game.AdventureState, id string) int {
	if run.CardLevels == nil {
		run.CardLevels = map[string]int{}
	}
	lv := run.CardLevels[id]
	if lv < 1 {
		lv = 1
	}
	run.CardLevels[id] = lv + 1
	return lv + 1
}

func heal(run *game.AdventureState, n int) int {
	before := run.HP
	run.HP += n
	if run.HP > run.MaxHP {
		run.HP = run.MaxHP
	}
	return run.HP - before
}

// Rest heals the player at a rest node.
func (p *Progression) Rest(run *game.AdventureState) int {
	return heal(run, p.Config.RestHeal)
}

// AdvanceStage starts the next stage on a freshly generated map.
func (p *Progression) AdvanceStage(run *game.AdventureState) {
	run.Stage++
	run.Floor = 0
	run.CurrentNodeID = ""
	run.Map = p.GenerateMap(run.Stage)
}

// IsFinalBoss reports whether beating the node ends the stage.
func IsFinalBoss(run *game.AdventureState, node *game.MapNode) bool {
	return node != nil && node.Type == game.NodeBoss && node.Row == len(run.Map)-1
}

// CompleteBattle records a won battle: the surviving HP carries over and
// gold is awarded by node type. It returns the gold gained.
func (p *Progression) CompleteBattle(run *game.AdventureState, node *game.MapNode, hpLeft int) int {
	if hpLeft < 1 {
		hpLeft = 1
	}
	if hpLeft > run.MaxHP {
		hpLeft = run.MaxHP
	}
	run.HP = hpLeft
	base := p.Config.BattleGold
	if node != nil {
		switch node.Type {
		case game.NodeElite:
			base = p.Config.EliteGold
		case game.NodeBoss:
			base = p.Config.BossGold
		}
	}
	gold := p.scaleGold(run, base)
	run.Gold += gold
	return gold
}
