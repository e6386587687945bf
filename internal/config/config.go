package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ericogr/energy-duel/internal/adventure"
	"github.com/ericogr/energy-duel/internal/game"

	"gopkg.in/yaml.v3"
)

// Pacing holds the presentation delays between combat phases. Auto-play
// uses the shorter pair. Zero delays disable the timers entirely.
type Pacing struct {
	RevealMS      int `json:"reveal_ms" yaml:"reveal_ms"`
	ResolveMS     int `json:"resolve_ms" yaml:"resolve_ms"`
	AutoRevealMS  int `json:"auto_reveal_ms" yaml:"auto_reveal_ms"`
	AutoResolveMS int `json:"auto_resolve_ms" yaml:"auto_resolve_ms"`
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// Reveal is the pause between locking in and resolution.
func (p Pacing) Reveal(auto bool) time.Duration {
	if auto {
		return ms(p.AutoRevealMS)
	}
	return ms(p.RevealMS)
}

// Resolve is the pause after a resolution before bots play on.
func (p Pacing) Resolve(auto bool) time.Duration {
	if auto {
		return ms(p.AutoResolveMS)
	}
	return ms(p.ResolveMS)
}

type RateLimit struct {
	PerSecond float64 `json:"per_second" yaml:"per_second"`
	Burst     int     `json:"burst" yaml:"burst"`
}

type rawConfig struct {
	Server *struct {
		Address string `json:"address" yaml:"address"`
	} `json:"server" yaml:"server"`
	Pacing            Pacing           `json:"pacing" yaml:"pacing"`
	RateLimit         RateLimit        `json:"rate_limit" yaml:"rate_limit"`
	SessionTTLMinutes int              `json:"session_ttl_minutes" yaml:"session_ttl_minutes"`
	Adventure         adventure.Config `json:"adventure" yaml:"adventure"`

	HandSize     int                                     `json:"hand_size" yaml:"hand_size"`
	MaxEnergy    int                                     `json:"max_energy" yaml:"max_energy"`
	Cards        []game.Move                             `json:"card_list" yaml:"card_list"`
	Classes      []game.ClassData                        `json:"class_list" yaml:"class_list"`
	StandardDeck []string                                `json:"standard_deck" yaml:"standard_deck"`
	LootPool     []string                                `json:"loot_pool" yaml:"loot_pool"`
	ShopItems    []game.ShopItem                         `json:"shop_items" yaml:"shop_items"`
	Difficulties map[game.Difficulty]game.DifficultyData `json:"difficulties" yaml:"difficulties"`
}

// LoadedConfig is the resolved runtime configuration.
type LoadedConfig struct {
	ServerAddress string
	Catalog       *game.Catalog
	Adventure     adventure.Config
	Pacing        Pacing
	RateLimit     RateLimit
	SessionTTL    time.Duration
}

const (
	defaultAddress    = ":8080"
	defaultSessionTTL = 60
)

func defaultPacing() Pacing {
	return Pacing{RevealMS: 1500, ResolveMS: 1500, AutoRevealMS: 300, AutoResolveMS: 500}
}

func defaultRateLimit() RateLimit {
	return RateLimit{PerSecond: 20, Burst: 40}
}

// Defaults returns the built-in configuration used when no file is given.
func Defaults() *LoadedConfig {
	return &LoadedConfig{
		ServerAddress: defaultAddress,
		Catalog:       game.DefaultCatalog(),
		Adventure:     adventure.DefaultConfig(),
		Pacing:        defaultPacing(),
		RateLimit:     defaultRateLimit(),
		SessionTTL:    defaultSessionTTL * time.Minute,
	}
}

// LoadConfig reads the configuration file at path. Files ending in .yaml or
// .yml are parsed as YAML, anything else as JSON. Every key is optional and
// overrides the built-in defaults; card, class and difficulty entries are
// merged by id, the deck lists and shop items replace the defaults. An
// empty path yields Defaults.
func LoadConfig(path string) (*LoadedConfig, error) {
	if path == "" {
		return Defaults(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	rc := rawConfig{
		Pacing:            defaultPacing(),
		RateLimit:         defaultRateLimit(),
		SessionTTLMinutes: defaultSessionTTL,
		Adventure:         adventure.DefaultConfig(),
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &rc)
	default:
		err = json.Unmarshal(b, &rc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cat, err := buildCatalog(&rc)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if err := validateAdventure(rc.Adventure); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if rc.Pacing.RevealMS < 0 || rc.Pacing.ResolveMS < 0 || rc.Pacing.AutoRevealMS < 0 || rc.Pacing.AutoResolveMS < 0 {
		return nil, fmt.Errorf("config file %s: pacing delays must not be negative", path)
	}

	addr := defaultAddress
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	ttl := rc.SessionTTLMinutes
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &LoadedConfig{
		ServerAddress: addr,
		Catalog:       cat,
		Adventure:     rc.Adventure,
		Pacing:        rc.Pacing,
		RateLimit:     rc.RateLimit,
		SessionTTL:    time.Duration(ttl) * time.Minute,
	}, nil
}

func buildCatalog(rc *rawConfig) (*game.Catalog, error) {
	cat := game.DefaultCatalog()
	if rc.HandSize > 0 {
		cat.HandSize = rc.HandSize
	}
	if rc.MaxEnergy > 0 {
		cat.MaxEnergy = rc.MaxEnergy
	}

	seen := make(map[string]struct{}, len(rc.Cards))
	for _, m := range rc.Cards {
		id := strings.TrimSpace(m.ID)
		if id == "" {
			return nil, fmt.Errorf("card entry missing 'id'")
		}
		if m.Kind == "" {
			return nil, fmt.Errorf("card '%s' missing 'kind'", id)
		}
		key := strings.ToUpper(id)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate card id '%s'", id)
		}
		seen[key] = struct{}{}
		if m.Cost < 0 {
			return nil, fmt.Errorf("card '%s' has a negative cost", id)
		}
		m.ID = id
		if m.Label == "" {
			m.Label = id
		}
		cat.Moves[id] = m
	}
	if _, ok := cat.Moves[game.MoveCharge]; !ok {
		return nil, fmt.Errorf("card list must keep the gather card '%s'", game.MoveCharge)
	}

	classSeen := make(map[game.ClassID]struct{}, len(rc.Classes))
	for _, c := range rc.Classes {
		if c.ID == "" {
			return nil, fmt.Errorf("class entry missing 'id'")
		}
		if _, dup := classSeen[c.ID]; dup {
			return nil, fmt.Errorf("duplicate class id '%s'", c.ID)
		}
		classSeen[c.ID] = struct{}{}
		if c.BaseHP < 1 {
			return nil, fmt.Errorf("class '%s' needs base_hp of at least 1", c.ID)
		}
		if c.Name == "" {
			c.Name = string(c.ID)
		}
		cat.Classes[c.ID] = c
	}

	if len(rc.StandardDeck) > 0 {
		cat.StandardDeck = rc.StandardDeck
	}
	if len(rc.LootPool) > 0 {
		cat.LootPool = rc.LootPool
	}
	if len(rc.ShopItems) > 0 {
		itemSeen := make(map[string]struct{}, len(rc.ShopItems))
		for _, it := range rc.ShopItems {
			if it.ID == "" {
				return nil, fmt.Errorf("shop item missing 'id'")
			}
			if _, dup := itemSeen[it.ID]; dup {
				return nil, fmt.Errorf("duplicate shop item id '%s'", it.ID)
			}
			itemSeen[it.ID] = struct{}{}
		}
		cat.ShopItems = rc.ShopItems
	}
	for id, d := range rc.Difficulties {
		if d.HPMod <= 0 || d.GoldMod <= 0 {
			return nil, fmt.Errorf("difficulty '%s' needs positive hp_mod and gold_mod", id)
		}
		cat.Difficulties[id] = d
	}

	check := func(where string, ids []string) error {
		for _, id := range ids {
			if _, ok := cat.Moves[id]; !ok {
				return fmt.Errorf("%s references unknown card '%s'", where, id)
			}
		}
		return nil
	}
	if err := check("standard_deck", cat.StandardDeck); err != nil {
		return nil, err
	}
	if err := check("loot_pool", cat.LootPool); err != nil {
		return nil, err
	}
	for _, c := range cat.Classes {
		if err := check(fmt.Sprintf("class '%s'", c.ID), c.BonusCards); err != nil {
			return nil, err
		}
	}
	if len(cat.PlayableClasses()) == 0 {
		return nil, fmt.Errorf("no playable class configured")
	}
	return cat, nil
}

func validateAdventure(c adventure.Config) error {
	if len(c.RowWidths) < 2 {
		return fmt.Errorf("adventure.row_widths needs at least two rows")
	}
	for i, w := range c.RowWidths {
		if w < 1 {
			return fmt.Errorf("adventure.row_widths[%d] must be at least 1", i)
		}
	}
	if c.EliteHPFactor <= 0 {
		return fmt.Errorf("adventure.elite_hp_factor must be positive")
	}
	return nil
}
