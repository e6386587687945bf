package game

// ActionKind classifies what a card does when it resolves.
type ActionKind string

const (
	KindGather    ActionKind = "gather"
	KindAttack    ActionKind = "attack"
	KindDefend    ActionKind = "defend"
	KindHeal      ActionKind = "heal"
	KindBuff      ActionKind = "buff"
	KindSacrifice ActionKind = "sacrifice"
)

// Tier is the power tier of a card. Advanced cards are usually the costly ones.
type Tier string

const (
	TierBasic    Tier = "basic"
	TierAdvanced Tier = "advanced"
)

// Move is an immutable card template. The effect fields are data driven so
// balance files can describe new cards without touching the resolver.
type Move struct {
	ID          string     `json:"id" yaml:"id"`
	Kind        ActionKind `json:"kind" yaml:"kind"`
	Tier        Tier       `json:"tier" yaml:"tier"`
	Cost        int        `json:"cost" yaml:"cost"`
	Damage      int        `json:"damage,omitempty" yaml:"damage"`
	Heal        int        `json:"heal,omitempty" yaml:"heal"`
	Label       string     `json:"label" yaml:"label"`
	Description string     `json:"description,omitempty" yaml:"description"`

	// Instant cards are applied the moment they are chosen and do not
	// occupy the end-of-round action slot.
	Instant bool `json:"instant,omitempty" yaml:"instant"`
	// Area attacks hit every living combatant except the actor.
	Area          bool `json:"area,omitempty" yaml:"area"`
	IgnoresShield bool `json:"ignores_shield,omitempty" yaml:"ignores_shield"`
	// EnergyBurst attacks deal damage equal to the actor's whole energy pool.
	EnergyBurst bool `json:"energy_burst,omitempty" yaml:"energy_burst"`
	// Hits is the number of strikes per target (0 is treated as 1).
	Hits int `json:"hits,omitempty" yaml:"hits"`

	Shield       int  `json:"shield,omitempty" yaml:"shield"`
	Invulnerable bool `json:"invulnerable,omitempty" yaml:"invulnerable"`
	Reflect      bool `json:"reflect,omitempty" yaml:"reflect"`

	SelfDamage int `json:"self_damage,omitempty" yaml:"self_damage"`
	EnergyGain int `json:"energy_gain,omitempty" yaml:"energy_gain"`

	OnHitHeal   int `json:"on_hit_heal,omitempty" yaml:"on_hit_heal"`
	OnHitEnergy int `json:"on_hit_energy,omitempty" yaml:"on_hit_energy"`
}

// Strikes returns how many times the card hits each target.
func (m Move) Strikes() int {
	if m.Hits <= 0 {
		return 1
	}
	return m.Hits
}

// NeedsTarget reports whether committing the card requires a declared target.
func (m Move) NeedsTarget() bool {
	switch m.Kind {
	case KindAttack:
		return !m.Area
	case KindHeal:
		return true
	}
	return false
}

// Card is a drawn instance of a Move. InstanceID distinguishes duplicate
// copies of the same template within one hand.
type Card struct {
	Move
	InstanceID string `json:"instance_id"`
	Level      int    `json:"level"`
}

// Team is a combatant's side.
type Team string

const (
	TeamNone Team = "none"
	TeamA    Team = "A"
	TeamB    Team = "B"
)

// CombatantStatus is the presentation status of a seat.
type CombatantStatus string

const (
	StatusIdle       CombatantStatus = "idle"
	StatusReady      CombatantStatus = "ready"
	StatusActing     CombatantStatus = "acting"
	StatusEliminated CombatantStatus = "eliminated"
)

// Buff tags. Invulnerable and Reflect only live for one round; the rest are
// permanent adventure perks carried onto the combatant at battle start.
const (
	BuffInvulnerable = "BUFF_INVULNERABLE"
	BuffReflect      = "BUFF_REFLECT"
	BuffStartEnergy  = "BUFF_START_E"
	BuffThorn        = "BUFF_THORN"
	BuffVampire      = "BUFF_VAMP"
	BuffStartShield  = "BUFF_SHIELD_START"
)

// TemporaryBuffs are cleared during round cleanup.
var TemporaryBuffs = []string{BuffInvulnerable, BuffReflect}

// CommittedAction is the end-of-round action a combatant locked in.
type CommittedAction struct {
	Card     Card `json:"card"`
	TargetID int  `json:"target_id,omitempty"`
}

// RoundStats are the "this round" counters shown by presentation.
type RoundStats struct {
	DamageTaken  int `json:"damage_taken"`
	EnergyGained int `json:"energy_gained"`
	HPRecovered  int `json:"hp_recovered"`
}

type Combatant struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Team      Team            `json:"team"`
	Class     ClassID         `json:"class"`
	IsHuman   bool            `json:"is_human"`
	HP        int             `json:"hp"`
	MaxHP     int             `json:"max_hp"`
	Energy    int             `json:"energy"`
	MaxEnergy int             `json:"max_energy"`
	Shield    int             `json:"shield"`
	IsAlive   bool            `json:"is_alive"`
	Status    CombatantStatus `json:"status"`

	Pending    *CommittedAction `json:"pending,omitempty"`
	LastAction *CommittedAction `json:"last_action,omitempty"`
	Buffs      []string         `json:"buffs"`

	Library     []string       `json:"library"`
	CardLevels  map[string]int `json:"card_levels"`
	DrawPile    []string       `json:"draw_pile"`
	Hand        []Card         `json:"hand"`
	DiscardPile []string       `json:"discard_pile"`

	Round RoundStats `json:"round"`
	// LastRound is the snapshot of Round taken at the end of resolution.
	LastRound RoundStats `json:"last_round"`
	// Struck lists combatants hit by this combatant's instant attacks this
	// round; they count for kill rewards like committed targets do.
	Struck []int `json:"struck,omitempty"`
}

func (c *Combatant) HasBuff(tag string) bool {
	for _, b := range c.Buffs {
		if b == tag {
			return true
		}
	}
	return false
}

func (c *Combatant) AddBuff(tag string) {
	if !c.HasBuff(tag) {
		c.Buffs = append(c.Buffs, tag)
	}
}

func (c *Combatant) RemoveBuff(tag string) {
	out := c.Buffs[:0]
	for _, b := range c.Buffs {
		if b != tag {
			out = append(out, b)
		}
	}
	c.Buffs = out
}

// HandIndex returns the index of the card instance in hand, or -1.
func (c *Combatant) HandIndex(instanceID string) int {
	for i := range c.Hand {
		if c.Hand[i].InstanceID == instanceID {
			return i
		}
	}
	return -1
}

// Standing reports whether c is alive and above zero HP. Combatants knocked
// out during a round keep IsAlive until the termination check.
func (c *Combatant) Standing() bool {
	return c != nil && c.IsAlive && c.HP > 0
}

// GainHP heals up to MaxHP and returns the amount actually recovered. A
// knocked out combatant cannot recover.
func (c *Combatant) GainHP(n int) int {
	if n <= 0 || c.HP <= 0 || c.HP >= c.MaxHP {
		return 0
	}
	before := c.HP
	c.HP += n
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
	got := c.HP - before
	c.Round.HPRecovered += got
	return got
}

// GainEnergy adds energy, bounded by MaxEnergy when one is set.
func (c *Combatant) GainEnergy(n int) int {
	if n <= 0 {
		return 0
	}
	before := c.Energy
	c.Energy += n
	if c.MaxEnergy > 0 && c.Energy > c.MaxEnergy {
		c.Energy = c.MaxEnergy
	}
	got := c.Energy - before
	c.Round.EnergyGained += got
	return got
}

// TakeDamage subtracts unmitigated damage from HP.
func (c *Combatant) TakeDamage(n int) {
	if n <= 0 {
		return
	}
	c.HP -= n
	c.Round.DamageTaken += n
}

// Mode is the win-condition family of a match.
type Mode string

const (
	ModeFFA       Mode = "ffa"
	ModeTeam      Mode = "team"
	ModeAdventure Mode = "adventure"
)

// Phase covers both the combat loop and the adventure meta layer.
type Phase string

const (
	PhaseLobby          Phase = "lobby"
	PhasePlanning       Phase = "planning"
	PhaseRevealing      Phase = "revealing"
	PhaseResolving      Phase = "resolving"
	PhaseHandManagement Phase = "hand_management"
	PhaseGameOver       Phase = "game_over"
	PhaseAdventureMap   Phase = "adventure_map"
	PhaseShop           Phase = "shop"
	PhaseLoot           Phase = "loot"
)

// Outcome is the terminal result of a match.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeWinner  Outcome = "winner"
	OutcomeDraw    Outcome = "draw"
	OutcomeVictory Outcome = "victory" // adventure: every opponent eliminated
	OutcomeDefeat  Outcome = "defeat"  // adventure: the human was eliminated
)

type Result struct {
	Outcome    Outcome `json:"outcome"`
	WinnerID   int     `json:"winner_id,omitempty"`
	WinnerTeam Team    `json:"winner_team,omitempty"`
	WinnerName string  `json:"winner_name,omitempty"`
}

// LogCategory tags log entries for presentation.
type LogCategory string

const (
	LogInfo   LogCategory = "info"
	LogCombat LogCategory = "combat"
	LogDeath  LogCategory = "death"
	LogWin    LogCategory = "win"
	LogLoot   LogCategory = "loot"
	LogEvent  LogCategory = "event"
)

type LogEntry struct {
	Round    int         `json:"round"`
	Text     string      `json:"text"`
	Category LogCategory `json:"category"`
}

// Match is the combat state owned by the resolution engine.
type Match struct {
	Mode       Mode        `json:"mode"`
	Round      int         `json:"round"`
	Phase      Phase       `json:"phase"`
	HandSize   int         `json:"hand_size"`
	Combatants []Combatant `json:"combatants"`
	Result     *Result     `json:"result,omitempty"`
	Log        []LogEntry  `json:"log"`
}

// Combatant returns a pointer to the combatant with the given id, or nil.
func (m *Match) Combatant(id int) *Combatant {
	for i := range m.Combatants {
		if m.Combatants[i].ID == id {
			return &m.Combatants[i]
		}
	}
	return nil
}

// Human returns the human seat, if any.
func (m *Match) Human() *Combatant {
	for i := range m.Combatants {
		if m.Combatants[i].IsHuman {
			return &m.Combatants[i]
		}
	}
	return nil
}

// Terminal reports whether the match has reached a win condition.
func (m *Match) Terminal() bool { return m.Result != nil }

// AreEnemies applies the mode's affiliation rule: in team and adventure
// matches sides decide, otherwise everyone else is an enemy.
func (m *Match) AreEnemies(a, b *Combatant) bool {
	if a.ID == b.ID {
		return false
	}
	if m.Mode == ModeFFA || a.Team == TeamNone || b.Team == TeamNone {
		return true
	}
	return a.Team != b.Team
}

// Enemies returns the standing enemies of c in seat order.
func (m *Match) Enemies(c *Combatant) []*Combatant {
	out := make([]*Combatant, 0, len(m.Combatants))
	for i := range m.Combatants {
		o := &m.Combatants[i]
		if o.Standing() && m.AreEnemies(c, o) {
			out = append(out, o)
		}
	}
	return out
}


// AddLog appends an entry stamped with the current round.
func (m *Match) AddLog(text string, cat LogCategory) {
	m.Log = append(m.Log, LogEntry{Round: m.Round, Text: text, Category: cat})
}
