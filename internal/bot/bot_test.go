package bot

import (
	"testing"

	"github.com/ericogr/energy-duel/internal/deck"
	"github.com/ericogr/energy-duel/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted pins the random fallback: Float64 returns f and Intn picks the
// first or, with last set, the final option.
type scripted struct {
	f    float64
	last bool
}

func (s scripted) Intn(n int) int {
	if s.last {
		return n - 1
	}
	return 0
}

func (s scripted) Float64() float64 { return s.f }

func card(t *testing.T, cat *game.Catalog, id string) game.Card {
	t.Helper()
	c, ok := deck.NewCard(cat, id, 1)
	require.True(t, ok, "unknown card %s", id)
	return c
}

func duel(self, enemy game.Combatant) *game.Match {
	return &game.Match{Mode: game.ModeFFA, Combatants: []game.Combatant{self, enemy}}
}

func TestDecide_LethalPriority(t *testing.T) {
	cat := game.DefaultCatalog()
	self := game.Combatant{ID: 1, HP: 1, MaxHP: 3, Energy: 3, IsAlive: true, Class: game.ClassGuardian}
	heal := card(t, cat, game.MoveHeal)
	atk := card(t, cat, game.MoveAttackLow)
	self.Hand = []game.Card{heal, atk}
	enemy := game.Combatant{ID: 2, HP: 1, MaxHP: 3, IsAlive: true}
	m := duel(self, enemy)

	d := Decide(&m.Combatants[0], m, cat, scripted{f: 0.99})
	assert.Equal(t, atk.InstanceID, d.InstanceID)
	assert.Equal(t, 2, d.TargetID)
}

func TestDecide_SkipsKnockedOutEnemies(t *testing.T) {
	cat := game.DefaultCatalog()
	atk := card(t, cat, game.MoveAttackLow)
	self := game.Combatant{ID: 1, HP: 3, MaxHP: 3, Energy: 1, IsAlive: true, Hand: []game.Card{atk}}
	down := game.Combatant{ID: 2, HP: 0, MaxHP: 3, IsAlive: true}
	weak := game.Combatant{ID: 3, HP: 1, MaxHP: 3, IsAlive: true}
	m := &game.Match{Mode: game.ModeFFA, Combatants: []game.Combatant{self, down, weak}}

	d := Decide(&m.Combatants[0], m, cat, scripted{f: 0.99})
	assert.Equal(t, atk.InstanceID, d.InstanceID)
	assert.Equal(t, 3, d.TargetID)
}

func TestDecide_LethalRespectsShieldAndInvulnerability(t *testing.T) {
	cat := game.DefaultCatalog()
	atk := card(t, cat, game.MoveAttackLow)
	self := game.Combatant{ID: 1, HP: 3, MaxHP: 3, Energy: 1, IsAlive: true, Hand: []game.Card{atk}}

	shielded := game.Combatant{ID: 2, HP: 1, MaxHP: 3, Shield: 1, IsAlive: true}
	m := duel(self, shielded)
	d := Decide(&m.Combatants[0], m, cat, scripted{f: 0.99, last: true})
	// no lethal line, so the fallback roll lands on gather
	assert.NotEqual(t, atk.InstanceID, d.InstanceID)

	guarded := game.Combatant{ID: 2, HP: 1, MaxHP: 3, IsAlive: true, Buffs: []string{game.BuffInvulnerable}}
	m = duel(self, guarded)
	d = Decide(&m.Combatants[0], m, cat, scripted{f: 0.99, last: true})
	assert.NotEqual(t, atk.InstanceID, d.InstanceID)
}

func TestDecide_LowHPPrefersHeal(t *testing.T) {
	cat := game.DefaultCatalog()
	heal := card(t, cat, game.MoveHeal)
	self := game.Combatant{ID: 1, HP: 2, MaxHP: 3, Energy: 2, IsAlive: true, Hand: []game.Card{heal}}
	m := duel(self, game.Combatant{ID: 2, HP: 3, MaxHP: 3, IsAlive: true})

	d := Decide(&m.Combatants[0], m, cat, scripted{})
	assert.Equal(t, heal.InstanceID, d.InstanceID)
	assert.Equal(t, 1, d.TargetID)
}

func TestDecide_LowHPFallsBackToAbsoluteDefense(t *testing.T) {
	cat := game.DefaultCatalog()
	wall := card(t, cat, game.MoveDefendHigh)
	self := game.Combatant{ID: 1, HP: 2, MaxHP: 3, Energy: 1, IsAlive: true, Hand: []game.Card{wall}}
	m := duel(self, game.Combatant{ID: 2, HP: 3, MaxHP: 3, IsAlive: true})

	d := Decide(&m.Combatants[0], m, cat, scripted{})
	assert.Equal(t, wall.InstanceID, d.InstanceID)
}

func TestDecide_EnergyBurstFinisher(t *testing.T) {
	cat := game.DefaultCatalog()
	burst := card(t, cat, game.MoveArcaneBurst)
	self := game.Combatant{ID: 1, HP: 3, MaxHP: 3, Energy: 3, IsAlive: true, Hand: []game.Card{burst}}
	m := duel(self, game.Combatant{ID: 2, HP: 5, MaxHP: 5, IsAlive: true})

	d := Decide(&m.Combatants[0], m, cat, scripted{f: 0.99})
	assert.Equal(t, burst.InstanceID, d.InstanceID)
	assert.Equal(t, 2, d.TargetID)
}

func TestDecide_SpendsOnCostlyCards(t *testing.T) {
	cat := game.DefaultCatalog()
	wave := card(t, cat, game.MoveShockwave)
	low := card(t, cat, game.MoveAttackLow)
	self := game.Combatant{ID: 1, HP: 3, MaxHP: 3, Energy: 3, IsAlive: true, Hand: []game.Card{low, wave}}
	m := duel(self, game.Combatant{ID: 2, HP: 5, MaxHP: 5, IsAlive: true})

	d := Decide(&m.Combatants[0], m, cat, scripted{f: 0.99})
	assert.Equal(t, wave.InstanceID, d.InstanceID)
	assert.Equal(t, 0, d.TargetID)
}

func TestDecide_SacrificesWhenHealthy(t *testing.T) {
	cat := game.DefaultCatalog()
	sac := card(t, cat, game.MoveSacrifice)
	self := game.Combatant{ID: 1, HP: 3, MaxHP: 3, Energy: 0, IsAlive: true, Hand: []game.Card{sac}}
	m := duel(self, game.Combatant{ID: 2, HP: 3, MaxHP: 3, IsAlive: true})

	d := Decide(&m.Combatants[0], m, cat, scripted{})
	assert.Equal(t, sac.InstanceID, d.InstanceID)
}

func TestDecide_NeverSacrificesAtOneHP(t *testing.T) {
	cat := game.DefaultCatalog()
	sac := card(t, cat, game.MoveSacrifice)
	self := game.Combatant{ID: 1, HP: 1, MaxHP: 3, IsAlive: true, Hand: []game.Card{sac}}
	m := duel(self, game.Combatant{ID: 2, HP: 3, MaxHP: 3, IsAlive: true})

	for i := 0; i < 20; i++ {
		d := Decide(&m.Combatants[0], m, cat, game.NewRand(int64(i)))
		assert.NotEqual(t, sac.InstanceID, d.InstanceID)
	}
}

func TestDecide_FallbackGather(t *testing.T) {
	cat := game.DefaultCatalog()
	self := game.Combatant{ID: 1, HP: 3, MaxHP: 3, IsAlive: true}
	m := duel(self, game.Combatant{ID: 2, HP: 3, MaxHP: 3, IsAlive: true})

	d := Decide(&m.Combatants[0], m, cat, scripted{})
	assert.Empty(t, d.InstanceID)
	assert.Equal(t, game.KindGather, d.Move.Kind)
}

func TestDecide_StrikerDiscountMakesSpiritBombAffordable(t *testing.T) {
	cat := game.DefaultCatalog()
	bomb := card(t, cat, game.MoveAttackHigh)
	self := game.Combatant{ID: 1, HP: 3, MaxHP: 3, Energy: 2, IsAlive: true, Class: game.ClassStriker, Hand: []game.Card{bomb}}
	m := duel(self, game.Combatant{ID: 2, HP: 2, MaxHP: 3, IsAlive: true})

	d := Decide(&m.Combatants[0], m, cat, scripted{})
	assert.Equal(t, bomb.InstanceID, d.InstanceID)
	assert.Equal(t, 2, d.TargetID)
}

func TestPlanInstant(t *testing.T) {
	cat := game.DefaultCatalog()
	block := card(t, cat, game.MoveDefendLow)
	sac := card(t, cat, game.MoveSacrifice)

	c := &game.Combatant{ID: 1, HP: 3, MaxHP: 3, Hand: []game.Card{sac, block}}
	d, ok := PlanInstant(c, cat)
	require.True(t, ok)
	assert.Equal(t, block.InstanceID, d.InstanceID)

	c.Hand = []game.Card{sac}
	d, ok = PlanInstant(c, cat)
	require.True(t, ok)
	assert.Equal(t, sac.InstanceID, d.InstanceID)

	c.HP = 2
	_, ok = PlanInstant(c, cat)
	assert.False(t, ok)
}

func TestCalculateDiscard(t *testing.T) {
	cat := game.DefaultCatalog()
	bomb := card(t, cat, game.MoveAttackHigh)
	heal := card(t, cat, game.MoveHeal)
	low := card(t, cat, game.MoveAttackLow)

	c := &game.Combatant{HP: 3, MaxHP: 3, Energy: 0, Hand: []game.Card{low, bomb, heal, low}}
	assert.Equal(t, []int{1, 2}, CalculateDiscard(c, 5, cat))

	c.Energy = 1
	c.HP = 2
	assert.Empty(t, CalculateDiscard(c, 5, cat))

	// a full hand with nothing to drop rotates its first card
	c.Hand = []game.Card{low, low, low, low, low}
	assert.Equal(t, []int{0}, CalculateDiscard(c, 5, cat))
}
