package adventure

import (
	"testing"

	"github.com/ericogr/energy-duel/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixed returns f from Float64 and always the first index from Intn.
type fixed struct{ f float64 }

func (s fixed) Intn(n int) int   { return 0 }
func (s fixed) Float64() float64 { return s.f }

func newProgression(rng game.Rand) *Progression {
	return New(game.DefaultCatalog(), rng, DefaultConfig())
}

func TestGenerateMap_Shape(t *testing.T) {
	p := newProgression(game.NewRand(1))
	m := p.GenerateMap(1)

	require.Len(t, m, 7)
	for r, w := range []int{1, 2, 2, 3, 2, 2, 1} {
		assert.Len(t, m[r], w)
	}
	assert.Equal(t, game.NodeStart, m[0][0].Type)
	assert.Equal(t, game.NodeAvailable, m[0][0].Status)
	assert.Equal(t, game.NodeBoss, m[6][0].Type)
	for _, n := range m[3] {
		assert.Equal(t, game.NodeShop, n.Type)
	}
	for _, r := range []int{2, 4} {
		for _, n := range m[r] {
			assert.Contains(t, []game.NodeType{game.NodeRest, game.NodeEvent}, n.Type)
		}
	}
	for _, r := range []int{1, 5} {
		for _, n := range m[r] {
			assert.Contains(t, []game.NodeType{game.NodeBattle, game.NodeElite, game.NodeEvent}, n.Type)
		}
	}
}

func TestGenerateMap_TraversalIntegrity(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		rng := game.NewRand(seed)
		p := newProgression(rng)
		run := p.NewRun(game.ClassGuardian, game.DifficultyNormal)
		last := len(run.Map) - 1

		incoming := map[string]int{}
		for r := 0; r < last; r++ {
			for _, n := range run.Map[r] {
				require.NotEmpty(t, n.NextNodes, "seed %d node %s has no forward edge", seed, n.ID)
				for _, next := range n.NextNodes {
					target := run.Node(next)
					require.NotNil(t, target)
					assert.Equal(t, r+1, target.Row)
					incoming[next]++
				}
			}
		}
		for r := 1; r <= last; r++ {
			for _, n := range run.Map[r] {
				assert.Positive(t, incoming[n.ID], "seed %d node %s unreachable", seed, n.ID)
			}
		}

		for row := 0; row <= last; row++ {
			avail := Available(run)
			require.NotEmpty(t, avail, "seed %d row %d", seed, row)
			pick := avail[rng.Intn(len(avail))]
			node, ok := p.SelectNode(run, pick)
			require.True(t, ok)
			assert.Equal(t, row, node.Row)
			assert.Equal(t, row, run.Floor)
			for _, sib := range run.Map[row] {
				if sib.ID == pick {
					assert.Equal(t, game.NodeCompleted, sib.Status)
				} else {
					assert.Equal(t, game.NodeSkipped, sib.Status)
				}
			}
		}
		assert.Equal(t, game.NodeBoss, run.Node(run.CurrentNodeID).Type)
		assert.True(t, IsFinalBoss(run, run.Node(run.CurrentNodeID)))
		assert.Empty(t, Available(run))
	}
}

func TestSelectNode_RejectsUnavailable(t *testing.T) {
	p := newProgression(game.NewRand(3))
	run := p.NewRun(game.ClassStriker, game.DifficultyEasy)
	locked := run.Map[2][0].ID

	_, ok := p.SelectNode(run, locked)
	assert.False(t, ok)
	_, ok = p.SelectNode(run, "missing")
	assert.False(t, ok)
	assert.Equal(t, game.NodeLocked, run.Node(locked).Status)

	start := run.Map[0][0].ID
	_, ok = p.SelectNode(run, start)
	require.True(t, ok)
	_, ok = p.SelectNode(run, start)
	assert.False(t, ok, "completed nodes cannot be entered twice")
}

func TestEnemyHP(t *testing.T) {
	p := newProgression(game.NewRand(1))
	assert.Equal(t, 3, p.EnemyHP(3, 0, 1, false, 1))
	// 3 * 1.15 * 1 * 1.5 * 1.1 = 5.69
	assert.Equal(t, 5, p.EnemyHP(3, 1, 1, true, 1.1))
	// 10 * 1.9 * 1.5 * 0.85 = 24.2
	assert.Equal(t, 24, p.EnemyHP(10, 6, 2, false, 0.85))
	assert.Equal(t, 1, p.EnemyHP(1, 0, 1, false, 0.1))
}

func TestBuildEncounter(t *testing.T) {
	p := newProgression(game.NewRand(5))
	run := p.NewRun(game.ClassChanneler, game.DifficultyHard)
	run.Stage = 2
	run.HP = 2
	run.PermanentBuffs = []string{game.BuffStartEnergy, game.BuffStartShield, game.BuffThorn}
	boss := &game.MapNode{ID: "b", Row: 6, Type: game.NodeBoss}

	m := p.BuildEncounter(run, boss)
	require.Len(t, m.Combatants, 2)
	assert.Equal(t, game.ModeAdventure, m.Mode)

	player, enemy := m.Combatants[0], m.Combatants[1]
	assert.True(t, player.IsHuman)
	assert.Equal(t, 2, player.HP)
	assert.Equal(t, 3, player.Energy)
	assert.Equal(t, 1, player.Shield)
	assert.Contains(t, player.Buffs, game.BuffThorn)
	assert.ElementsMatch(t, run.Deck, player.Library)

	assert.Equal(t, game.ClassBoss, enemy.Class)
	assert.Equal(t, game.TeamB, enemy.Team)
	// 10 * 1.9 * 1.5 * 1.1
	assert.Equal(t, 31, enemy.HP)
	assert.Equal(t, 3, enemy.Energy)
	assert.Equal(t, 2, enemy.CardLevels[game.MoveAttackLow])
	assert.True(t, m.AreEnemies(&m.Combatants[0], &m.Combatants[1]))
}

func TestPurchase(t *testing.T) {
	p := newProgression(game.NewRand(1))
	run := p.NewRun(game.ClassGuardian, game.DifficultyNormal)
	run.Gold = 200
	run.HP = 2

	_, ok := p.Purchase(run, "POTION_S")
	require.True(t, ok)
	assert.Equal(t, 3, run.HP)
	assert.Equal(t, 170, run.Gold)

	_, ok = p.Purchase(run, "HEART")
	require.True(t, ok)
	assert.Equal(t, 6, run.MaxHP)
	assert.Equal(t, 4, run.HP)
	assert.Equal(t, 90, run.Gold)

	_, ok = p.Purchase(run, game.BuffStartShield)
	require.True(t, ok)
	assert.Equal(t, []string{game.BuffStartShield}, run.PermanentBuffs)
	assert.Equal(t, 0, run.Gold)

	run.Gold = 500
	notice, ok := p.Purchase(run, game.BuffStartShield)
	assert.False(t, ok)
	assert.Contains(t, notice, "already own")
	assert.Equal(t, 500, run.Gold)

	run.Gold = 10
	_, ok = p.Purchase(run, "POTION_L")
	assert.False(t, ok)
	assert.Equal(t, 10, run.Gold)

	_, ok = p.Purchase(run, "NOPE")
	assert.False(t, ok)
}

func TestResolveEvent(t *testing.T) {
	run := &game.AdventureState{HP: 1, MaxHP: 5, Difficulty: game.DifficultyEasy, Deck: []string{game.MoveAttackLow}, CardLevels: map[string]int{}}

	out := newProgression(fixed{f: 0.1}).ResolveEvent(run)
	assert.Equal(t, EventHeal, out.Kind)
	assert.Equal(t, 3, run.HP)

	out = newProgression(fixed{f: 0.5}).ResolveEvent(run)
	assert.Equal(t, EventGold, out.Kind)
	assert.Equal(t, 60, run.Gold)

	out = newProgression(fixed{f: 0.9}).ResolveEvent(run)
	assert.Equal(t, EventLevelUp, out.Kind)
	assert.Equal(t, 2, run.CardLevels[game.MoveAttackLow])

	run.Deck = nil
	out = newProgression(fixed{f: 0.9}).ResolveEvent(run)
	assert.Equal(t, EventGold, out.Kind)
	assert.Equal(t, 120, run.Gold)
}

func TestRest(t *testing.T) {
	p := newProgression(game.NewRand(1))
	run := &game.AdventureState{HP: 4, MaxHP: 5}
	assert.Equal(t, 1, p.Rest(run))
	assert.Equal(t, 5, run.HP)
}

func TestBuildLoot(t *testing.T) {
	p := newProgression(fixed{f: 0.1})
	run := p.NewRun(game.ClassGuardian, game.DifficultyHard)

	loot := p.BuildLoot(run)
	require.Len(t, loot, 3)
	assert.Equal(t, game.LootItem, loot[0].Kind)
	assert.Equal(t, game.BuffStartEnergy, loot[0].ItemID)
	assert.Equal(t, game.LootUpgrade, loot[1].Kind)
	assert.Equal(t, game.LootGold, loot[2].Kind)
	assert.Equal(t, 25, loot[2].Gold)

	p = newProgression(fixed{f: 0.9})
	loot = p.BuildLoot(run)
	require.Len(t, loot, 3)
	assert.Equal(t, game.LootUpgrade, loot[0].Kind)
	assert.Equal(t, game.LootCard, loot[1].Kind)
	assert.False(t, run.OwnsCard(loot[1].CardID))
}

func TestSelectLoot(t *testing.T) {
	p := newProgression(game.NewRand(1))
	run := p.NewRun(game.ClassGuardian, game.DifficultyHard)
	deckSize := len(run.Deck)
	choices := []game.LootChoice{
		{Kind: game.LootUpgrade, CardID: game.MoveAttackLow},
		{Kind: game.LootCard, CardID: game.MoveHeal},
		{Kind: game.LootItem, ItemID: game.BuffVampire},
		{Kind: game.LootGold, Gold: 25},
	}

	_, ok := p.SelectLoot(run, choices, 0)
	require.True(t, ok)
	assert.Equal(t, 2, run.CardLevels[game.MoveAttackLow])

	_, ok = p.SelectLoot(run, choices, 1)
	require.True(t, ok)
	assert.Len(t, run.Deck, deckSize+1)

	// picking the same card again upgrades it instead
	_, ok = p.SelectLoot(run, choices, 1)
	require.True(t, ok)
	assert.Len(t, run.Deck, deckSize+1)
	assert.Equal(t, 2, run.CardLevels[game.MoveHeal])

	_, ok = p.SelectLoot(run, choices, 2)
	require.True(t, ok)
	assert.True(t, run.HasBuff(game.BuffVampire))

	gold := run.Gold
	_, ok = p.SelectLoot(run, choices, 3)
	require.True(t, ok)
	assert.Equal(t, gold+25, run.Gold)

	_, ok = p.SelectLoot(run, choices, 7)
	assert.False(t, ok)
}

func TestCompleteBattleAndAdvanceStage(t *testing.T) {
	p := newProgression(game.NewRand(2))
	run := p.NewRun(game.ClassBerserker, game.DifficultyNormal)
	start := run.Gold

	gold := p.CompleteBattle(run, &game.MapNode{Type: game.NodeElite}, 2)
	assert.Equal(t, 48, gold)
	assert.Equal(t, start+48, run.Gold)
	assert.Equal(t, 2, run.HP)

	run.Floor = 6
	p.AdvanceStage(run)
	assert.Equal(t, 2, run.Stage)
	assert.Equal(t, 0, run.Floor)
	assert.Equal(t, "s2-r0-c0", run.Map[0][0].ID)
	assert.Equal(t, game.NodeAvailable, run.Map[0][0].Status)
}
