package adventure

import (
	"math"

	"github.com/ericogr/energy-duel/internal/deck"
	"github.com/ericogr/energy-duel/internal/game"
)

const (
	PlayerID = 1
	EnemyID  = 2
)

// EnemyHP scales a base HP by map row, stage, elite status and difficulty.
// The result is never below 1.
func (p *Progression) EnemyHP(base, row, stage int, elite bool, hpMod float64) int {
	rowFactor := 1 + p.Config.RowHPFactor*float64(row)
	stageFactor := 1 + p.Config.StageHPFactor*float64(stage-1)
	eliteFactor := 1.0
	if elite {
		eliteFactor = p.Config.EliteHPFactor
	}
	hp := int(math.Floor(float64(base) * rowFactor * stageFactor * eliteFactor * hpMod))
	if hp < 1 {
		return 1
	}
	return hp
}

// BuildEncounter creates the match for a combat node: the player with the
// run's deck, HP and perks against one generated opponent.
func (p *Progression) BuildEncounter(run *game.AdventureState, node *game.MapNode) *game.Match {
	cd, _ := p.Catalog.Class(run.Class)
	player := game.Combatant{
		ID:         PlayerID,
		Name:       "You",
		Team:       game.TeamA,
		Class:      run.Class,
		IsHuman:    true,
		HP:         run.HP,
		MaxHP:      run.MaxHP,
		Energy:     cd.BaseEnergy,
		MaxEnergy:  p.Catalog.MaxEnergy,
		IsAlive:    true,
		Status:     game.StatusIdle,
		Buffs:      append([]string{}, run.PermanentBuffs...),
		Library:    append([]string{}, run.Deck...),
		CardLevels: copyLevels(run.CardLevels),
	}
	if run.HasBuff(game.BuffStartEnergy) {
		player.Energy++
	}
	if run.HasBuff(game.BuffStartShield) {
		player.Shield++
	}

	enemyClass := game.ClassBoss
	if node.Type != game.NodeBoss {
		classes := p.Catalog.PlayableClasses()
		enemyClass = classes[p.Rand.Intn(len(classes))]
	}
	ed, _ := p.Catalog.Class(enemyClass)
	hpMod := p.Catalog.Difficulty(run.Difficulty).HPMod
	hp := p.EnemyHP(ed.BaseHP, node.Row, run.Stage, node.Type == game.NodeElite, hpMod)
	name := ed.Name
	if node.Type == game.NodeElite {
		name = "Elite " + name
	}
	library := deck.BuildLibrary(p.Catalog, enemyClass, 2)
	levels := map[string]int{}
	if run.Stage > 1 {
		for _, id := range library {
			levels[id] = run.Stage
		}
	}
	enemy := game.Combatant{
		ID:         EnemyID,
		Name:       name,
		Team:       game.TeamB,
		Class:      enemyClass,
		HP:         hp,
		MaxHP:      hp,
		Energy:     ed.BaseEnergy + run.Stage - 1,
		MaxEnergy:  p.Catalog.MaxEnergy,
		IsAlive:    true,
		Status:     game.StatusIdle,
		Buffs:      []string{},
		Library:    library,
		CardLevels: levels,
	}

	return &game.Match{
		Mode:       game.ModeAdventure,
		HandSize:   p.Catalog.HandSize,
		Phase:      game.PhaseLobby,
		Combatants: []game.Combatant{player, enemy},
	}
}

func copyLevels(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
