package adventure

import (
	"fmt"
	"math"

	"github.com/ericogr/energy-duel/internal/game"
)

// Position is the normalized horizontal position of a column in a row.
func Position(col, width int) float64 {
	return float64(col+1) / float64(width+1)
}

func nodeID(stage, row, col int) string {
	return fmt.Sprintf("s%d-r%d-c%d", stage, row, col)
}

func (p *Progression) rollType(row, last int) game.NodeType {
	switch {
	case row == 0:
		return game.NodeStart
	case row == last:
		return game.NodeBoss
	case row == p.Config.ShopRow:
		return game.NodeShop
	case row%2 == 0:
		if p.Rand.Float64() < p.Config.RestChance {
			return game.NodeRest
		}
		return game.NodeEvent
	}
	r := p.Rand.Float64()
	switch {
	case r < p.Config.BattleChance:
		return game.NodeBattle
	case r < p.Config.BattleChance+p.Config.EliteChance:
		return game.NodeElite
	}
	return game.NodeEvent
}

// GenerateMap builds the node rows of a stage. Nodes link forward to every
// next-row node within LinkTolerance of their position, and at least to the
// nearest one; next-row nodes nobody reached are linked from their nearest
// predecessor so every node stays reachable.
func (p *Progression) GenerateMap(stage int) [][]game.MapNode {
	widths := p.Config.RowWidths
	last := len(widths) - 1
	rows := make([][]game.MapNode, len(widths))
	for r, w := range widths {
		rows[r] = make([]game.MapNode, w)
		for c := 0; c < w; c++ {
			status := game.NodeLocked
			if r == 0 {
				status = game.NodeAvailable
			}
			rows[r][c] = game.MapNode{
				ID:        nodeID(stage, r, c),
				Row:       r,
				Col:       c,
				Type:      p.rollType(r, last),
				Status:    status,
				NextNodes: []string{},
			}
		}
	}

	for r := 0; r < last; r++ {
		cur, next := rows[r], rows[r+1]
		reached := make([]bool, len(next))
		for i := range cur {
			x := Position(i, len(cur))
			nearest, best := 0, math.MaxFloat64
			for j := range next {
				d := math.Abs(x - Position(j, len(next)))
				if d <= p.Config.LinkTolerance {
					cur[i].NextNodes = append(cur[i].NextNodes, next[j].ID)
					reached[j] = true
				}
				if d < best {
					nearest, best = j, d
				}
			}
			if len(cur[i].NextNodes) == 0 {
				cur[i].NextNodes = append(cur[i].NextNodes, next[nearest].ID)
				reached[nearest] = true
			}
		}
		for j := range next {
			if reached[j] {
				continue
			}
			x := Position(j, len(next))
			nearest, best := 0, math.MaxFloat64
			for i := range cur {
				if d := math.Abs(x - Position(i, len(cur))); d < best {
					nearest, best = i, d
				}
			}
			cur[nearest].NextNodes = append(cur[nearest].NextNodes, next[j].ID)
		}
	}
	return rows
}

// SelectNode enters an available node: it is completed, its row siblings
// are skipped and its forward links unlock. Any other node is rejected
// without changes.
func (p *Progression) SelectNode(run *game.AdventureState, id string) (*game.MapNode, bool) {
	node := run.Node(id)
	if node == nil || node.Status != game.NodeAvailable {
		return nil, false
	}
	node.Status = game.NodeCompleted
	row := run.Map[node.Row]
	for i := range row {
		if row[i].ID != node.ID && row[i].Status != game.NodeCompleted {
			row[i].Status = game.NodeSkipped
		}
	}
	for _, next := range node.NextNodes {
		if n := run.Node(next); n != nil && n.Status == game.NodeLocked {
			n.Status = game.NodeAvailable
		}
	}
	run.Floor = node.Row
	run.CurrentNodeID = node.ID
	return node, true
}

// Available returns the ids of the nodes that can be entered next.
func Available(run *game.AdventureState) []string {
	out := make([]string, 0, 3)
	for r := range run.Map {
		for c := range run.Map[r] {
			if run.Map[r][c].Status == game.NodeAvailable {
				out = append(out, run.Map[r][c].ID)
			}
		}
	}
	return out
}
