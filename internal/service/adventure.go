package service

import (
	"fmt"

	"github.com/ericogr/energy-duel/internal/adventure"
	"github.com/ericogr/energy-duel/internal/constants"
	"github.com/ericogr/energy-duel/internal/game"
	"github.com/ericogr/energy-duel/internal/logging"
)

func formatGold(gold int) string {
	return fmt.Sprintf("Victory! You earn %d gold", gold)
}

func formatDefeat(run *game.AdventureState) string {
	return fmt.Sprintf("Your adventure ends on stage %d, floor %d", run.Stage, run.Floor)
}

func activeRun(sess *game.Session) (*game.AdventureState, error) {
	if sess.Adventure == nil {
		return nil, ErrNoAdventure
	}
	return sess.Adventure, nil
}

// StartAdventure creates a session on the first map of a new run. An empty
// difficulty means normal.
func (s *Service) StartAdventure(class game.ClassID, diff game.Difficulty) (*game.Session, error) {
	if !s.playable(class) {
		return nil, fmt.Errorf("%w: unknown class %q", ErrInvalidSetup, class)
	}
	if diff == "" {
		diff = game.DifficultyNormal
	}
	if _, ok := s.catalog.Difficulties[diff]; !ok {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidSetup, diff)
	}
	run := s.progress.NewRun(class, diff)
	sess := &game.Session{
		Code:       newSessionCode(),
		Mode:       game.ModeAdventure,
		Phase:      game.PhaseAdventureMap,
		Seats:      2,
		Class:      class,
		Difficulty: diff,
		Adventure:  run,
	}
	sess.Note(fmt.Sprintf("Stage %d begins with %d gold", run.Stage, run.Gold), game.LogInfo)
	if err := s.create(sess); err != nil {
		return nil, err
	}
	logging.Info("adventure started", logging.Fields{
		constants.LogFieldSession: sess.Code,
		constants.LogFieldClass:   class,
		constants.LogFieldDiff:    diff,
	})
	return sess, nil
}

// SelectMapNode enters an available node. Combat nodes deal a new match,
// shops open the shop, rest and event nodes apply at once and stay on the
// map. Unavailable nodes are rejected without change.
func (s *Service) SelectMapNode(code, nodeID string) (*game.Session, bool, error) {
	return s.update(code, func(sess *game.Session) (bool, error) {
		run, err := activeRun(sess)
		if err != nil {
			return false, err
		}
		if err := requirePhase(sess, game.PhaseAdventureMap); err != nil {
			return false, err
		}
		node, ok := s.progress.SelectNode(run, nodeID)
		if !ok {
			return false, nil
		}
		sess.Message = ""
		switch {
		case node.Type.IsCombat():
			m := s.progress.BuildEncounter(run, node)
			s.engine.StartMatch(m)
			sess.Match = m
			sess.Loot = nil
			sess.Phase = m.Phase
			enemy := m.Combatant(adventure.EnemyID)
			sess.Note(fmt.Sprintf("%s blocks the way (%d HP)", enemy.Name, enemy.HP), game.LogCombat)
		case node.Type == game.NodeShop:
			sess.Phase = game.PhaseShop
			sess.Note("You enter the shop", game.LogInfo)
		case node.Type == game.NodeRest:
			got := s.progress.Rest(run)
			sess.Message = fmt.Sprintf("You rest and recover %d HP", got)
			sess.Note(sess.Message, game.LogEvent)
		case node.Type == game.NodeEvent:
			out := s.progress.ResolveEvent(run)
			sess.Message = out.Text
			sess.Note(out.Text, game.LogEvent)
		}
		logging.Info("map node selected", logging.Fields{
			constants.LogFieldSession: sess.Code,
			constants.LogFieldNode:    node.ID,
			constants.LogFieldStage:   run.Stage,
		})
		return true, nil
	})
}

// PurchaseShopItem buys one item. The notice explains a rejection in the
// returned session's Message; a rejected purchase stores nothing.
func (s *Service) PurchaseShopItem(code, itemID string) (*game.Session, bool, error) {
	return s.update(code, func(sess *game.Session) (bool, error) {
		run, err := activeRun(sess)
		if err != nil {
			return false, err
		}
		if err := requirePhase(sess, game.PhaseShop); err != nil {
			return false, err
		}
		notice, ok := s.progress.Purchase(run, itemID)
		sess.Message = notice
		if ok {
			sess.Note(notice, game.LogLoot)
		}
		return ok, nil
	})
}

func (s *Service) LeaveShop(code string) (*game.Session, error) {
	sess, _, err := s.update(code, func(sess *game.Session) (bool, error) {
		if _, err := activeRun(sess); err != nil {
			return false, err
		}
		if err := requirePhase(sess, game.PhaseShop); err != nil {
			return false, err
		}
		sess.Phase = game.PhaseAdventureMap
		sess.Message = ""
		return true, nil
	})
	return sess, err
}

// SelectLoot applies one post-battle reward and returns to the map. Beating
// the final boss rolls the run over to the next stage.
func (s *Service) SelectLoot(code string, index int) (*game.Session, bool, error) {
	return s.update(code, func(sess *game.Session) (bool, error) {
		run, err := activeRun(sess)
		if err != nil {
			return false, err
		}
		if err := requirePhase(sess, game.PhaseLoot); err != nil {
			return false, err
		}
		notice, ok := s.progress.SelectLoot(run, sess.Loot, index)
		if !ok {
			return false, nil
		}
		sess.Note(notice, game.LogLoot)
		sess.Message = notice
		if adventure.IsFinalBoss(run, run.Node(run.CurrentNodeID)) {
			s.progress.AdvanceStage(run)
			sess.Note(fmt.Sprintf("Stage %d begins", run.Stage), game.LogInfo)
			logging.Info("stage cleared", logging.Fields{
				constants.LogFieldSession: sess.Code,
				constants.LogFieldStage:   run.Stage,
			})
		}
		sess.Loot = nil
		sess.Match = nil
		sess.Phase = game.PhaseAdventureMap
		return true, nil
	})
}
