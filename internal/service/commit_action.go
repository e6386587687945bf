package service

import (
	"github.com/ericogr/energy-duel/internal/game"
)

type commitFunc func(m *game.Match, combatantID int, instanceID string, targetID int) bool

func (s *Service) commit(code, instanceID string, targetID int, fn commitFunc) (*game.Session, bool, error) {
	return s.update(code, func(sess *game.Session) (bool, error) {
		m, err := activeMatch(sess)
		if err != nil {
			return false, err
		}
		if err := requirePhase(sess, game.PhasePlanning); err != nil {
			return false, err
		}
		h := m.Human()
		if h == nil {
			return false, nil
		}
		return fn(m, h.ID, instanceID, targetID), nil
	})
}

// CommitHumanAction locks in the human's end-of-round card. An empty
// instance id selects the gather action.
func (s *Service) CommitHumanAction(code, instanceID string, targetID int) (*game.Session, bool, error) {
	return s.commit(code, instanceID, targetID, s.engine.CommitAction)
}

// CommitInstantAction plays an instant card from the human's hand.
func (s *Service) CommitInstantAction(code, instanceID string, targetID int) (*game.Session, bool, error) {
	return s.commit(code, instanceID, targetID, s.engine.CommitInstant)
}

// DiscardCards ends hand management: the listed hand positions are
// discarded, the hand refills and the next round opens.
func (s *Service) DiscardCards(code string, indices []int) (*game.Session, bool, error) {
	return s.update(code, func(sess *game.Session) (bool, error) {
		m, err := activeMatch(sess)
		if err != nil {
			return false, err
		}
		if err := requirePhase(sess, game.PhaseHandManagement); err != nil {
			return false, err
		}
		if !s.engine.FinishHandManagement(m, indices) {
			return false, nil
		}
		sess.Phase = m.Phase
		return true, nil
	})
}
