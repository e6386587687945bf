package service

import (
	"errors"

	"github.com/ericogr/energy-duel/internal/constants"
	"github.com/ericogr/energy-duel/internal/dedupe"
	"github.com/ericogr/energy-duel/internal/engine"
	"github.com/ericogr/energy-duel/internal/game"
	"github.com/ericogr/energy-duel/internal/logging"
)

type resolution struct {
	session *game.Session
	report  *engine.RoundReport
}

func humanStanding(m *game.Match) bool {
	h := m.Human()
	return h != nil && h.IsAlive && h.HP > 0
}

// LockIn reveals the bots' choices. With pacing enabled the round resolves
// by itself after the reveal delay; otherwise call ResolveRound.
func (s *Service) LockIn(code string) (*game.Session, error) {
	sess, _, err := s.update(code, func(sess *game.Session) (bool, error) {
		return s.reveal(sess)
	})
	if err != nil {
		return nil, err
	}
	s.scheduleResolve(sess)
	return sess, nil
}

func (s *Service) reveal(sess *game.Session) (bool, error) {
	m, err := activeMatch(sess)
	if err != nil {
		return false, err
	}
	if err := requirePhase(sess, game.PhasePlanning); err != nil {
		return false, err
	}
	s.engine.Reveal(m)
	sess.Phase = m.Phase
	return true, nil
}

func (s *Service) scheduleResolve(sess *game.Session) {
	d := s.opts.reveal(sess.AutoPlay)
	if d <= 0 || sess.Phase != game.PhaseRevealing {
		return
	}
	code := sess.Code
	s.pacer.Schedule(code, d, func() {
		if _, _, err := s.ResolveRound(code); err != nil && !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrWrongPhase) {
			logging.Error("timed resolution failed", err, logging.Fields{constants.LogFieldSession: code})
		}
	})
}

// ResolveRound resolves the current round. Concurrent calls for the same
// session share one resolution.
func (s *Service) ResolveRound(code string) (*game.Session, *engine.RoundReport, error) {
	v, err, _ := dedupe.ResolveGroup.Do(code, func() (interface{}, error) {
		return s.resolve(code)
	})
	if err != nil {
		return nil, nil, err
	}
	out := v.(*resolution)
	return out.session, out.report, nil
}

func (s *Service) resolve(code string) (*resolution, error) {
	var report *engine.RoundReport
	sess, _, err := s.update(code, func(sess *game.Session) (bool, error) {
		m, err := activeMatch(sess)
		if err != nil {
			return false, err
		}
		if err := requirePhase(sess, game.PhasePlanning, game.PhaseRevealing); err != nil {
			return false, err
		}
		s.pacer.Cancel(code)
		report = s.engine.ResolveRound(m)
		if report == nil {
			return false, ErrWrongPhase
		}
		sess.Phase = m.Phase
		if m.Result != nil {
			s.finishMatch(sess)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	s.scheduleContinuation(sess)
	return &resolution{session: sess, report: report}, nil
}

// finishMatch moves a decided session on: adventure victories lead to loot,
// everything else ends the game.
func (s *Service) finishMatch(sess *game.Session) {
	m := sess.Match
	fields := logging.Fields{
		constants.LogFieldSession: sess.Code,
		constants.LogFieldRound:   m.Round,
		constants.LogFieldOutcome: m.Result.Outcome,
	}
	if m.Result.WinnerName != "" {
		fields[constants.LogFieldWinner] = m.Result.WinnerName
	} else if m.Result.WinnerTeam != "" {
		fields[constants.LogFieldWinner] = m.Result.WinnerTeam
	}
	logging.Info("match decided", fields)

	run := sess.Adventure
	if sess.Mode != game.ModeAdventure || run == nil {
		sess.Phase = game.PhaseGameOver
		return
	}
	switch m.Result.Outcome {
	case game.OutcomeVictory:
		node := run.Node(run.CurrentNodeID)
		hp := 1
		if h := m.Human(); h != nil {
			hp = h.HP
		}
		gold := s.progress.CompleteBattle(run, node, hp)
		sess.Loot = s.progress.BuildLoot(run)
		sess.Phase = game.PhaseLoot
		sess.Note(formatGold(gold), game.LogLoot)
	default:
		run.HP = 0
		sess.Loot = nil
		sess.Phase = game.PhaseGameOver
		sess.Note(formatDefeat(run), game.LogDeath)
	}
}

// scheduleContinuation keeps a match going once the human is out: the bots
// play on until the match is decided. Auto-play shortens the delays.
func (s *Service) scheduleContinuation(sess *game.Session) {
	m := sess.Match
	if m == nil || m.Terminal() || m.Phase != game.PhasePlanning || humanStanding(m) {
		return
	}
	d := s.opts.resolve(sess.AutoPlay)
	if d <= 0 || s.opts.reveal(sess.AutoPlay) <= 0 {
		return
	}
	code := sess.Code
	s.pacer.Schedule(code, d, func() {
		if _, err := s.LockIn(code); err != nil && !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrWrongPhase) {
			logging.Error("auto-play reveal failed", err, logging.Fields{constants.LogFieldSession: code})
		}
	})
}

// SetAutoPlay toggles the accelerated spectator pacing.
func (s *Service) SetAutoPlay(code string, on bool) (*game.Session, error) {
	sess, _, err := s.update(code, func(sess *game.Session) (bool, error) {
		sess.AutoPlay = on
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if !s.pacer.Pending(code) {
		s.scheduleContinuation(sess)
	}
	return sess, nil
}
