// Package service owns play sessions: it loads a session, applies one
// command through the engine or the adventure progression and stores the
// result. Rejected commands are not errors; they come back as accepted=false.
package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ericogr/energy-duel/internal/adventure"
	"github.com/ericogr/energy-duel/internal/engine"
	"github.com/ericogr/energy-duel/internal/game"
	"github.com/ericogr/energy-duel/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoActiveMatch   = errors.New("no active match")
	ErrWrongPhase      = errors.New("action not allowed in the current phase")
	ErrNoAdventure     = errors.New("session has no adventure")
	ErrInvalidSetup    = errors.New("invalid match setup")
)

// Options sets the pacing delays. A zero reveal delay turns the timers off:
// the caller resolves every round explicitly.
type Options struct {
	RevealDelay      time.Duration
	ResolveDelay     time.Duration
	AutoRevealDelay  time.Duration
	AutoResolveDelay time.Duration
}

func (o Options) reveal(auto bool) time.Duration {
	if auto {
		return o.AutoRevealDelay
	}
	return o.RevealDelay
}

func (o Options) resolve(auto bool) time.Duration {
	if auto {
		return o.AutoResolveDelay
	}
	return o.ResolveDelay
}

type Service struct {
	repo     storage.Repository
	catalog  *game.Catalog
	engine   *engine.Engine
	progress *adventure.Progression
	rng      game.Rand
	pacer    *Pacer
	opts     Options
	locks    sync.Map
}

// New wires a service. rng must be safe for concurrent use when pacing
// timers are enabled; game.LockedRand is.
func New(repo storage.Repository, cat *game.Catalog, advCfg adventure.Config, rng game.Rand, opts Options) *Service {
	if cat == nil {
		cat = game.DefaultCatalog()
	}
	return &Service{
		repo:     repo,
		catalog:  cat,
		engine:   engine.New(cat, rng),
		progress: adventure.New(cat, rng, advCfg),
		rng:      rng,
		pacer:    NewPacer(),
		opts:     opts,
	}
}

// Close stops every pending pacing timer.
func (s *Service) Close() {
	s.pacer.Stop()
}

func (s *Service) Catalog() *game.Catalog { return s.catalog }

func newSessionCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// lock serializes commands on one session.
func (s *Service) lock(code string) func() {
	v, _ := s.locks.LoadOrStore(code, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Service) load(code string) (*game.Session, error) {
	sess, err := s.repo.GetSessionByCode(code)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", code, err)
	}
	return sess, nil
}

func (s *Service) save(sess *game.Session) error {
	if err := s.repo.UpdateSession(sess); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("save session %s: %w", sess.Code, err)
	}
	return nil
}

func (s *Service) create(sess *game.Session) error {
	if err := s.repo.CreateSession(sess); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// update runs fn on the locked session and stores it when fn reports a
// change. The returned session reflects fn's edits even when nothing was
// stored.
func (s *Service) update(code string, fn func(sess *game.Session) (bool, error)) (*game.Session, bool, error) {
	unlock := s.lock(code)
	defer unlock()
	sess, err := s.load(code)
	if err != nil {
		return nil, false, err
	}
	changed, err := fn(sess)
	if err != nil {
		return nil, false, err
	}
	if changed {
		if err := s.save(sess); err != nil {
			return nil, false, err
		}
	}
	return sess, changed, nil
}

func (s *Service) GetSession(code string) (*game.Session, error) {
	return s.load(code)
}

func activeMatch(sess *game.Session) (*game.Match, error) {
	if sess.Match == nil {
		return nil, ErrNoActiveMatch
	}
	return sess.Match, nil
}

func requirePhase(sess *game.Session, phases ...game.Phase) error {
	for _, p := range phases {
		if sess.Phase == p {
			return nil
		}
	}
	return ErrWrongPhase
}

// QuitToMenu discards the session whatever phase it is in.
func (s *Service) QuitToMenu(code string) error {
	unlock := s.lock(code)
	s.pacer.Cancel(code)
	err := s.repo.DeleteSession(code)
	unlock()
	s.locks.Delete(code)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("delete session %s: %w", code, err)
	}
	return nil
}

// PurgeIdle drops sessions untouched for longer than ttl.
func (s *Service) PurgeIdle(ttl time.Duration) (int64, error) {
	return s.repo.PurgeIdleSessions(time.Now().Add(-ttl))
}
