package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ericogr/energy-duel/internal/adventure"
	"github.com/ericogr/energy-duel/internal/deck"
	"github.com/ericogr/energy-duel/internal/game"
	"github.com/ericogr/energy-duel/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, opts Options) (*Service, storage.Repository) {
	t.Helper()
	repo := storage.NewMemoryRepository()
	svc := New(repo, game.DefaultCatalog(), adventure.DefaultConfig(), game.NewLockedRand(7), opts)
	t.Cleanup(svc.Close)
	return svc, repo
}

// edit rewrites a stored session, standing in for rounds of play.
func edit(t *testing.T, repo storage.Repository, code string, fn func(s *game.Session)) {
	t.Helper()
	s, err := repo.GetSessionByCode(code)
	require.NoError(t, err)
	fn(s)
	require.NoError(t, repo.UpdateSession(s))
}

func pulse(t *testing.T, id string) game.Card {
	t.Helper()
	card, ok := deck.NewCard(game.DefaultCatalog(), game.MoveAttackLow, 1)
	require.True(t, ok)
	card.InstanceID = id
	return card
}

// disarm leaves a combatant with no cards so its bot can only gather.
func disarm(c *game.Combatant) {
	c.Hand = nil
	c.DrawPile = nil
	c.DiscardPile = nil
	c.Library = nil
}

type failingRepo struct {
	storage.Repository
	err error
}

func (f *failingRepo) UpdateSession(*game.Session) error { return f.err }

func TestStartEncounter_FFA(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	sess, err := svc.StartEncounter(EncounterRequest{Mode: game.ModeFFA, Seats: 4, Class: game.ClassStriker})
	require.NoError(t, err)

	assert.Len(t, sess.Code, 8)
	assert.Equal(t, game.PhasePlanning, sess.Phase)
	m := sess.Match
	require.Len(t, m.Combatants, 4)
	assert.Equal(t, 1, m.Round)
	h := m.Human()
	require.NotNil(t, h)
	assert.Equal(t, 1, h.ID)
	assert.Equal(t, game.ClassStriker, h.Class)
	for _, c := range m.Combatants {
		assert.Equal(t, game.TeamNone, c.Team)
		assert.NotEqual(t, game.ClassBoss, c.Class)
		assert.Len(t, c.Hand, 5)
		assert.Empty(t, deck.CountConservation(&c))
		assert.Contains(t, c.Library, game.MoveShockwave, "more than two seats adds the multiplayer card")
	}

	stored, err := svc.GetSession(sess.Code)
	require.NoError(t, err)
	assert.Equal(t, sess.Match.Combatants[0].Hand, stored.Match.Combatants[0].Hand)
}

func TestStartEncounter_TeamSides(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	sess, err := svc.StartEncounter(EncounterRequest{Mode: game.ModeTeam, Seats: 4, Class: game.ClassGuardian})
	require.NoError(t, err)
	teams := []game.Team{}
	for _, c := range sess.Match.Combatants {
		teams = append(teams, c.Team)
	}
	assert.Equal(t, []game.Team{game.TeamA, game.TeamA, game.TeamB, game.TeamB}, teams)
}

func TestStartEncounter_InvalidSetup(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	bad := []EncounterRequest{
		{Mode: game.ModeFFA, Seats: 1, Class: game.ClassGuardian},
		{Mode: game.ModeFFA, Seats: 7, Class: game.ClassGuardian},
		{Mode: game.ModeTeam, Seats: 3, Class: game.ClassGuardian},
		{Mode: game.ModeAdventure, Seats: 2, Class: game.ClassGuardian},
		{Mode: game.ModeFFA, Seats: 2, Class: game.ClassBoss},
		{Mode: game.ModeFFA, Seats: 2, Class: "WIZARD"},
	}
	for _, req := range bad {
		_, err := svc.StartEncounter(req)
		assert.ErrorIs(t, err, ErrInvalidSetup, "%+v", req)
	}
}

func TestCommitHumanAction(t *testing.T) {
	svc, repo := newTestService(t, Options{})
	sess, err := svc.StartEncounter(EncounterRequest{Mode: game.ModeFFA, Seats: 2, Class: game.ClassGuardian})
	require.NoError(t, err)
	edit(t, repo, sess.Code, func(s *game.Session) {
		h := s.Match.Human()
		h.Hand = []game.Card{pulse(t, "p1")}
		h.DrawPile = nil
		h.Library = []string{game.MoveAttackLow}
		h.Energy = 0
	})

	_, ok, err := svc.CommitHumanAction(sess.Code, "p1", 2)
	require.NoError(t, err)
	assert.False(t, ok, "unaffordable")

	edit(t, repo, sess.Code, func(s *game.Session) { s.Match.Human().Energy = 1 })
	_, ok, err = svc.CommitHumanAction(sess.Code, "p1", 0)
	require.NoError(t, err)
	assert.False(t, ok, "missing target")

	got, ok, err := svc.CommitHumanAction(sess.Code, "p1", 2)
	require.NoError(t, err)
	require.True(t, ok)
	h := got.Match.Human()
	require.NotNil(t, h.Pending)
	assert.Equal(t, 2, h.Pending.TargetID)
	assert.Empty(t, h.Hand)

	_, ok, err = svc.CommitHumanAction(sess.Code, "", 0)
	require.NoError(t, err)
	assert.True(t, ok, "gather replaces the pending card")
	stored, err := svc.GetSession(sess.Code)
	require.NoError(t, err)
	assert.Len(t, stored.Match.Human().Hand, 1)

	_, _, err = svc.CommitHumanAction("MISSING1", "", 0)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCommitInstantAction_Sacrifice(t *testing.T) {
	svc, repo := newTestService(t, Options{})
	sess, err := svc.StartEncounter(EncounterRequest{Mode: game.ModeFFA, Seats: 2, Class: game.ClassStriker})
	require.NoError(t, err)
	card, ok := deck.NewCard(game.DefaultCatalog(), game.MoveSacrifice, 1)
	require.True(t, ok)
	edit(t, repo, sess.Code, func(s *game.Session) {
		h := s.Match.Human()
		h.Hand = []game.Card{card}
		h.HP, h.Energy = 3, 0
	})

	got, ok, err := svc.CommitInstantAction(sess.Code, card.InstanceID, 0)
	require.NoError(t, err)
	require.True(t, ok)
	h := got.Match.Human()
	assert.Equal(t, 2, h.HP)
	assert.Equal(t, 2, h.Energy)
	assert.Equal(t, game.PhasePlanning, got.Phase)
}

func TestResolveRound_HandManagementCycle(t *testing.T) {
	svc, repo := newTestService(t, Options{})
	sess, err := svc.StartEncounter(EncounterRequest{Mode: game.ModeFFA, Seats: 2, Class: game.ClassGuardian})
	require.NoError(t, err)
	edit(t, repo, sess.Code, func(s *game.Session) { disarm(&s.Match.Combatants[1]) })

	_, ok, err := svc.CommitHumanAction(sess.Code, "", 0)
	require.NoError(t, err)
	require.True(t, ok)

	got, report, err := svc.ResolveRound(sess.Code)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Round)
	assert.Nil(t, report.Result)
	assert.NotEmpty(t, report.Entries)
	assert.Equal(t, game.PhaseHandManagement, got.Phase)
	assert.Equal(t, 1, got.Match.Human().Energy)
	assert.Equal(t, 1, report.Stats[1].EnergyGained)

	_, _, err = svc.ResolveRound(sess.Code)
	assert.ErrorIs(t, err, ErrWrongPhase)
	_, _, err = svc.CommitHumanAction(sess.Code, "", 0)
	assert.ErrorIs(t, err, ErrWrongPhase)

	got, ok, err = svc.DiscardCards(sess.Code, []int{0, 1})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, game.PhasePlanning, got.Phase)
	assert.Equal(t, 2, got.Match.Round)
	assert.Len(t, got.Match.Human().Hand, 5)
	assert.Empty(t, deck.CountConservation(got.Match.Human()))
}

func TestResolveRound_FFAWin(t *testing.T) {
	svc, repo := newTestService(t, Options{})
	sess, err := svc.StartEncounter(EncounterRequest{Mode: game.ModeFFA, Seats: 2, Class: game.ClassGuardian})
	require.NoError(t, err)
	edit(t, repo, sess.Code, func(s *game.Session) {
		h := s.Match.Human()
		h.Hand = []game.Card{pulse(t, "p1")}
		h.Energy = 1
		foe := &s.Match.Combatants[1]
		disarm(foe)
		foe.HP, foe.Shield = 1, 0
	})
	_, ok, err := svc.CommitHumanAction(sess.Code, "p1", 2)
	require.NoError(t, err)
	require.True(t, ok)

	got, report, err := svc.ResolveRound(sess.Code)
	require.NoError(t, err)
	require.NotNil(t, report.Result)
	assert.Equal(t, game.OutcomeWinner, report.Result.Outcome)
	assert.Equal(t, 1, report.Result.WinnerID)
	assert.Equal(t, game.PhaseGameOver, got.Phase)
	assert.False(t, got.Match.Combatants[1].IsAlive)
}

func TestResolveRound_ConcurrentCallsResolveOnce(t *testing.T) {
	svc, repo := newTestService(t, Options{})
	sess, err := svc.StartEncounter(EncounterRequest{Mode: game.ModeFFA, Seats: 3, Class: game.ClassGuardian})
	require.NoError(t, err)
	edit(t, repo, sess.Code, func(s *game.Session) {
		for i := range s.Match.Combatants {
			disarm(&s.Match.Combatants[i])
		}
	})

	var wg sync.WaitGroup
	var mu sync.Mutex
	rounds := []int{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, report, err := svc.ResolveRound(sess.Code)
			if err != nil {
				assert.ErrorIs(t, err, ErrWrongPhase)
				return
			}
			mu.Lock()
			rounds = append(rounds, report.Round)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.NotEmpty(t, rounds)
	for _, r := range rounds {
		assert.Equal(t, 1, r)
	}
	got, err := svc.GetSession(sess.Code)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Match.Round)
	assert.Equal(t, 1, got.Match.Human().Energy, "gather applied exactly once")
}

func TestLockIn_TimedResolution(t *testing.T) {
	svc, _ := newTestService(t, Options{RevealDelay: 5 * time.Millisecond, ResolveDelay: 5 * time.Millisecond})
	sess, err := svc.StartEncounter(EncounterRequest{Mode: game.ModeFFA, Seats: 2, Class: game.ClassGuardian})
	require.NoError(t, err)

	got, err := svc.LockIn(sess.Code)
	require.NoError(t, err)
	assert.Equal(t, game.PhaseRevealing, got.Phase)

	require.Eventually(t, func() bool {
		s, err := svc.GetSession(sess.Code)
		return err == nil && s.Phase != game.PhaseRevealing
	}, 2*time.Second, 5*time.Millisecond)

	_, err = svc.LockIn(sess.Code)
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestLockIn_WithoutPacingWaitsForResolve(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	sess, err := svc.StartEncounter(EncounterRequest{Mode: game.ModeFFA, Seats: 2, Class: game.ClassGuardian})
	require.NoError(t, err)
	_, err = svc.LockIn(sess.Code)
	require.NoError(t, err)
	assert.False(t, svc.pacer.Pending(sess.Code))

	got, report, err := svc.ResolveRound(sess.Code)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Round)
	assert.NotEqual(t, game.PhaseRevealing, got.Phase)
}

func TestSpectatorContinuation(t *testing.T) {
	svc, repo := newTestService(t, Options{
		RevealDelay: time.Second, ResolveDelay: time.Second,
		AutoRevealDelay: time.Millisecond, AutoResolveDelay: time.Millisecond,
	})
	sess, err := svc.StartEncounter(EncounterRequest{Mode: game.ModeFFA, Seats: 3, Class: game.ClassGuardian})
	require.NoError(t, err)
	_, err = svc.SetAutoPlay(sess.Code, true)
	require.NoError(t, err)
	edit(t, repo, sess.Code, func(s *game.Session) {
		s.Match.Human().HP = 0
		for i := 1; i < 3; i++ {
			c := &s.Match.Combatants[i]
			c.HP, c.MaxHP, c.Energy = 1, 1, 3
		}
	})

	_, report, err := svc.ResolveRound(sess.Code)
	require.NoError(t, err)
	if report.Result == nil {
		require.Eventually(t, func() bool {
			s, err := svc.GetSession(sess.Code)
			return err == nil && s.Phase == game.PhaseGameOver
		}, 5*time.Second, 5*time.Millisecond)
	}
	got, err := svc.GetSession(sess.Code)
	require.NoError(t, err)
	assert.True(t, got.Match.Terminal())
	assert.False(t, got.Match.Human().IsAlive)
}

func TestQuitToMenu(t *testing.T) {
	svc, _ := newTestService(t, Options{RevealDelay: time.Hour})
	sess, err := svc.StartEncounter(EncounterRequest{Mode: game.ModeFFA, Seats: 2, Class: game.ClassGuardian})
	require.NoError(t, err)
	_, err = svc.LockIn(sess.Code)
	require.NoError(t, err)
	assert.True(t, svc.pacer.Pending(sess.Code))

	require.NoError(t, svc.QuitToMenu(sess.Code))
	assert.False(t, svc.pacer.Pending(sess.Code))
	_, err = svc.GetSession(sess.Code)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.QuitToMenu(sess.Code), ErrSessionNotFound)
}

func TestRepositoryErrorsAreWrapped(t *testing.T) {
	boom := errors.New("disk on fire")
	repo := &failingRepo{Repository: storage.NewMemoryRepository(), err: boom}
	svc := New(repo, nil, adventure.DefaultConfig(), game.NewLockedRand(1), Options{})
	defer svc.Close()

	sess, err := svc.StartEncounter(EncounterRequest{Mode: game.ModeFFA, Seats: 2, Class: game.ClassGuardian})
	require.NoError(t, err)
	_, _, err = svc.CommitHumanAction(sess.Code, "", 0)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}

func TestPurgeIdle(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	sess, err := svc.StartEncounter(EncounterRequest{Mode: game.ModeFFA, Seats: 2, Class: game.ClassGuardian})
	require.NoError(t, err)

	n, err := svc.PurgeIdle(time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = svc.PurgeIdle(-time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = svc.GetSession(sess.Code)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
