package service

import (
	"fmt"

	"github.com/ericogr/energy-duel/internal/constants"
	"github.com/ericogr/energy-duel/internal/deck"
	"github.com/ericogr/energy-duel/internal/game"
	"github.com/ericogr/energy-duel/internal/logging"
)

const (
	MinSeats = 2
	MaxSeats = 6
)

// EncounterRequest configures a free-for-all or team match. The human
// always takes seat 1.
type EncounterRequest struct {
	Mode  game.Mode    `json:"mode"`
	Seats int          `json:"seats"`
	Class game.ClassID `json:"class"`
}

func (s *Service) playable(class game.ClassID) bool {
	for _, id := range s.catalog.PlayableClasses() {
		if id == class {
			return true
		}
	}
	return false
}

func (s *Service) newCombatant(id int, class game.ClassID, team game.Team, human bool, seats int) game.Combatant {
	cd, _ := s.catalog.Class(class)
	name := fmt.Sprintf("%s %d", cd.Name, id)
	if human {
		name = "You"
	}
	return game.Combatant{
		ID:         id,
		Name:       name,
		Team:       team,
		Class:      class,
		IsHuman:    human,
		HP:         cd.BaseHP,
		MaxHP:      cd.BaseHP,
		Energy:     cd.BaseEnergy,
		MaxEnergy:  s.catalog.MaxEnergy,
		IsAlive:    true,
		Status:     game.StatusIdle,
		Buffs:      []string{},
		Library:    deck.BuildLibrary(s.catalog, class, seats),
		CardLevels: map[string]int{},
	}
}

// buildMatch seats the human and the bots. In team mode the first half of
// the seats forms side A.
func (s *Service) buildMatch(req EncounterRequest) (*game.Match, error) {
	if req.Mode != game.ModeFFA && req.Mode != game.ModeTeam {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidSetup, req.Mode)
	}
	if req.Seats < MinSeats || req.Seats > MaxSeats {
		return nil, fmt.Errorf("%w: seats must be between %d and %d", ErrInvalidSetup, MinSeats, MaxSeats)
	}
	if req.Mode == game.ModeTeam && req.Seats%2 != 0 {
		return nil, fmt.Errorf("%w: team matches need an even seat count", ErrInvalidSetup)
	}
	if !s.playable(req.Class) {
		return nil, fmt.Errorf("%w: unknown class %q", ErrInvalidSetup, req.Class)
	}

	classes := s.catalog.PlayableClasses()
	m := &game.Match{Mode: req.Mode, HandSize: s.catalog.HandSize, Phase: game.PhaseLobby}
	for seat := 1; seat <= req.Seats; seat++ {
		team := game.TeamNone
		if req.Mode == game.ModeTeam {
			team = game.TeamB
			if seat <= req.Seats/2 {
				team = game.TeamA
			}
		}
		class := req.Class
		if seat > 1 {
			class = classes[s.rng.Intn(len(classes))]
		}
		m.Combatants = append(m.Combatants, s.newCombatant(seat, class, team, seat == 1, req.Seats))
	}
	return m, nil
}

// StartEncounter creates a session holding a freshly dealt match.
func (s *Service) StartEncounter(req EncounterRequest) (*game.Session, error) {
	m, err := s.buildMatch(req)
	if err != nil {
		return nil, err
	}
	s.engine.StartMatch(m)
	sess := &game.Session{
		Code:  newSessionCode(),
		Mode:  req.Mode,
		Phase: m.Phase,
		Seats: req.Seats,
		Class: req.Class,
		Match: m,
	}
	if err := s.create(sess); err != nil {
		return nil, err
	}
	logging.Info("encounter started", logging.Fields{
		constants.LogFieldSession: sess.Code,
		constants.LogFieldMode:    sess.Mode,
		constants.LogFieldClass:   sess.Class,
	})
	return sess, nil
}
