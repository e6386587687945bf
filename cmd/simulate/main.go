// Command simulate plays bot-only matches headlessly and prints the round
// logs or a win tally. It is used to balance the card catalog.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/ericogr/energy-duel/internal/config"
	"github.com/ericogr/energy-duel/internal/constants"
	"github.com/ericogr/energy-duel/internal/deck"
	"github.com/ericogr/energy-duel/internal/engine"
	"github.com/ericogr/energy-duel/internal/game"
	"github.com/ericogr/energy-duel/internal/logging"
	"github.com/ericogr/energy-duel/internal/version"
)

func main() {
	var (
		configPath = flag.String("config", os.Getenv(constants.EnvConfigPath), "optional catalog file (json or yaml)")
		seed       = flag.Int64("seed", 1, "random seed")
		seats      = flag.Int("seats", 2, "number of bots")
		mode       = flag.String("mode", string(game.ModeFFA), "ffa or team")
		matches    = flag.Int("matches", 1, "matches to play; more than one prints a tally only")
		maxRounds  = flag.Int("max-rounds", 200, "rounds before a match is abandoned")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logging.Fatal("invalid configuration", err, logging.Fields{constants.LogFieldConfig: *configPath})
	}
	m := game.Mode(*mode)
	if m != game.ModeFFA && m != game.ModeTeam {
		logging.Fatal("unknown mode", nil, logging.Fields{constants.LogFieldMode: *mode})
	}
	if *seats < 2 || (m == game.ModeTeam && *seats%2 != 0) {
		logging.Fatal("invalid seat count", nil, logging.Fields{"seats": *seats})
	}

	rng := game.NewRand(*seed)
	eng := engine.New(cfg.Catalog, rng)
	verbose := *matches == 1
	if verbose {
		fmt.Printf("energy duel simulator %s, seed %d\n", version.String(), *seed)
	}

	tally := map[string]int{}
	for i := 0; i < *matches; i++ {
		match := seat(cfg.Catalog, rng, m, *seats)
		eng.StartMatch(match)
		for match.Result == nil && match.Round <= *maxRounds {
			report := eng.ResolveRound(match)
			if report == nil {
				break
			}
			if verbose {
				for _, e := range report.Entries {
					fmt.Printf("[%3d] %-8s %s\n", e.Round, e.Category, e.Text)
				}
			}
		}
		tally[describe(match)]++
	}

	if !verbose {
		keys := make([]string, 0, len(tally))
		for k := range tally {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%-24s %d\n", k, tally[k])
		}
	}
}

// seat deals random playable classes to every seat. In team mode the first
// half of the seats forms side A.
func seat(cat *game.Catalog, rng game.Rand, mode game.Mode, seats int) *game.Match {
	classes := cat.PlayableClasses()
	match := &game.Match{Mode: mode, HandSize: cat.HandSize, Phase: game.PhaseLobby}
	for id := 1; id <= seats; id++ {
		class := classes[rng.Intn(len(classes))]
		cd, _ := cat.Class(class)
		team := game.TeamNone
		if mode == game.ModeTeam {
			team = game.TeamB
			if id <= seats/2 {
				team = game.TeamA
			}
		}
		match.Combatants = append(match.Combatants, game.Combatant{
			ID:         id,
			Name:       fmt.Sprintf("%s %d", cd.Name, id),
			Team:       team,
			Class:      class,
			HP:         cd.BaseHP,
			MaxHP:      cd.BaseHP,
			Energy:     cd.BaseEnergy,
			MaxEnergy:  cat.MaxEnergy,
			IsAlive:    true,
			Status:     game.StatusIdle,
			Buffs:      []string{},
			Library:    deck.BuildLibrary(cat, class, seats),
			CardLevels: map[string]int{},
		})
	}
	return match
}

func describe(m *game.Match) string {
	switch {
	case m.Result == nil:
		return "abandoned"
	case m.Result.Outcome == game.OutcomeDraw:
		return "draw"
	case m.Result.WinnerTeam != "" && m.Result.WinnerTeam != game.TeamNone:
		return "team " + string(m.Result.WinnerTeam)
	default:
		// names carry the seat number; tally by class
		for _, c := range m.Combatants {
			if c.ID == m.Result.WinnerID {
				return string(c.Class)
			}
		}
		return m.Result.WinnerName
	}
}
