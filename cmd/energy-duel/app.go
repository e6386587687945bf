package main

import (
	"os"
	"strconv"
	"time"

	"github.com/ericogr/energy-duel/internal/config"
	"github.com/ericogr/energy-duel/internal/constants"
	"github.com/ericogr/energy-duel/internal/game"
	"github.com/ericogr/energy-duel/internal/logging"
	"github.com/ericogr/energy-duel/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid energy duel configuration", err, logging.Fields{
			constants.LogFieldConfig: path,
			"hint":                   "check card_list, class_list and standard_deck for unknown or duplicate ids",
		})
	}
	return cfg
}

// createRepositoryOrExit opens the session store. An empty DSN keeps
// everything in a shared in-memory SQLite database.
func createRepositoryOrExit(dsn string) storage.Repository {
	if dsn == "" {
		dsn = storage.DefaultDSN
	}
	db, err := storage.OpenAndMigrate(dsn)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{constants.LogFieldDatabase: dsn})
	}
	return storage.NewSQLiteRepository(db)
}

// seedFromEnv reads ENERGY_DUEL_SEED for reproducible runs and falls back
// to the clock.
func seedFromEnv() int64 {
	raw := os.Getenv(constants.EnvSeed)
	if raw == "" {
		return time.Now().UnixNano()
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logging.Warn("ignoring malformed seed", logging.Fields{constants.LogFieldSeed: raw})
		return time.Now().UnixNano()
	}
	return seed
}

func newRand(seed int64) game.Rand {
	return game.NewLockedRand(seed)
}
