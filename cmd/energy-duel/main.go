package main

import (
	"os"

	"github.com/ericogr/energy-duel/internal/constants"
	"github.com/ericogr/energy-duel/internal/logging"
	"github.com/ericogr/energy-duel/internal/service"
	"github.com/ericogr/energy-duel/internal/version"
)

func main() {
	// Configuration is optional; without ENERGY_DUEL_CONFIG the built-in
	// catalog and tuning are used.
	configPath := os.Getenv(constants.EnvConfigPath)
	cfg := loadConfigOrExit(configPath)
	if addr := os.Getenv(constants.EnvAddress); addr != "" {
		cfg.ServerAddress = addr
	}

	dsn := os.Getenv(constants.EnvDatabase)
	repo := createRepositoryOrExit(dsn)
	seed := seedFromEnv()

	svc := service.New(repo, cfg.Catalog, cfg.Adventure, newRand(seed), service.Options{
		RevealDelay:      cfg.Pacing.Reveal(false),
		ResolveDelay:     cfg.Pacing.Resolve(false),
		AutoRevealDelay:  cfg.Pacing.Reveal(true),
		AutoResolveDelay: cfg.Pacing.Resolve(true),
	})
	defer svc.Close()

	logging.Info("Energy Duel starting", logging.Fields{
		"version":                  version.String(),
		constants.LogFieldConfig:   configPath,
		constants.LogFieldDatabase: dsn,
		constants.LogFieldSeed:     seed,
	})

	startSessionJanitor(svc, cfg.SessionTTL)
	if err := runServer(cfg, svc); err != nil {
		logging.Fatal("Server stopped with error", err, nil)
	}
}
