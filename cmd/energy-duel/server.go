package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ericogr/energy-duel/internal/api"
	"github.com/ericogr/energy-duel/internal/config"
	"github.com/ericogr/energy-duel/internal/constants"
	"github.com/ericogr/energy-duel/internal/logging"
	"github.com/ericogr/energy-duel/internal/ratelimit"
	"github.com/ericogr/energy-duel/internal/service"

	"github.com/gin-gonic/gin"
)

// startSessionJanitor periodically drops sessions nobody touched within
// ttl. A non-positive ttl disables it.
func startSessionJanitor(svc *service.Service, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			n, err := svc.PurgeIdle(ttl)
			if err != nil {
				logging.Error("session janitor failed", err, nil)
				continue
			}
			if n > 0 {
				logging.Info("idle sessions purged", logging.Fields{constants.LogFieldPurged: n})
			}
		}
	}()
}

func newRouter(cfg *config.LoadedConfig, svc *service.Service) *gin.Engine {
	router := gin.Default()
	limiter := ratelimit.New(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
	api.RegisterRoutes(router, api.NewGameHandler(svc), limiter.Middleware())
	return router
}

// runServer serves until SIGINT or SIGTERM, then drains in-flight requests.
func runServer(cfg *config.LoadedConfig, svc *service.Service) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           newRouter(cfg, svc),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logging.Info("Server started", logging.Fields{constants.LogFieldAddr: cfg.ServerAddress})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logging.Info("Server shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
