// Package main is the entry point for the verdigo server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/randytsao24/verdigo/internal/api"
	"github.com/randytsao24/verdigo/internal/config"
	"github.com/randytsao24/verdigo/internal/geocode"
	"github.com/randytsao24/verdigo/internal/logger"
	"github.com/randytsao24/verdigo/internal/pacing"
	"github.com/randytsao24/verdigo/internal/planner"
	"github.com/randytsao24/verdigo/internal/routing"
	"github.com/randytsao24/verdigo/internal/session"
	"github.com/randytsao24/verdigo/internal/transit"
)

type sessionStore interface {
	session.Store
	Close() error
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Env, "verdigo")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("configuration error", zap.Error(err))
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One scheduler per upstream, shared by every plan
	geocodePacer := pacing.New("geocoder", cfg.GeocodePacing)
	routePacer := pacing.New("router", cfg.RoutePacing)
	for _, s := range []*pacing.Scheduler{geocodePacer, routePacer} {
		log.Info("request pacing", zap.String("upstream", s.Name()), zap.Duration("interval", s.Interval()))
	}

	geocoder := geocode.NewClient(cfg.GeocoderURL, cfg.UserAgent, cfg.HTTPTimeout, cfg.CacheTTL, geocodePacer, log)
	defer geocoder.Close()

	router := routing.NewClient(cfg.RouterURL, cfg.HTTPTimeout)

	var advisor planner.Advisor
	if cfg.TransitAlertsURL != "" {
		alerts := transit.NewAlertService(cfg.TransitAlertsURL, cfg.TransitAlertRoutes, cfg.HTTPTimeout, cfg.CacheTTL)
		defer alerts.Close()
		advisor = alerts
		log.Info("transit advisories enabled", zap.String("feed", cfg.TransitAlertsURL))
	}

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("session store unavailable", zap.Error(err))
	}
	defer store.Close()

	p := planner.New(geocoder, router, routePacer, advisor, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(cfg, p, store, geocoder, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("geocoder", cfg.GeocoderURL),
			zap.String("router", cfg.RouterURL),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (sessionStore, error) {
	if cfg.RedisURL == "" {
		log.Info("using in-memory session store", zap.Duration("ttl", cfg.SessionTTL))
		return session.NewMemoryStore(cfg.SessionTTL), nil
	}

	rdb, err := session.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	log.Info("using redis session store", zap.Duration("ttl", cfg.SessionTTL))
	return session.NewRedisStore(rdb, cfg.SessionTTL), nil
}
