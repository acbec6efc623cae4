package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/mys-constructora/backoffice/config"
	"github.com/mys-constructora/backoffice/internal/auth"
	authmw "github.com/mys-constructora/backoffice/internal/auth/middleware"
	"github.com/mys-constructora/backoffice/internal/bootstrap"
	"github.com/mys-constructora/backoffice/internal/cronjob"
	"github.com/mys-constructora/backoffice/internal/gemini"
	"github.com/mys-constructora/backoffice/internal/logging"
)

const serviceName = "mys-backoffice"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Setup(cfg.App.LogLevel, cfg.App.Environment)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{Config: &cfg.Database, Migrate: true})
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer pool.Close()

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = bootstrap.OpenRedis(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, notifications disabled")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	var gen gemini.Generator
	client, err := gemini.NewClient(ctx, &cfg.Gemini)
	switch {
	case errors.Is(err, gemini.ErrNotConfigured):
		log.Warn().Err(err).Msg("gemini disabled")
	case err != nil:
		log.Fatal().Err(err).Msg("gemini client")
	default:
		gen = client
	}

	var verifier authmw.TokenVerifier
	fb, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatal().Err(err).Msg("firebase")
	}
	if fb != nil {
		verifier = fb
	}

	svc, err := bootstrap.NewServices(cfg, pool, rdb, gen)
	if err != nil {
		log.Fatal().Err(err).Msg("build services")
	}

	limiter := gemini.NewIPLimiter(cfg.Gemini.RateMax, cfg.Gemini.RateWindow)
	go gemini.RunPruner(ctx, limiter, cfg.Gemini.RateWindow)

	var scheduler *cronjob.Scheduler
	if cfg.Cron.Enabled {
		scheduler = cronjob.NewScheduler(svc.Finance, svc.Loc)
		if err := scheduler.Start(cfg.Cron.Schedule); err != nil {
			log.Fatal().Err(err).Msg("start scheduler")
		}
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		DB:          pool,
		Redis:       rdb,
		Services:    svc,
		Limiter:     limiter,
		Verifier:    verifier,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.App.Environment).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("serve")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
