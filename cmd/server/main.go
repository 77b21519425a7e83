package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/rent-pe-easy/internal/config"
	"github.com/MKhiriev/rent-pe-easy/internal/handler"
	"github.com/MKhiriev/rent-pe-easy/internal/handler/http"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/internal/server"
	"github.com/MKhiriev/rent-pe-easy/internal/service"
	"github.com/MKhiriev/rent-pe-easy/internal/store"
	"github.com/MKhiriev/rent-pe-easy/internal/workers"
	"github.com/MKhiriev/rent-pe-easy/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	for _, line := range buildInfo.Lines() {
		fmt.Println(line)
	}

	log := logger.NewLogger("rent-pe-easy-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.NewConnection(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	var limiter http.RateLimiter
	if cfg.RateLimit.RedisAddress != "" {
		redisClient, err := store.NewRedisClient(ctx, cfg.RateLimit, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating rate limiter")
		}
		defer redisClient.Close()

		limiter = store.NewRedisRateLimiter(redisClient, cfg.RateLimit, log)
	} else {
		log.Warn().Msg("rate limiting is disabled: no redis address configured")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, limiter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(storages, cfg.Workers, log), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		stop()
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
