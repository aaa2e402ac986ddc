package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/waktusolat/solat-api/internal/config"
	"github.com/waktusolat/solat-api/internal/db"
	"github.com/waktusolat/solat-api/internal/gazetteer"
	"github.com/waktusolat/solat-api/internal/logging"
	"github.com/waktusolat/solat-api/internal/metrics"
	"github.com/waktusolat/solat-api/internal/notify"
	"github.com/waktusolat/solat-api/internal/redis"
	"github.com/waktusolat/solat-api/internal/schedule"
)

func main() {
	// a missing .env is fine outside local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// initialize PostgreSQL
	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	defer db.DB.Close()

	// run pending migrations
	if _, err := db.RunMigrations(ctx, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	m := metrics.New(prometheus.NewRegistry())

	pg := db.NewStore(db.DB)
	var store MonthStore = pg
	var reader schedule.Store = pg
	if cfg.CacheEnabled() {
		cached := redis.NewCachedStore(reader, redis.NewClient(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword), cfg.CacheTTL, m)
		store, reader = cached, cached
		log.Info().Str("address", cfg.RedisAddress).Dur("ttl", cfg.CacheTTL).Msg("month cache enabled")
	}

	boundaries, err := InitStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("storage init")
	}
	locator, err := LoadBoundaries(ctx, boundaries, cfg.BoundaryFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load district boundaries")
	}
	m.BoundaryCount.Set(float64(locator.Len()))
	log.Info().Int("districts", locator.Len()).Msg("district boundaries loaded")

	var publisher notify.Publisher = notify.Nop{}
	if cfg.MQTTBrokerURL != "" {
		p, err := notify.NewMQTTPublisher(cfg.MQTTBrokerURL, "solat-api-"+uuid.NewString()[:8], cfg.MQTTTopicPrefix)
		if err != nil {
			log.Error().Err(err).Msg("MQTT unavailable, update notifications disabled")
		} else {
			publisher = p
		}
	}
	defer publisher.Close()

	clock := clockwork.NewRealClock()
	router := NewRouter(Dependencies{
		Config:    cfg,
		Zones:     gazetteer.MustLoad(),
		Schedules: schedule.NewResolver(reader, clock).WithMetrics(m),
		Locator:   locator,
		Store:     store,
		Publisher: publisher,
		Metrics:   m,
		Clock:     clock,
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
	}

	go func() {
		log.Info().Str("address", cfg.ServerAddress).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
