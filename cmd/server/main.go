package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redislib "github.com/redis/go-redis/v9"
	mongolib "go.mongodb.org/mongo-driver/mongo"

	_ "github.com/markaai/booking-gateway/docs"
	"github.com/markaai/booking-gateway/internal/api"
	"github.com/markaai/booking-gateway/internal/core/ports"
	"github.com/markaai/booking-gateway/internal/core/service"
	"github.com/markaai/booking-gateway/internal/infrastructure/audit"
	"github.com/markaai/booking-gateway/internal/infrastructure/config"
	mongodb "github.com/markaai/booking-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/markaai/booking-gateway/internal/infrastructure/db/redis"
	"github.com/markaai/booking-gateway/internal/infrastructure/storage"
	"github.com/markaai/booking-gateway/internal/infrastructure/upstream"
	"github.com/markaai/booking-gateway/pkg/logger"
)

// @title        Booking Gateway API
// @version      1.0
// @description  Session and tenant-access gateway for the booking platform.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Durable session storage, selected by driver.
	var (
		store ports.Storage
		rdb   *redislib.Client
		mcli  *mongolib.Client
		mdb   *mongolib.Database
	)
	switch cfg.StorageDriver {
	case "redis":
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = rdb.Close() }()
		store = redisdb.NewStore(rdb, cfg.SessionTTL)
	case "mongo":
		mcli, mdb, err = mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = mcli.Disconnect(context.Background()) }()
		store = mongodb.NewStore(mdb)
	default:
		log.Warn().Msg("using in-memory session storage; sessions will not survive a restart")
		store = storage.NewMemory()
	}

	// Upstream credentials are sealed at rest when a key is configured.
	if cfg.SealKey != "" {
		sealed, err := storage.NewSealed(store, cfg.SealKey)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid session seal key")
		}
		store = sealed
	} else {
		log.Warn().Msg("SESSION_SEAL_KEY not set; credentials are stored unencrypted")
	}

	// Audit trail: document store when mongo is connected, structured log
	// otherwise.
	var recorder ports.AuditRecorder
	if mdb != nil {
		recorder = mongodb.NewAuditRepository(mdb)
	} else {
		recorder = audit.NewLogRecorder(log)
	}
	dispatcher := audit.NewDispatcher(cfg.AuditWorkers, recorder, log)
	dispatcher.Start(ctx)

	upstreamCfg := upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	}
	tenants := service.NewWorkspaceResolver(upstream.NewDirectoryClient(upstreamCfg), store, dispatcher, log)
	sessions := service.NewSessionService(
		upstream.NewAuthClient(upstreamCfg),
		store,
		tenants,
		dispatcher,
		cfg.JWTSecret,
		cfg.SessionTTL,
		log,
	)

	e := api.NewRouter(api.RouterConfig{
		JWTSecret: cfg.JWTSecret,
		Sessions:  sessions,
		Tenants:   tenants,
		Audit:     dispatcher,
		Upstream:  upstreamCfg,
		Mongo:     mdb,
		Redis:     rdb,
		Log:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("storage", cfg.StorageDriver).
		Str("upstream", cfg.Upstream.BaseURL).
		Msg("booking gateway started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	log.Info().Msg("booking gateway stopped")
}
