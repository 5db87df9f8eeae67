package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/onlineshop/order-system/internal/api"
	"github.com/onlineshop/order-system/internal/infrastructure/config"
	mongodb "github.com/onlineshop/order-system/internal/infrastructure/db/mongo"
	redisdb "github.com/onlineshop/order-system/internal/infrastructure/db/redis"
	"github.com/onlineshop/order-system/internal/infrastructure/queue"
	"github.com/onlineshop/order-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init("info", "development", nil)
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(cfg.LogLevel, cfg.Env, nil)

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	if err := prepareCollections(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to prepare collections")
	}

	auditRepo := mongodb.NewAuditRepository(db)
	audit := queue.NewAuditDispatcher(cfg.AuditWorkers, auditRepo, log)
	audit.Start(ctx)

	e := api.NewRouter(db, rdb, cfg, log, audit)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// prepareCollections creates the indexes each repository relies on and
// seeds the default roles. Index creation is idempotent.
func prepareCollections(ctx context.Context, db *mongo.Database) error {
	for _, ensure := range []func(context.Context) error{
		mongodb.NewUserRepository(db).EnsureIndexes,
		mongodb.NewRefreshTokenRepository(db, 0).EnsureIndexes,
		mongodb.NewOrderRepository(db).EnsureIndexes,
		mongodb.NewCartRepository(db).EnsureIndexes,
		mongodb.NewAuditRepository(db).EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return err
		}
	}
	return mongodb.NewRoleRepository(db).SeedDefaults(ctx)
}
