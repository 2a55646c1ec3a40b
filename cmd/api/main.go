package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/aiblog/blog-platform/internal/api"
	"github.com/aiblog/blog-platform/internal/infrastructure/config"
	mongodb "github.com/aiblog/blog-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/aiblog/blog-platform/internal/infrastructure/db/redis"
	"github.com/aiblog/blog-platform/internal/infrastructure/storage"
	"github.com/aiblog/blog-platform/pkg/logger"
)

// @title          Blog Platform API
// @version        1.0
// @description    Backend for a personal blog: auth, posts, taxonomy, media, AI tool gallery, and admin surface.
// @BasePath       /api
// @securityDefinitions.apikey BearerAuth
// @in             header
// @name           Authorization
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	store, err := storage.NewLocal(cfg.Storage.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise object storage")
	}

	// --- Router and view pipeline ---
	e, dispatcher, err := api.NewRouter(ctx, api.Deps{
		DB:        db,
		Redis:     rdb,
		Store:     store,
		Presigner: storage.NewPresigner(cfg.Storage.UploadSecret),
		Config:    cfg,
		Log:       log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	dispatcher.Start(ctx)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
