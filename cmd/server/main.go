package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/forohub/forum-api/internal/api"
	"github.com/forohub/forum-api/internal/core/domain"
	"github.com/forohub/forum-api/internal/infrastructure/config"
	mongodb "github.com/forohub/forum-api/internal/infrastructure/db/mongo"
	redisdb "github.com/forohub/forum-api/internal/infrastructure/db/redis"
	"github.com/forohub/forum-api/pkg/logger"
)

// @title        Forum API
// @version      1.0
// @description  Minimal forum backend: token-based auth and topic CRUD.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		fallback := logger.Get()
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		_ = rdb.Close()
	}()

	userRepo := mongodb.NewUserRepository(db)
	topicRepo := mongodb.NewTopicRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := topicRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create topic indexes")
	}

	if err := seedAdmin(ctx, userRepo, cfg.Admin); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin account")
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// seedAdmin creates the admin account on first startup. Registration only
// produces regular users, so this is the single path that mints an admin.
func seedAdmin(ctx context.Context, userRepo *mongodb.UserRepository, cfg config.AdminConfig) error {
	if _, err := userRepo.FindByUsername(ctx, cfg.Username); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = userRepo.Create(ctx, &domain.User{
		Username:     cfg.Username,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, domain.ErrUserExists) {
		// another instance seeded it first
		return nil
	}
	return err
}
