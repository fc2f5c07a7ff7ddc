package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rentease/rentease/internal/api"
	"github.com/rentease/rentease/internal/infrastructure/config"
	mongodb "github.com/rentease/rentease/internal/infrastructure/db/mongo"
	redisdb "github.com/rentease/rentease/internal/infrastructure/db/redis"
	"github.com/rentease/rentease/internal/infrastructure/email"
	"github.com/rentease/rentease/internal/infrastructure/media"
	"github.com/rentease/rentease/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	userRepo := mongodb.NewUserRepository(db)
	propertyRepo := mongodb.NewPropertyRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := propertyRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("property indexes failed")
	}

	// --- Redis (OTP challenges) ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Media store ---
	mediaStore, err := media.New(ctx, media.Config{
		Region:        cfg.Media.Region,
		Bucket:        cfg.Media.Bucket,
		AccessKey:     cfg.Media.AccessKey,
		SecretKey:     cfg.Media.SecretKey,
		Endpoint:      cfg.Media.Endpoint,
		PublicBaseURL: cfg.Media.PublicBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("media store init failed")
	}

	mailer := email.NewSendGridMailer(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	e := api.NewRouter(api.Options{
		Mongo:     db,
		Redis:     rdb,
		Media:     mediaStore,
		Mailer:    mailer,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  24 * time.Hour,
		StaticDir: cfg.StaticDir,
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
