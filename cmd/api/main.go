package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pulsehr/feedback-flow/internal/api"
	"github.com/pulsehr/feedback-flow/internal/core/ports"
	"github.com/pulsehr/feedback-flow/internal/core/service"
	"github.com/pulsehr/feedback-flow/internal/infrastructure/config"
	mongodb "github.com/pulsehr/feedback-flow/internal/infrastructure/db/mongo"
	redisdb "github.com/pulsehr/feedback-flow/internal/infrastructure/db/redis"
	"github.com/pulsehr/feedback-flow/internal/infrastructure/notify"
	"github.com/pulsehr/feedback-flow/internal/infrastructure/sweep"
	"github.com/pulsehr/feedback-flow/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongodb.Disconnect(mongoClient); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	feedbackRepo := mongodb.NewFeedbackRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := feedbackRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("feedback index creation failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Notification backend ---
	var notifier ports.Notifier
	if cfg.SMTP.Enabled {
		notifier = notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
		log.Info().Str("host", cfg.SMTP.Host).Msg("smtp notifier enabled")
	} else {
		notifier = notify.NewLogNotifier(log)
		log.Info().Msg("log-only notifier enabled")
	}

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.SessionTTL)
	feedbackService := service.NewFeedbackService(
		userRepo,
		feedbackRepo,
		notifier,
		redisdb.NewNotifyGuard(rdb),
		log,
		service.FeedbackServiceOptions{
			BaseURL:       cfg.BaseURL,
			NotifyTimeout: cfg.Requests.NotifyTimeout,
			RequestTTL:    cfg.Requests.TTL,
		},
	)

	// --- Retention sweep ---
	if cfg.Requests.SweepEnabled {
		sweeper := sweep.NewSweeper(feedbackService, cfg.Requests.SweepInterval, log)
		sweeper.Start(ctx)
	}

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		AuthService:     authService,
		FeedbackService: feedbackService,
		JWTSecret:       cfg.JWTSecret,
		Mongo:           db,
		Redis:           rdb,
		Logger:          log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("feedback-flow api started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
