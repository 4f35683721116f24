package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/contractflow/review-api/internal/api"
	"github.com/contractflow/review-api/internal/core/ports"
	"github.com/contractflow/review-api/internal/core/service"
	"github.com/contractflow/review-api/internal/infrastructure/ai"
	"github.com/contractflow/review-api/internal/infrastructure/config"
	"github.com/contractflow/review-api/internal/infrastructure/db/mongo"
	"github.com/contractflow/review-api/internal/infrastructure/db/redis"
	"github.com/contractflow/review-api/internal/infrastructure/mail"
	"github.com/contractflow/review-api/internal/infrastructure/queue"
	"github.com/contractflow/review-api/internal/infrastructure/scheduler"
	"github.com/contractflow/review-api/internal/infrastructure/vector"
	"github.com/contractflow/review-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := mongo.NewUserRepository(db)
	documentRepo := mongo.NewDocumentRepository(db)
	clauseRepo := mongo.NewClauseRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := documentRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("document index creation failed")
	}

	// --- Upstream clients ---
	aiClient := ai.NewClient(ai.Config{
		APIKey:         cfg.OpenAI.APIKey,
		EmbeddingModel: cfg.OpenAI.EmbeddingModel,
		ChatModel:      cfg.OpenAI.ChatModel,
	}, log)

	searcher, err := vector.NewSearcher(vector.Config{
		Host:       cfg.Qdrant.Host,
		Port:       cfg.Qdrant.Port,
		APIKey:     cfg.Qdrant.APIKey,
		UseTLS:     cfg.Qdrant.UseTLS,
		Collection: cfg.Qdrant.Collection,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("qdrant connection failed")
	}
	defer searcher.Close()

	mailer, err := mail.NewMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Email:    cfg.SMTP.Email,
		Password: cfg.SMTP.Password,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("smtp client setup failed")
	}
	if mailer == nil {
		log.Warn().Msg("smtp sender not configured, notifications disabled")
	}

	// --- Background workers ---
	notifier := service.NewNotificationService(mailerPort(mailer), log)
	dispatcher := queue.NewDispatcher(0, notifier, log)
	dispatcher.Start(ctx)

	sweepService := service.NewSweepService(documentRepo, log)
	sweepInterval, err := time.ParseDuration(cfg.SweepInterval)
	if err != nil {
		log.Warn().Str("value", cfg.SweepInterval).Msg("invalid sweep interval, using default")
		sweepInterval = 0
	}
	sweeper := scheduler.NewStatusSweeper(sweepService, sweepInterval, log)
	sweeper.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret,
		time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	documentService := service.NewDocumentService(documentRepo, userRepo, dispatcher, mailerPort(mailer), log)
	clauseService := service.NewClauseService(clauseRepo, log)
	chatService := service.NewChatService(documentRepo, aiClient, searcher, aiClient, redis.NewAnswerCache(rdb), log)

	e := api.NewRouter(api.Deps{
		Mongo:     db,
		Redis:     rdb,
		Vector:    searcher,
		Auth:      authService,
		Documents: documentService,
		Clauses:   clauseService,
		Chat:      chatService,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	waitForShutdown(log)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	cancel()
	log.Info().Msg("server stopped")
}

func waitForShutdown(log zerolog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutting down")
}

// mailerPort avoids wrapping a typed nil in the Mailer interface when no
// SMTP sender is configured.
func mailerPort(m *mail.Mailer) ports.Mailer {
	if m == nil {
		return nil
	}
	return m
}
