package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmhodges/clock"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kazibot/kazi/internal/config"
	"github.com/kazibot/kazi/internal/infrastructure/anthropic"
	"github.com/kazibot/kazi/internal/infrastructure/twilio"
	"github.com/kazibot/kazi/internal/infrastructure/whisper"
	"github.com/kazibot/kazi/internal/repository/postgres"
	"github.com/kazibot/kazi/internal/usecase"
	"github.com/kazibot/kazi/transport/httpserver"
	"github.com/kazibot/kazi/transport/worker"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()
	logger := zl.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsURL); err != nil {
		logger.Fatalw("failed running migrations", "err", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatalw("failed connecting to database", "err", err)
	}
	defer pool.Close()

	reminderRepo := postgres.NewReminderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	clk := clock.New()
	reminderUC := usecase.NewReminderUsecase(reminderRepo, clk, logger)
	userUC := usecase.NewUserUsecase(userRepo)

	replies := anthropic.NewClient("", cfg.AnthropicAPIKey, cfg.AnthropicModel)
	sender := twilio.NewClient("", cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom)
	transcriber := whisper.NewClient("", cfg.OpenAIAPIKey, whisper.MediaAuth{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})

	deliveryWorker := worker.NewWorker(reminderRepo, sender, clk, logger)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		deliveryWorker.Run(ctx)
	}()

	srv := httpserver.NewServer(
		":"+cfg.Port,
		reminderUC,
		userUC,
		replies,
		transcriber,
		sender,
		httpserver.AllowAll{},
		pool,
		clk,
		logger,
	)

	go func() {
		logger.Infow("webhook server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("failed shutting down server", "err", err)
	}
	<-workerDone
}
