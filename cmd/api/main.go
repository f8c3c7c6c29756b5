package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gigabyte1511/blondeLawyer/internal/app"
	"github.com/gigabyte1511/blondeLawyer/internal/config"
	"github.com/gigabyte1511/blondeLawyer/internal/controller"
	"github.com/gigabyte1511/blondeLawyer/internal/notify"
	"github.com/gigabyte1511/blondeLawyer/internal/repository"
	"github.com/gigabyte1511/blondeLawyer/internal/server"
	"github.com/gigabyte1511/blondeLawyer/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting consultation platform",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// База данных
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected")

	// Миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Telegram-бот
	tgBot, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create telegram bot", zap.Error(err))
	}

	// Сервисы
	userRepo := repository.NewUserRepository(pool)
	consultationRepo := repository.NewConsultationRepository(pool)

	notifier := notify.New(tgBot, logger)
	userService := service.NewUserService(userRepo, logger)
	consultationService := service.NewConsultationService(consultationRepo, userRepo, notifier, logger)
	scheduleService := service.NewScheduleService(consultationRepo, userRepo, logger)

	// Обработчики команд бота
	botController := controller.NewBotController(tgBot, userService, consultationService, notifier, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register bot handlers", zap.Error(err))
	}

	go func() {
		if err := botController.Start(ctx); err != nil {
			logger.Error("Bot stopped with error", zap.Error(err))
		}
	}()

	// Фоновые напоминания
	scheduler := app.NewScheduler(consultationService, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// HTTP API
	srv := server.New(cfg.HTTPAddr, userService, consultationService, scheduleService, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Graceful shutdown complete")
}
