package controller

import (
	"context"

	"github.com/gigabyte1511/blondeLawyer/internal/controller/handlers"
	"github.com/gigabyte1511/blondeLawyer/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	userService *service.UserService,
	consultationService *service.ConsultationService,
	notifier service.Notifier,
	logger *zap.Logger,
) *BotController {
	cmdHandlers := handlers.NewHandlers(
		userService,
		consultationService,
		notifier,
		logger,
	)

	return &BotController{
		bot:      botInstance,
		handlers: cmdHandlers,
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/setexpert", bot.MatchTypeExact, c.handlers.HandleSetExpert)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/setcustomer", bot.MatchTypeExact, c.handlers.HandleSetCustomer)

	// Отладочные команды оператора: ручная отправка напоминаний
	// по конкретной консультации
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/notifypreexpired", bot.MatchTypePrefix, c.handlers.HandleNotifyPreExpired)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/notifyexpired", bot.MatchTypePrefix, c.handlers.HandleNotifyExpired)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "setexpert", Description: "👩‍⚖️ Установить роль «Эксперт»"},
		{Command: "setcustomer", Description: "👤 Установить роль «Клиент»"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
