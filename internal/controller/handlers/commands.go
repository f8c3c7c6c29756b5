package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gigabyte1511/blondeLawyer/internal/model"
	"github.com/gigabyte1511/blondeLawyer/internal/notify"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start: идемпотентная регистрация
// пользователя. При первом контакте создаётся запись с ролью «Клиент»,
// при повторном обновляется chat ID.
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	from := update.Message.From
	chatID := update.Message.Chat.ID

	name := strings.TrimSpace(from.FirstName + " " + from.LastName)

	user, created, err := h.userService.RegisterFromTelegram(
		ctx,
		strconv.FormatInt(from.ID, 10),
		strconv.FormatInt(chatID, 10),
		name,
		from.Username,
	)

	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Произошла ошибка при регистрации. Пожалуйста, попробуйте позже.",
		})
		return
	}

	if !created {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("С возвращением, %s! Чем я могу помочь?", from.FirstName),
		})
		return
	}

	h.logger.Info("User registered via bot",
		zap.Int64("user_id", user.ID),
		zap.Int64("chat_id", chatID),
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf(
			"Добро пожаловать, %s! Я бот-помощник Блондинки в Законе. "+
				"Вы можете записаться на консультацию через наше веб-приложение, нажав на кнопку «Открыть»",
			from.FirstName,
		),
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "Доступные команды:\n\n" +
		"/start - Начать работу с ботом\n" +
		"/help - Показать список доступных команд\n" +
		"/setexpert - Установить роль «Эксперт»\n" +
		"/setcustomer - Установить роль «Клиент»"

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleSetExpert обрабатывает команду /setexpert
func (h *Handlers) HandleSetExpert(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.setRole(ctx, b, update, model.RoleExpert,
		"Ваша роль изменена на «Эксперт». Теперь вы можете принимать и управлять консультациями.")
}

// HandleSetCustomer обрабатывает команду /setcustomer
func (h *Handlers) HandleSetCustomer(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.setRole(ctx, b, update, model.RoleCustomer,
		"Ваша роль изменена на «Клиент». Теперь вы можете записываться на консультации.")
}

func (h *Handlers) setRole(ctx context.Context, b *bot.Bot, update *models.Update, role model.Role, successText string) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	telegramID := strconv.FormatInt(update.Message.From.ID, 10)

	user, err := h.userService.SetRole(ctx, telegramID, role)
	if err != nil {
		h.logger.Error("Failed to set role",
			zap.String("telegram_id", telegramID),
			zap.String("role", string(role)),
			zap.Error(err),
		)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Пользователь не найден. Пожалуйста, сначала выполните команду /start",
		})
		return
	}

	h.logger.Info("User role switched via bot",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(role)),
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   successText,
	})
}

// HandleNotifyPreExpired обрабатывает отладочную команду
// /notifypreexpired <id>: вручную отправляет обеим сторонам консультации
// напоминание об истекающем сроке рассмотрения.
func (h *Handlers) HandleNotifyPreExpired(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.sendReminder(ctx, b, update, notify.PreExpiredExpertText, notify.PreExpiredCustomerText,
		"Уведомления об истечении срока консультации #%d отправлены эксперту и клиенту.")
}

// HandleNotifyExpired обрабатывает отладочную команду /notifyexpired <id>:
// вручную отправляет обеим сторонам уведомление об истёкшем сроке.
func (h *Handlers) HandleNotifyExpired(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.sendReminder(ctx, b, update, notify.ExpiredExpertText, notify.ExpiredCustomerText,
		"Уведомления о завершении срока консультации #%d отправлены эксперту и клиенту.")
}

func (h *Handlers) sendReminder(
	ctx context.Context,
	b *bot.Bot,
	update *models.Update,
	expertText, customerText func(*model.Consultation) string,
	confirmation string,
) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	id, err := parseCommandID(update.Message.Text)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Укажите ID консультации, например: /notifyexpired 3",
		})
		return
	}

	consultation, err := h.consultationService.Get(ctx, id)
	if err != nil {
		h.logger.Error("Failed to load consultation for reminder",
			zap.Int64("consultation_id", id),
			zap.Error(err),
		)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("Консультация с ID %d не найдена.", id),
		})
		return
	}

	if consultation.Expert != nil {
		h.notifier.Send(ctx, consultation.Expert.TelegramID, expertText(consultation))
	}
	if consultation.Customer != nil {
		h.notifier.Send(ctx, consultation.Customer.TelegramID, customerText(consultation))
	}

	h.logger.Info("Manual reminder sent", zap.Int64("consultation_id", id))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf(confirmation, consultation.ID),
	})
}

// parseCommandID достаёт числовой аргумент из текста команды
func parseCommandID(text string) (int64, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return 0, fmt.Errorf("missing id argument")
	}
	return strconv.ParseInt(fields[1], 10, 64)
}
