// Package notify отправляет Telegram-уведомления участникам консультаций.
// Все отправки best-effort: ошибка транспорта логируется и не всплывает
// к вызывающему коду.
package notify

import (
	"context"
	"time"

	"github.com/gigabyte1511/blondeLawyer/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	notificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifications_sent_total",
		Help: "Telegram notifications delivered successfully.",
	})
	notificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifications_failed_total",
		Help: "Telegram notifications that failed to send.",
	})
)

// sender покрывает используемую часть *bot.Bot
type sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Service отправляет уведомления через Telegram-бота. Создаётся явно
// в main и передаётся зависимостям — без ленивых глобальных синглтонов.
type Service struct {
	bot    sender
	logger *zap.Logger
}

func New(b *bot.Bot, logger *zap.Logger) *Service {
	return &Service{bot: b, logger: logger}
}

// Send отправляет текст пользователю по Telegram ID. Возвращает признак
// успеха; ошибка транспорта логируется и проглатывается.
func (s *Service) Send(ctx context.Context, telegramID, text string) bool {
	if telegramID == "" {
		return false
	}

	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: telegramID,
		Text:   text,
	})

	if err != nil {
		notificationsFailed.Inc()
		s.logger.Error("Failed to send notification",
			zap.String("telegram_id", telegramID),
			zap.Error(err),
		)
		return false
	}

	notificationsSent.Inc()
	return true
}

// SendConsultationStatus отправляет уведомление о смене статуса консультации
func (s *Service) SendConsultationStatus(ctx context.Context, telegramID string, consultationID int64, status model.ConsultationStatus, scheduledFor time.Time, expertName string) bool {
	return s.Send(ctx, telegramID, StatusText(consultationID, status, scheduledFor, expertName))
}
