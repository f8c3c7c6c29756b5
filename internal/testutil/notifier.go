package testutil

import (
	"context"
	"time"

	"github.com/gigabyte1511/blondeLawyer/internal/model"
	"github.com/gigabyte1511/blondeLawyer/internal/notify"
)

// SentMessage одна попытка отправки уведомления
type SentMessage struct {
	TelegramID string
	Text       string
}

// Notifier записывает попытки отправки вместо реального Telegram
type Notifier struct {
	Sent []SentMessage
	// Fail заставляет все отправки "падать" (best-effort семантика)
	Fail bool
}

func (n *Notifier) Send(_ context.Context, telegramID, text string) bool {
	n.Sent = append(n.Sent, SentMessage{TelegramID: telegramID, Text: text})
	return !n.Fail
}

func (n *Notifier) SendConsultationStatus(ctx context.Context, telegramID string, consultationID int64, status model.ConsultationStatus, scheduledFor time.Time, expertName string) bool {
	return n.Send(ctx, telegramID, notify.StatusText(consultationID, status, scheduledFor, expertName))
}
