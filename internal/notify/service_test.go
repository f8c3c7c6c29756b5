package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gigabyte1511/blondeLawyer/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	sent []*bot.SendMessageParams
	err  error
}

func (f *fakeSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &models.Message{}, nil
}

func TestSend(t *testing.T) {
	fake := &fakeSender{}
	svc := &Service{bot: fake, logger: zap.NewNop()}

	ok := svc.Send(context.Background(), "100", "привет")
	assert.True(t, ok)

	require.Len(t, fake.sent, 1)
	assert.Equal(t, "100", fake.sent[0].ChatID)
	assert.Equal(t, "привет", fake.sent[0].Text)
}

func TestSendEmptyTelegramID(t *testing.T) {
	fake := &fakeSender{}
	svc := &Service{bot: fake, logger: zap.NewNop()}

	ok := svc.Send(context.Background(), "", "привет")
	assert.False(t, ok)
	assert.Empty(t, fake.sent)
}

func TestSendTransportErrorSwallowed(t *testing.T) {
	fake := &fakeSender{err: errors.New("telegram down")}
	svc := &Service{bot: fake, logger: zap.NewNop()}

	ok := svc.Send(context.Background(), "100", "привет")
	assert.False(t, ok)
}

func TestStatusText(t *testing.T) {
	scheduledFor := time.Date(2025, 8, 1, 14, 0, 0, 0, time.UTC)

	t.Run("approved", func(t *testing.T) {
		text := StatusText(7, model.ConsultationStatusApproved, scheduledFor, "Анна")
		assert.Contains(t, text, "#7")
		assert.Contains(t, text, "подтверждена")
		assert.Contains(t, text, "01.08.2025 14:00")
		assert.Contains(t, text, "Анна")
	})

	t.Run("rejected", func(t *testing.T) {
		text := StatusText(7, model.ConsultationStatusRejected, scheduledFor, "Анна")
		assert.Contains(t, text, "отклонена")
	})

	t.Run("completed", func(t *testing.T) {
		text := StatusText(7, model.ConsultationStatusCompleted, scheduledFor, "Анна")
		assert.Contains(t, text, "завершена")
	})

	t.Run("cancelled", func(t *testing.T) {
		text := StatusText(7, model.ConsultationStatusCancelled, scheduledFor, "Анна")
		assert.Contains(t, text, "отменена")
	})

	t.Run("fallback", func(t *testing.T) {
		text := StatusText(7, model.ConsultationStatusPending, scheduledFor, "Анна")
		assert.Contains(t, text, string(model.ConsultationStatusPending))
	})
}

func TestCreatedTexts(t *testing.T) {
	c := &model.Consultation{
		ID:           3,
		Type:         "Family law",
		Status:       model.ConsultationStatusPending,
		ScheduledFor: time.Date(2025, 8, 1, 14, 0, 0, 0, time.UTC),
		Expert:       &model.User{Name: "Анна"},
		Customer:     &model.User{Name: "Иван"},
	}

	customerText := CreatedCustomerText(c)
	assert.Contains(t, customerText, "#3")
	assert.Contains(t, customerText, "Анна")
	assert.Contains(t, customerText, "Family law")

	expertText := CreatedExpertText(c)
	assert.Contains(t, expertText, "#3")
	assert.Contains(t, expertText, "Иван")
}

func TestTemplatesUnknownUser(t *testing.T) {
	c := &model.Consultation{
		ID:           3,
		Type:         "Family law",
		Status:       model.ConsultationStatusPending,
		ScheduledFor: time.Date(2025, 8, 1, 14, 0, 0, 0, time.UTC),
	}

	// Без подгруженных связей имя заменяется заглушкой
	assert.Contains(t, CreatedCustomerText(c), "Неизвестно")
	assert.Contains(t, StatusChangedExpertText(c), "Неизвестно")
	assert.Contains(t, PreExpiredExpertText(c), "Неизвестно")
	assert.Contains(t, ExpiredCustomerText(c), "Неизвестно")
}
