package app

import (
	"context"
	"time"

	"github.com/gigabyte1511/blondeLawyer/internal/service"
	"go.uber.org/zap"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	consultationService *service.ConsultationService
	logger              *zap.Logger
	stopChan            chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(consultationService *service.ConsultationService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		consultationService: consultationService,
		logger:              logger,
		stopChan:            make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	// Запускаем задачу напоминаний по pending консультациям
	go s.runReminderTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runReminderTask периодически рассылает напоминания об истекающих
// и истёкших pending консультациях
func (s *Scheduler) runReminderTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.sendReminders(ctx)

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sendReminders(ctx)
		case <-s.stopChan:
			s.logger.Info("Reminder task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Reminder task cancelled")
			return
		}
	}
}

func (s *Scheduler) sendReminders(ctx context.Context) {
	if err := s.consultationService.SendExpiryReminders(ctx); err != nil {
		s.logger.Error("Failed to send expiry reminders", zap.Error(err))
	}
}
