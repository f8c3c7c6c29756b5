package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gigabyte1511/blondeLawyer/internal/model"
	"go.uber.org/zap"
)

// Рабочие часы эксперта: почасовые слоты с 12:00 по 18:00 включительно
const (
	firstSlotHour = 12
	lastSlotHour  = 18
)

// TimeSlot один часовой слот в расписании эксперта
type TimeSlot struct {
	Time      string `json:"time"` // "HH:00"
	Available bool   `json:"available"`
}

type ScheduleService struct {
	consultationStore ConsultationStore
	userStore         UserStore
	logger            *zap.Logger
}

func NewScheduleService(consultationStore ConsultationStore, userStore UserStore, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		consultationStore: consultationStore,
		userStore:         userStore,
		logger:            logger,
	}
}

// AvailableSlots возвращает часовые слоты эксперта на дату. Слот занят,
// если у эксперта уже есть консультация ровно в этот час этой даты —
// сравнение по точному часу, без учёта длительности. Занятость считается
// по любой существующей записи независимо от её статуса.
func (s *ScheduleService) AvailableSlots(ctx context.Context, expertID int64, day time.Time) ([]TimeSlot, error) {
	expert, err := s.userStore.GetByIDAndRole(ctx, expertID, model.RoleExpert)
	if err != nil {
		return nil, fmt.Errorf("check expert: %w", err)
	}
	if expert == nil {
		return nil, ErrExpertNotFound
	}

	consultations, err := s.consultationStore.ListByExpertOnDate(ctx, expertID, day)
	if err != nil {
		return nil, fmt.Errorf("list consultations on date: %w", err)
	}

	booked := make(map[int]bool, len(consultations))
	for _, c := range consultations {
		booked[c.ScheduledFor.In(day.Location()).Hour()] = true
	}

	slots := make([]TimeSlot, 0, lastSlotHour-firstSlotHour+1)
	for hour := firstSlotHour; hour <= lastSlotHour; hour++ {
		slots = append(slots, TimeSlot{
			Time:      fmt.Sprintf("%02d:00", hour),
			Available: !booked[hour],
		})
	}

	return slots, nil
}
