package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/gigabyte1511/blondeLawyer/internal/model"
	"github.com/gigabyte1511/blondeLawyer/internal/service"
	"github.com/gigabyte1511/blondeLawyer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAvailableSlots(t *testing.T) {
	users := testutil.NewUserStore()
	consultations := testutil.NewConsultationStore(users)
	svc := service.NewScheduleService(consultations, users, zap.NewNop())

	expert := users.Seed(&model.User{Name: "Анна", TelegramID: "100", Role: model.RoleExpert})
	customer := users.Seed(&model.User{Name: "Иван", TelegramID: "200", Role: model.RoleCustomer})

	day := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	// Занят один слот в 14:00
	require.NoError(t, consultations.Create(context.Background(), &model.Consultation{
		ExpertID:     expert.ID,
		CustomerID:   customer.ID,
		Type:         "Family law",
		Status:       model.ConsultationStatusPending,
		ScheduledFor: day.Add(14 * time.Hour),
	}))

	slots, err := svc.AvailableSlots(context.Background(), expert.ID, day)
	require.NoError(t, err)

	require.Len(t, slots, 7)
	assert.Equal(t, "12:00", slots[0].Time)
	assert.Equal(t, "18:00", slots[6].Time)
	for _, slot := range slots {
		if slot.Time == "14:00" {
			assert.False(t, slot.Available, "booked hour must be unavailable")
		} else {
			assert.True(t, slot.Available, "hour %s should be free", slot.Time)
		}
	}
}

func TestAvailableSlotsOtherDateUnaffected(t *testing.T) {
	users := testutil.NewUserStore()
	consultations := testutil.NewConsultationStore(users)
	svc := service.NewScheduleService(consultations, users, zap.NewNop())

	expert := users.Seed(&model.User{Name: "Анна", TelegramID: "100", Role: model.RoleExpert})
	customer := users.Seed(&model.User{Name: "Иван", TelegramID: "200", Role: model.RoleCustomer})

	require.NoError(t, consultations.Create(context.Background(), &model.Consultation{
		ExpertID:     expert.ID,
		CustomerID:   customer.ID,
		Type:         "Family law",
		Status:       model.ConsultationStatusApproved,
		ScheduledFor: time.Date(2025, 8, 1, 14, 0, 0, 0, time.UTC),
	}))

	slots, err := svc.AvailableSlots(context.Background(), expert.ID, time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, slots, 7)
	for _, slot := range slots {
		assert.True(t, slot.Available)
	}
}

func TestAvailableSlotsExpertMissing(t *testing.T) {
	users := testutil.NewUserStore()
	consultations := testutil.NewConsultationStore(users)
	svc := service.NewScheduleService(consultations, users, zap.NewNop())

	// Обычный пользователь не считается экспертом
	customer := users.Seed(&model.User{Name: "Иван", TelegramID: "200", Role: model.RoleCustomer})

	_, err := svc.AvailableSlots(context.Background(), customer.ID, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, service.ErrExpertNotFound)

	_, err = svc.AvailableSlots(context.Background(), 999, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, service.ErrExpertNotFound)
}
