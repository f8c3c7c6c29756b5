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

type consultationFixture struct {
	users         *testutil.UserStore
	consultations *testutil.ConsultationStore
	notifier      *testutil.Notifier
	svc           *service.ConsultationService

	expert   *model.User
	customer *model.User
}

func newConsultationFixture(t *testing.T) *consultationFixture {
	t.Helper()

	users := testutil.NewUserStore()
	consultations := testutil.NewConsultationStore(users)
	notifier := &testutil.Notifier{}

	expert := users.Seed(&model.User{Name: "Анна", TelegramID: "100", Role: model.RoleExpert})
	customer := users.Seed(&model.User{Name: "Иван", TelegramID: "200", Role: model.RoleCustomer})

	return &consultationFixture{
		users:         users,
		consultations: consultations,
		notifier:      notifier,
		svc:           service.NewConsultationService(consultations, users, notifier, zap.NewNop()),
		expert:        expert,
		customer:      customer,
	}
}

func (f *consultationFixture) createPending(t *testing.T) *model.Consultation {
	t.Helper()

	created, err := f.svc.Create(context.Background(), service.CreateConsultationInput{
		ExpertID:     f.expert.ID,
		CustomerID:   f.customer.ID,
		Type:         "Family law",
		ScheduledFor: time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	f.notifier.Sent = nil
	return created
}

func TestCreateConsultation(t *testing.T) {
	f := newConsultationFixture(t)

	created, err := f.svc.Create(context.Background(), service.CreateConsultationInput{
		ExpertID:     f.expert.ID,
		CustomerID:   f.customer.ID,
		Type:         "Family law",
		ScheduledFor: time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, model.ConsultationStatusPending, created.Status)
	require.NotNil(t, created.Expert)
	require.NotNil(t, created.Customer)
	assert.Equal(t, f.expert.ID, created.Expert.ID)
	assert.Equal(t, f.customer.ID, created.Customer.ID)

	// Обе стороны получают уведомление о созданной заявке
	require.Len(t, f.notifier.Sent, 2)
	assert.Equal(t, f.customer.TelegramID, f.notifier.Sent[0].TelegramID)
	assert.Equal(t, f.expert.TelegramID, f.notifier.Sent[1].TelegramID)
}

func TestCreateConsultationRoundTrip(t *testing.T) {
	f := newConsultationFixture(t)

	scheduledFor := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	created, err := f.svc.Create(context.Background(), service.CreateConsultationInput{
		ExpertID:     f.expert.ID,
		CustomerID:   f.customer.ID,
		Type:         "Family law",
		Status:       model.ConsultationStatusPending,
		ScheduledFor: scheduledFor,
	})
	require.NoError(t, err)

	fetched, err := f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Family law", fetched.Type)
	assert.Equal(t, model.ConsultationStatusPending, fetched.Status)
	assert.True(t, fetched.ScheduledFor.Equal(scheduledFor))
}

func TestCreateConsultationExpertMissing(t *testing.T) {
	f := newConsultationFixture(t)

	_, err := f.svc.Create(context.Background(), service.CreateConsultationInput{
		ExpertID:     999,
		CustomerID:   f.customer.ID,
		Type:         "Family law",
		ScheduledFor: time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, service.ErrExpertNotFound)
	assert.Empty(t, f.consultations.Consultations, "no write should happen")
	assert.Empty(t, f.notifier.Sent)
}

func TestCreateConsultationRoleMismatch(t *testing.T) {
	f := newConsultationFixture(t)

	// Клиент в роли эксперта не проходит проверку ссылки
	_, err := f.svc.Create(context.Background(), service.CreateConsultationInput{
		ExpertID:     f.customer.ID,
		CustomerID:   f.customer.ID,
		Type:         "Family law",
		ScheduledFor: time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, service.ErrExpertNotFound)
	assert.Empty(t, f.consultations.Consultations)
}

func TestCreateConsultationUnknownStatus(t *testing.T) {
	f := newConsultationFixture(t)

	_, err := f.svc.Create(context.Background(), service.CreateConsultationInput{
		ExpertID:     f.expert.ID,
		CustomerID:   f.customer.ID,
		Type:         "Family law",
		Status:       "weird",
		ScheduledFor: time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestChangeStatus(t *testing.T) {
	f := newConsultationFixture(t)
	created := f.createPending(t)

	updated, changed, err := f.svc.ChangeStatus(context.Background(), created.ID, model.ConsultationStatusApproved)
	require.NoError(t, err)

	assert.True(t, changed)
	assert.Equal(t, model.ConsultationStatusApproved, updated.Status)

	// Уведомления отправляются обеим сторонам
	require.Len(t, f.notifier.Sent, 2)
	assert.Equal(t, f.customer.TelegramID, f.notifier.Sent[0].TelegramID)
	assert.Equal(t, f.expert.TelegramID, f.notifier.Sent[1].TelegramID)
}

func TestChangeStatusNoOp(t *testing.T) {
	f := newConsultationFixture(t)
	created := f.createPending(t)

	updated, changed, err := f.svc.ChangeStatus(context.Background(), created.ID, model.ConsultationStatusPending)
	require.NoError(t, err)

	assert.False(t, changed)
	assert.Equal(t, created.UpdatedAt, updated.UpdatedAt, "record should be unchanged")
	assert.Empty(t, f.notifier.Sent, "no notification on no-op")
}

func TestChangeStatusUnknownValue(t *testing.T) {
	f := newConsultationFixture(t)
	created := f.createPending(t)

	_, _, err := f.svc.ChangeStatus(context.Background(), created.ID, "escalated")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestChangeStatusNotFound(t *testing.T) {
	f := newConsultationFixture(t)

	_, _, err := f.svc.ChangeStatus(context.Background(), 42, model.ConsultationStatusApproved)
	assert.ErrorIs(t, err, service.ErrConsultationNotFound)
}

func TestChangeStatusNotificationFailureIsSwallowed(t *testing.T) {
	f := newConsultationFixture(t)
	created := f.createPending(t)
	f.notifier.Fail = true

	updated, changed, err := f.svc.ChangeStatus(context.Background(), created.ID, model.ConsultationStatusApproved)
	require.NoError(t, err, "notification failure must not fail the operation")
	assert.True(t, changed)
	assert.Equal(t, model.ConsultationStatusApproved, updated.Status)
}

func TestUpdateRevalidatesReferences(t *testing.T) {
	f := newConsultationFixture(t)
	created := f.createPending(t)

	badExpert := int64(999)
	_, err := f.svc.Update(context.Background(), created.ID, service.ConsultationUpdate{
		ExpertID: &badExpert,
	})

	assert.ErrorIs(t, err, service.ErrExpertNotFound)
}

func TestUpdateStatusNotifiesParties(t *testing.T) {
	f := newConsultationFixture(t)
	created := f.createPending(t)

	status := model.ConsultationStatusCancelled
	updated, err := f.svc.Update(context.Background(), created.ID, service.ConsultationUpdate{
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ConsultationStatusCancelled, updated.Status)
	assert.Len(t, f.notifier.Sent, 2)
}

func TestListByExpertMissing(t *testing.T) {
	f := newConsultationFixture(t)

	_, err := f.svc.ListByExpert(context.Background(), 999)
	assert.ErrorIs(t, err, service.ErrExpertNotFound)
}

func TestDeleteMissing(t *testing.T) {
	f := newConsultationFixture(t)

	err := f.svc.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, service.ErrConsultationNotFound)
}

func TestSendExpiryReminders(t *testing.T) {
	f := newConsultationFixture(t)
	ctx := context.Background()

	// Истёкшая pending консультация
	_, err := f.svc.Create(ctx, service.CreateConsultationInput{
		ExpertID:     f.expert.ID,
		CustomerID:   f.customer.ID,
		Type:         "Family law",
		ScheduledFor: time.Now().Add(-2 * time.Hour),
	})
	require.NoError(t, err)

	// Истекающая в ближайшие сутки
	_, err = f.svc.Create(ctx, service.CreateConsultationInput{
		ExpertID:     f.expert.ID,
		CustomerID:   f.customer.ID,
		Type:         "Family law",
		ScheduledFor: time.Now().Add(2 * time.Hour),
	})
	require.NoError(t, err)

	// Далёкая pending — напоминание не положено
	_, err = f.svc.Create(ctx, service.CreateConsultationInput{
		ExpertID:     f.expert.ID,
		CustomerID:   f.customer.ID,
		Type:         "Family law",
		ScheduledFor: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)

	f.notifier.Sent = nil

	require.NoError(t, f.svc.SendExpiryReminders(ctx))

	// По два уведомления на каждую из двух подходящих консультаций
	assert.Len(t, f.notifier.Sent, 4)
}
