package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gigabyte1511/blondeLawyer/internal/model"
	"github.com/gigabyte1511/blondeLawyer/internal/notify"
	"go.uber.org/zap"
)

type ConsultationService struct {
	consultationStore ConsultationStore
	userStore         UserStore
	notifier          Notifier
	logger            *zap.Logger
}

func NewConsultationService(
	consultationStore ConsultationStore,
	userStore UserStore,
	notifier Notifier,
	logger *zap.Logger,
) *ConsultationService {
	return &ConsultationService{
		consultationStore: consultationStore,
		userStore:         userStore,
		notifier:          notifier,
		logger:            logger,
	}
}

// CreateConsultationInput входные данные заявки на консультацию
type CreateConsultationInput struct {
	ExpertID     int64
	CustomerID   int64
	Type         string
	Message      *string
	Status       model.ConsultationStatus // Пустой статус означает pending
	ScheduledFor time.Time
}

// ConsultationUpdate частичное обновление консультации. Nil-поля не трогаются.
type ConsultationUpdate struct {
	ExpertID     *int64
	CustomerID   *int64
	Type         *string
	Message      *string
	Status       *model.ConsultationStatus
	ScheduledFor *time.Time
}

// Create создаёт консультацию. Эксперт и клиент должны существовать
// с соответствующими ролями. После записи обе стороны получают
// best-effort уведомление.
func (s *ConsultationService) Create(ctx context.Context, input CreateConsultationInput) (*model.Consultation, error) {
	if input.Type == "" {
		return nil, fmt.Errorf("%w: consultation type is required", ErrValidation)
	}
	if input.ScheduledFor.IsZero() {
		return nil, fmt.Errorf("%w: scheduled date is required", ErrValidation)
	}

	status := input.Status
	if status == "" {
		status = model.ConsultationStatusPending
	}
	if !model.ValidConsultationStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	// Проверяем что эксперт и клиент существуют с нужными ролями
	expert, err := s.userStore.GetByIDAndRole(ctx, input.ExpertID, model.RoleExpert)
	if err != nil {
		return nil, fmt.Errorf("check expert: %w", err)
	}
	if expert == nil {
		return nil, ErrExpertNotFound
	}

	customer, err := s.userStore.GetByIDAndRole(ctx, input.CustomerID, model.RoleCustomer)
	if err != nil {
		return nil, fmt.Errorf("check customer: %w", err)
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	consultation := &model.Consultation{
		ExpertID:     input.ExpertID,
		CustomerID:   input.CustomerID,
		Type:         input.Type,
		Status:       status,
		Message:      input.Message,
		ScheduledFor: input.ScheduledFor,
	}

	if err := s.consultationStore.Create(ctx, consultation); err != nil {
		return nil, fmt.Errorf("create consultation: %w", err)
	}

	// Перечитываем созданную запись вместе со связями для ответа
	created, err := s.consultationStore.GetByID(ctx, consultation.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch created consultation: %w", err)
	}
	if created == nil {
		return nil, fmt.Errorf("fetch created consultation %d: %w", consultation.ID, ErrConsultationNotFound)
	}

	s.logger.Info("Consultation created",
		zap.Int64("consultation_id", created.ID),
		zap.Int64("expert_id", created.ExpertID),
		zap.Int64("customer_id", created.CustomerID),
		zap.String("type", created.Type),
		zap.String("status", string(created.Status)),
	)

	// Уведомления отправляются после commit и не влияют на результат запроса
	s.notifier.Send(ctx, customer.TelegramID, notify.CreatedCustomerText(created))
	s.notifier.Send(ctx, expert.TelegramID, notify.CreatedExpertText(created))

	return created, nil
}

// Get получает консультацию по ID
func (s *ConsultationService) Get(ctx context.Context, id int64) (*model.Consultation, error) {
	c, err := s.consultationStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrConsultationNotFound
	}
	return c, nil
}

// List получает все консультации
func (s *ConsultationService) List(ctx context.Context) ([]*model.Consultation, error) {
	return s.consultationStore.List(ctx)
}

// ListByExpert получает консультации эксперта. Эксперт должен существовать.
func (s *ConsultationService) ListByExpert(ctx context.Context, expertID int64) ([]*model.Consultation, error) {
	expert, err := s.userStore.GetByIDAndRole(ctx, expertID, model.RoleExpert)
	if err != nil {
		return nil, fmt.Errorf("check expert: %w", err)
	}
	if expert == nil {
		return nil, ErrExpertNotFound
	}

	return s.consultationStore.ListByExpert(ctx, expertID)
}

// ListByCustomer получает консультации клиента. Клиент должен существовать.
func (s *ConsultationService) ListByCustomer(ctx context.Context, customerID int64) ([]*model.Consultation, error) {
	customer, err := s.userStore.GetByIDAndRole(ctx, customerID, model.RoleCustomer)
	if err != nil {
		return nil, fmt.Errorf("check customer: %w", err)
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	return s.consultationStore.ListByCustomer(ctx, customerID)
}

// ListByUser получает консультации пользователя с любой стороны
func (s *ConsultationService) ListByUser(ctx context.Context, userID int64) ([]*model.Consultation, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return s.consultationStore.ListByUser(ctx, userID)
}

// Update применяет частичное обновление консультации. Изменённые ссылки
// на эксперта/клиента проверяются заново. При смене статуса стороны
// получают уведомления.
func (s *ConsultationService) Update(ctx context.Context, id int64, upd ConsultationUpdate) (*model.Consultation, error) {
	existing, err := s.consultationStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrConsultationNotFound
	}

	prevStatus := existing.Status

	if upd.ExpertID != nil && *upd.ExpertID != existing.ExpertID {
		expert, err := s.userStore.GetByIDAndRole(ctx, *upd.ExpertID, model.RoleExpert)
		if err != nil {
			return nil, fmt.Errorf("check expert: %w", err)
		}
		if expert == nil {
			return nil, ErrExpertNotFound
		}
		existing.ExpertID = *upd.ExpertID
	}

	if upd.CustomerID != nil && *upd.CustomerID != existing.CustomerID {
		customer, err := s.userStore.GetByIDAndRole(ctx, *upd.CustomerID, model.RoleCustomer)
		if err != nil {
			return nil, fmt.Errorf("check customer: %w", err)
		}
		if customer == nil {
			return nil, ErrCustomerNotFound
		}
		existing.CustomerID = *upd.CustomerID
	}

	if upd.Type != nil {
		existing.Type = *upd.Type
	}
	if upd.Message != nil {
		existing.Message = upd.Message
	}
	if upd.ScheduledFor != nil {
		existing.ScheduledFor = *upd.ScheduledFor
	}
	if upd.Status != nil {
		if !model.ValidConsultationStatus(*upd.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *upd.Status)
		}
		existing.Status = *upd.Status
	}

	if err := s.consultationStore.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update consultation: %w", err)
	}

	updated, err := s.consultationStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch updated consultation: %w", err)
	}
	if updated == nil {
		return nil, ErrConsultationNotFound
	}

	s.logger.Info("Consultation updated", zap.Int64("consultation_id", id))

	if updated.Status != prevStatus {
		s.notifyStatusChange(ctx, updated)
	}

	return updated, nil
}

// ChangeStatus обновляет статус консультации. Если статус уже совпадает
// с запрошенным — ничего не делает и возвращает запись как есть (changed
// == false, уведомления не отправляются).
func (s *ConsultationService) ChangeStatus(ctx context.Context, id int64, status model.ConsultationStatus) (*model.Consultation, bool, error) {
	if !model.ValidConsultationStatus(status) {
		return nil, false, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	existing, err := s.consultationStore.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, ErrConsultationNotFound
	}

	if existing.Status == status {
		return existing, false, nil
	}

	if err := s.consultationStore.UpdateStatus(ctx, id, status); err != nil {
		return nil, false, fmt.Errorf("update status: %w", err)
	}

	updated, err := s.consultationStore.GetByID(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("fetch updated consultation: %w", err)
	}
	if updated == nil {
		return nil, false, ErrConsultationNotFound
	}

	s.logger.Info("Consultation status changed",
		zap.Int64("consultation_id", id),
		zap.String("from", string(existing.Status)),
		zap.String("to", string(status)),
	)

	s.notifyStatusChange(ctx, updated)

	return updated, true, nil
}

// Approve подтверждает консультацию
func (s *ConsultationService) Approve(ctx context.Context, id int64) (*model.Consultation, bool, error) {
	return s.ChangeStatus(ctx, id, model.ConsultationStatusApproved)
}

// Reject отклоняет консультацию
func (s *ConsultationService) Reject(ctx context.Context, id int64) (*model.Consultation, bool, error) {
	return s.ChangeStatus(ctx, id, model.ConsultationStatusRejected)
}

// Delete удаляет консультацию
func (s *ConsultationService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.consultationStore.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrConsultationNotFound
	}

	s.logger.Info("Consultation deleted", zap.Int64("consultation_id", id))
	return nil
}

// SendExpiryReminders рассылает напоминания по pending консультациям:
// "срок истекает" если консультация в ближайшие сутки, "срок истёк" если
// время уже прошло. Отправки best-effort, состояние напоминаний не хранится.
func (s *ConsultationService) SendExpiryReminders(ctx context.Context) error {
	now := time.Now()

	pending, err := s.consultationStore.ListPendingScheduledBefore(ctx, now.Add(24*time.Hour))
	if err != nil {
		return fmt.Errorf("list pending consultations: %w", err)
	}

	for _, c := range pending {
		if c.ScheduledFor.Before(now) {
			s.notifyParties(ctx, c, notify.ExpiredExpertText(c), notify.ExpiredCustomerText(c))
		} else {
			s.notifyParties(ctx, c, notify.PreExpiredExpertText(c), notify.PreExpiredCustomerText(c))
		}
	}

	if len(pending) > 0 {
		s.logger.Info("Expiry reminders sent", zap.Int("consultations", len(pending)))
	}

	return nil
}

// notifyStatusChange уведомляет обе стороны о смене статуса. Ошибки
// отправки никогда не роняют запрос.
func (s *ConsultationService) notifyStatusChange(ctx context.Context, c *model.Consultation) {
	if c.Customer != nil {
		s.notifier.SendConsultationStatus(ctx, c.Customer.TelegramID, c.ID, c.Status, c.ScheduledFor, userName(c.Expert))
	}
	if c.Expert != nil {
		s.notifier.Send(ctx, c.Expert.TelegramID, notify.StatusChangedExpertText(c))
	}
}

func (s *ConsultationService) notifyParties(ctx context.Context, c *model.Consultation, expertText, customerText string) {
	if c.Expert != nil {
		s.notifier.Send(ctx, c.Expert.TelegramID, expertText)
	}
	if c.Customer != nil {
		s.notifier.Send(ctx, c.Customer.TelegramID, customerText)
	}
}

func userName(u *model.User) string {
	if u == nil {
		return ""
	}
	return u.Name
}
