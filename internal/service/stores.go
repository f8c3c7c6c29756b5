package service

import (
	"context"
	"time"

	"github.com/gigabyte1511/blondeLawyer/internal/model"
)

// UserStore описывает доступ к пользователям. Реализуется
// repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByTelegramID(ctx context.Context, telegramID string) (*model.User, error)
	GetByIDAndRole(ctx context.Context, id int64, role model.Role) (*model.User, error)
	GetByTelegramIDAndRole(ctx context.Context, telegramID string, role model.Role) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdateRole(ctx context.Context, id int64, role model.Role) error
	UpdateChatID(ctx context.Context, id int64, chatID string) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// ConsultationStore описывает доступ к консультациям. Реализуется
// repository.ConsultationRepository.
type ConsultationStore interface {
	Create(ctx context.Context, c *model.Consultation) error
	GetByID(ctx context.Context, id int64) (*model.Consultation, error)
	List(ctx context.Context) ([]*model.Consultation, error)
	ListByExpert(ctx context.Context, expertID int64) ([]*model.Consultation, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*model.Consultation, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.Consultation, error)
	ListByExpertOnDate(ctx context.Context, expertID int64, day time.Time) ([]*model.Consultation, error)
	ListPendingScheduledBefore(ctx context.Context, before time.Time) ([]*model.Consultation, error)
	Update(ctx context.Context, c *model.Consultation) error
	UpdateStatus(ctx context.Context, id int64, status model.ConsultationStatus) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// Notifier отправляет Telegram-уведомления. Реализуется notify.Service.
// Отправка best-effort: возвращается признак успеха, ошибок нет.
type Notifier interface {
	Send(ctx context.Context, telegramID, text string) bool
	SendConsultationStatus(ctx context.Context, telegramID string, consultationID int64, status model.ConsultationStatus, scheduledFor time.Time, expertName string) bool
}
