package model

import "time"

type ConsultationStatus string

const (
	ConsultationStatusPending   ConsultationStatus = "pending"   // Ожидает рассмотрения экспертом
	ConsultationStatusApproved  ConsultationStatus = "approved"  // Подтверждена
	ConsultationStatusRejected  ConsultationStatus = "rejected"  // Отклонена экспертом
	ConsultationStatusCompleted ConsultationStatus = "completed" // Завершена
	ConsultationStatusCancelled ConsultationStatus = "cancelled" // Отменена
)

// ValidConsultationStatus проверяет что статус из допустимого набора.
// Переходы между статусами не ограничиваются — workflow определяется
// тем, какие endpoints вызывает клиент.
func ValidConsultationStatus(s ConsultationStatus) bool {
	switch s {
	case ConsultationStatusPending,
		ConsultationStatusApproved,
		ConsultationStatusRejected,
		ConsultationStatusCompleted,
		ConsultationStatusCancelled:
		return true
	}
	return false
}

type Consultation struct {
	ID           int64              `json:"id"`
	ExpertID     int64              `json:"expertId"`
	CustomerID   int64              `json:"customerId"`
	Type         string             `json:"type"`
	Status       ConsultationStatus `json:"status"`
	Message      *string            `json:"message"`
	ScheduledFor time.Time          `json:"scheduledFor"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`

	// Связанные записи (не из таблицы consultations)
	Expert   *User `json:"expert,omitempty"`
	Customer *User `json:"customer,omitempty"`
}
