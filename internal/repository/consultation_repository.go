package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gigabyte1511/blondeLawyer/internal/model"
	"github.com/gigabyte1511/blondeLawyer/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Консультации всегда читаются одним JOIN-запросом вместе с экспертом
// и клиентом — отдельной дозагрузки связей нет.
const consultationSelect = `
	SELECT c.id, c.expert_id, c.customer_id, c.type, c.status, c.message, c.scheduled_for, c.created_at, c.updated_at,
	       e.id, e.name, COALESCE(e.telegram_id, ''), e.telegram_link, e.chat_id, e.role, e.created_at, e.updated_at,
	       u.id, u.name, COALESCE(u.telegram_id, ''), u.telegram_link, u.chat_id, u.role, u.created_at, u.updated_at
	FROM consultations c
	JOIN users e ON e.id = c.expert_id
	JOIN users u ON u.id = c.customer_id
`

type ConsultationRepository struct {
	*base.Repository
}

func NewConsultationRepository(pool *pgxpool.Pool) *ConsultationRepository {
	return &ConsultationRepository{Repository: base.NewRepository(pool)}
}

func scanConsultation(row interface{ Scan(dest ...any) error }) (*model.Consultation, error) {
	var (
		c        model.Consultation
		expert   model.User
		customer model.User
	)

	err := row.Scan(
		&c.ID,
		&c.ExpertID,
		&c.CustomerID,
		&c.Type,
		&c.Status,
		&c.Message,
		&c.ScheduledFor,
		&c.CreatedAt,
		&c.UpdatedAt,
		&expert.ID,
		&expert.Name,
		&expert.TelegramID,
		&expert.TelegramLink,
		&expert.ChatID,
		&expert.Role,
		&expert.CreatedAt,
		&expert.UpdatedAt,
		&customer.ID,
		&customer.Name,
		&customer.TelegramID,
		&customer.TelegramLink,
		&customer.ChatID,
		&customer.Role,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Expert = &expert
	c.Customer = &customer
	return &c, nil
}

// Create создаёт новую консультацию. Вставка выполняется в транзакции:
// commit при успехе, rollback если что-то пошло не так до commit.
func (r *ConsultationRepository) Create(ctx context.Context, c *model.Consultation) error {
	tx, err := r.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO consultations (expert_id, customer_id, type, status, message, scheduled_for)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(
		ctx, query,
		c.ExpertID,
		c.CustomerID,
		c.Type,
		c.Status,
		c.Message,
		c.ScheduledFor,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create consultation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByID получает консультацию по ID вместе с экспертом и клиентом
func (r *ConsultationRepository) GetByID(ctx context.Context, id int64) (*model.Consultation, error) {
	query := consultationSelect + `
		WHERE c.id = $1
	`

	c, err := scanConsultation(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Консультация не найдена
		}
		return nil, fmt.Errorf("get consultation by id: %w", err)
	}

	return c, nil
}

// List получает все консультации
func (r *ConsultationRepository) List(ctx context.Context) ([]*model.Consultation, error) {
	query := consultationSelect + `
		ORDER BY c.created_at DESC
	`

	return r.listConsultations(ctx, query)
}

// ListByExpert получает все консультации эксперта
func (r *ConsultationRepository) ListByExpert(ctx context.Context, expertID int64) ([]*model.Consultation, error) {
	query := consultationSelect + `
		WHERE c.expert_id = $1
		ORDER BY c.created_at DESC
	`

	return r.listConsultations(ctx, query, expertID)
}

// ListByCustomer получает все консультации клиента
func (r *ConsultationRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*model.Consultation, error) {
	query := consultationSelect + `
		WHERE c.customer_id = $1
		ORDER BY c.created_at DESC
	`

	return r.listConsultations(ctx, query, customerID)
}

// ListByUser получает все консультации пользователя с любой стороны
func (r *ConsultationRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Consultation, error) {
	query := consultationSelect + `
		WHERE c.expert_id = $1 OR c.customer_id = $1
		ORDER BY c.created_at DESC
	`

	return r.listConsultations(ctx, query, userID)
}

// ListByExpertOnDate получает консультации эксперта за календарные сутки.
// Используется для расчёта занятости слотов.
func (r *ConsultationRepository) ListByExpertOnDate(ctx context.Context, expertID int64, day time.Time) ([]*model.Consultation, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	query := consultationSelect + `
		WHERE c.expert_id = $1 AND c.scheduled_for >= $2 AND c.scheduled_for < $3
		ORDER BY c.scheduled_for
	`

	return r.listConsultations(ctx, query, expertID, dayStart, dayEnd)
}

// ListPendingScheduledBefore получает pending консультации, время которых
// наступает раньше указанного момента. Используется напоминаниями.
func (r *ConsultationRepository) ListPendingScheduledBefore(ctx context.Context, before time.Time) ([]*model.Consultation, error) {
	query := consultationSelect + `
		WHERE c.status = $1 AND c.scheduled_for < $2
		ORDER BY c.scheduled_for
	`

	return r.listConsultations(ctx, query, model.ConsultationStatusPending, before)
}

func (r *ConsultationRepository) listConsultations(ctx context.Context, query string, args ...interface{}) ([]*model.Consultation, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list consultations: %w", err)
	}
	defer rows.Close()

	var consultations []*model.Consultation
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consultation: %w", err)
		}
		consultations = append(consultations, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate consultations: %w", err)
	}

	return consultations, nil
}

// Update обновляет поля консультации. Патч выполняется в транзакции.
func (r *ConsultationRepository) Update(ctx context.Context, c *model.Consultation) error {
	tx, err := r.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE consultations
		SET expert_id = $1, customer_id = $2, type = $3, status = $4, message = $5, scheduled_for = $6, updated_at = NOW()
		WHERE id = $7
	`

	tag, err := tx.Exec(
		ctx, query,
		c.ExpertID,
		c.CustomerID,
		c.Type,
		c.Status,
		c.Message,
		c.ScheduledFor,
		c.ID,
	)

	if err != nil {
		return fmt.Errorf("update consultation: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("consultation not found")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// UpdateStatus обновляет статус консультации
func (r *ConsultationRepository) UpdateStatus(ctx context.Context, id int64, status model.ConsultationStatus) error {
	query := `
		UPDATE consultations
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	affected, err := r.ExecAffected(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update consultation status: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("consultation not found")
	}

	return nil
}

// Delete удаляет консультацию. Возвращает false если консультация не найдена.
func (r *ConsultationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `
		DELETE FROM consultations
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete consultation: %w", err)
	}

	return affected > 0, nil
}
