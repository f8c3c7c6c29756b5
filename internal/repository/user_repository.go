package repository

import (
	"context"
	"fmt"

	"github.com/gigabyte1511/blondeLawyer/internal/model"
	"github.com/gigabyte1511/blondeLawyer/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// telegram_id хранится как NULL при отсутствии, чтобы UNIQUE не срабатывал
// на пустых значениях
const userColumns = `id, name, COALESCE(telegram_id, ''), telegram_link, chat_id, role, created_at, updated_at`

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.TelegramID,
		&user.TelegramLink,
		&user.ChatID,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create создаёт нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (name, telegram_id, telegram_link, chat_id, role)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		user.Name,
		user.TelegramID,
		user.TelegramLink,
		user.ChatID,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	user, err := scanUser(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID string) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE telegram_id = $1
	`

	user, err := scanUser(r.QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}

	return user, nil
}

// GetByIDAndRole получает пользователя по ID с фильтром по роли.
// Заменяет выборку через "таблицы" experts/customers старой схемы.
func (r *UserRepository) GetByIDAndRole(ctx context.Context, id int64, role model.Role) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND role = $2
	`

	user, err := scanUser(r.QueryRow(ctx, query, id, role))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id and role: %w", err)
	}

	return user, nil
}

// GetByTelegramIDAndRole получает пользователя по Telegram ID с фильтром по роли
func (r *UserRepository) GetByTelegramIDAndRole(ctx context.Context, telegramID string, role model.Role) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE telegram_id = $1 AND role = $2
	`

	user, err := scanUser(r.QueryRow(ctx, query, telegramID, role))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by telegram id and role: %w", err)
	}

	return user, nil
}

// List получает всех пользователей
func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY id
	`

	return r.listUsers(ctx, query)
}

// ListByRole получает всех пользователей с указанной ролью
func (r *UserRepository) ListByRole(ctx context.Context, role model.Role) ([]*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = $1
		ORDER BY id
	`

	return r.listUsers(ctx, query, role)
}

func (r *UserRepository) listUsers(ctx context.Context, query string, args ...interface{}) ([]*model.User, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// Update обновляет данные пользователя
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET name = $1, telegram_id = NULLIF($2, ''), telegram_link = $3, chat_id = $4, role = $5, updated_at = NOW()
		WHERE id = $6
	`

	affected, err := r.ExecAffected(
		ctx, query,
		user.Name,
		user.TelegramID,
		user.TelegramLink,
		user.ChatID,
		user.Role,
		user.ID,
	)

	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// UpdateRole обновляет роль пользователя
func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	query := `
		UPDATE users
		SET role = $1, updated_at = NOW()
		WHERE id = $2
	`

	affected, err := r.ExecAffected(ctx, query, role, id)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// UpdateChatID обновляет chat ID пользователя
func (r *UserRepository) UpdateChatID(ctx context.Context, id int64, chatID string) error {
	query := `
		UPDATE users
		SET chat_id = $1, updated_at = NOW()
		WHERE id = $2
	`

	affected, err := r.ExecAffected(ctx, query, chatID, id)
	if err != nil {
		return fmt.Errorf("update user chat id: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// Delete удаляет пользователя. Возвращает false если пользователь не найден.
// Связанные консультации удаляются каскадно на уровне БД.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `
		DELETE FROM users
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}

	return affected > 0, nil
}
