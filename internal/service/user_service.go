package service

import (
	"context"
	"fmt"

	"github.com/gigabyte1511/blondeLawyer/internal/model"
	"go.uber.org/zap"
)

type UserService struct {
	userStore UserStore
	logger    *zap.Logger
}

func NewUserService(userStore UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		userStore: userStore,
		logger:    logger,
	}
}

// UserUpdate частичное обновление пользователя. Nil-поля не трогаются.
type UserUpdate struct {
	Name         *string
	TelegramID   *string
	TelegramLink *string
	ChatID       *string
	Role         *model.Role
}

// RegisterFromTelegram регистрирует пользователя при первом контакте с ботом
// или обновляет chat ID при повторном. Идемпотентна. Новый пользователь
// получает роль customer.
func (s *UserService) RegisterFromTelegram(ctx context.Context, telegramID, chatID, name, username string) (*model.User, bool, error) {
	existing, err := s.userStore.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, false, fmt.Errorf("check existing user: %w", err)
	}

	if existing != nil {
		if existing.ChatID != chatID {
			if err := s.userStore.UpdateChatID(ctx, existing.ID, chatID); err != nil {
				return nil, false, fmt.Errorf("update chat id: %w", err)
			}
			existing.ChatID = chatID

			s.logger.Info("User chat id updated",
				zap.Int64("user_id", existing.ID),
				zap.String("telegram_id", telegramID),
			)
		}
		return existing, false, nil
	}

	user := &model.User{
		Name:       name,
		TelegramID: telegramID,
		ChatID:     chatID,
		Role:       model.RoleCustomer, // По умолчанию клиент
	}
	if username != "" {
		user.TelegramLink = "https://t.me/" + username
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("New user registered",
		zap.Int64("user_id", user.ID),
		zap.String("telegram_id", telegramID),
		zap.String("name", name),
	)

	return user, true, nil
}

// Create создаёт пользователя через API
func (s *UserService) Create(ctx context.Context, user *model.User) error {
	if user.Role == "" {
		user.Role = model.RoleCustomer
	}
	if !model.ValidRole(user.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, user.Role)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	return nil
}

// Get получает пользователя по ID
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID string) (*model.User, error) {
	user, err := s.userStore.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetByRole получает пользователя по ID, требуя определённую роль.
// Возвращает ErrExpertNotFound/ErrCustomerNotFound если записи нет
// или роль не совпадает.
func (s *UserService) GetByRole(ctx context.Context, id int64, role model.Role) (*model.User, error) {
	user, err := s.userStore.GetByIDAndRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, roleNotFound(role)
	}
	return user, nil
}

// GetByTelegramIDAndRole получает пользователя по Telegram ID с фильтром по роли
func (s *UserService) GetByTelegramIDAndRole(ctx context.Context, telegramID string, role model.Role) (*model.User, error) {
	user, err := s.userStore.GetByTelegramIDAndRole(ctx, telegramID, role)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, roleNotFound(role)
	}
	return user, nil
}

// List получает всех пользователей
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.userStore.List(ctx)
}

// ListByRole получает пользователей с указанной ролью
func (s *UserService) ListByRole(ctx context.Context, role model.Role) ([]*model.User, error) {
	return s.userStore.ListByRole(ctx, role)
}

// Update применяет частичное обновление пользователя
func (s *UserService) Update(ctx context.Context, id int64, upd UserUpdate) (*model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.TelegramID != nil {
		user.TelegramID = *upd.TelegramID
	}
	if upd.TelegramLink != nil {
		user.TelegramLink = *upd.TelegramLink
	}
	if upd.ChatID != nil {
		user.ChatID = *upd.ChatID
	}
	if upd.Role != nil {
		if !model.ValidRole(*upd.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *upd.Role)
		}
		user.Role = *upd.Role
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("User updated", zap.Int64("user_id", id))

	return user, nil
}

// SetRole переключает роль пользователя по Telegram ID (команды бота)
func (s *UserService) SetRole(ctx context.Context, telegramID string, role model.Role) (*model.User, error) {
	user, err := s.userStore.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.userStore.UpdateRole(ctx, user.ID, role); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	user.Role = role

	s.logger.Info("User role updated",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(role)),
	)

	return user, nil
}

// Delete удаляет пользователя. Консультации удаляются каскадом на уровне БД.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.userStore.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}

	s.logger.Info("User deleted", zap.Int64("user_id", id))
	return nil
}

// DeleteByRole удаляет пользователя, требуя определённую роль
// (endpoints /experts/:id и /customers/:id)
func (s *UserService) DeleteByRole(ctx context.Context, id int64, role model.Role) error {
	user, err := s.userStore.GetByIDAndRole(ctx, id, role)
	if err != nil {
		return err
	}
	if user == nil {
		return roleNotFound(role)
	}

	return s.Delete(ctx, id)
}

func roleNotFound(role model.Role) error {
	if role == model.RoleExpert {
		return ErrExpertNotFound
	}
	return ErrCustomerNotFound
}
