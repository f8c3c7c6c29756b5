// Package testutil содержит in-memory реализации хранилищ и нотификатора
// для тестов сервисного и HTTP-слоя.
package testutil

import (
	"context"
	"time"

	"github.com/gigabyte1511/blondeLawyer/internal/model"
)

// UserStore хранит пользователей в памяти
type UserStore struct {
	seq   int64
	Users map[int64]*model.User
}

func NewUserStore() *UserStore {
	return &UserStore{Users: make(map[int64]*model.User)}
}

// Seed добавляет пользователя с готовым ID
func (s *UserStore) Seed(user *model.User) *model.User {
	if user.ID == 0 {
		s.seq++
		user.ID = s.seq
	} else if user.ID > s.seq {
		s.seq = user.ID
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
		user.UpdatedAt = user.CreatedAt
	}
	s.Users[user.ID] = user
	return user
}

func (s *UserStore) Create(_ context.Context, user *model.User) error {
	s.seq++
	user.ID = s.seq
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	s.Users[user.ID] = &copied
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	user, ok := s.Users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *UserStore) GetByTelegramID(_ context.Context, telegramID string) (*model.User, error) {
	for _, user := range s.Users {
		if user.TelegramID != "" && user.TelegramID == telegramID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *UserStore) GetByIDAndRole(_ context.Context, id int64, role model.Role) (*model.User, error) {
	user, ok := s.Users[id]
	if !ok || user.Role != role {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *UserStore) GetByTelegramIDAndRole(ctx context.Context, telegramID string, role model.Role) (*model.User, error) {
	user, err := s.GetByTelegramID(ctx, telegramID)
	if err != nil || user == nil || user.Role != role {
		return nil, err
	}
	return user, nil
}

func (s *UserStore) List(_ context.Context) ([]*model.User, error) {
	var users []*model.User
	for id := int64(1); id <= s.seq; id++ {
		if user, ok := s.Users[id]; ok {
			copied := *user
			users = append(users, &copied)
		}
	}
	return users, nil
}

func (s *UserStore) ListByRole(ctx context.Context, role model.Role) ([]*model.User, error) {
	all, _ := s.List(ctx)
	var users []*model.User
	for _, user := range all {
		if user.Role == role {
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *UserStore) Update(_ context.Context, user *model.User) error {
	if _, ok := s.Users[user.ID]; !ok {
		return errNotFound
	}
	user.UpdatedAt = time.Now()
	copied := *user
	s.Users[user.ID] = &copied
	return nil
}

func (s *UserStore) UpdateRole(_ context.Context, id int64, role model.Role) error {
	user, ok := s.Users[id]
	if !ok {
		return errNotFound
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	return nil
}

func (s *UserStore) UpdateChatID(_ context.Context, id int64, chatID string) error {
	user, ok := s.Users[id]
	if !ok {
		return errNotFound
	}
	user.ChatID = chatID
	user.UpdatedAt = time.Now()
	return nil
}

func (s *UserStore) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := s.Users[id]; !ok {
		return false, nil
	}
	delete(s.Users, id)
	return true, nil
}
