package service_test

import (
	"context"
	"testing"

	"github.com/gigabyte1511/blondeLawyer/internal/model"
	"github.com/gigabyte1511/blondeLawyer/internal/service"
	"github.com/gigabyte1511/blondeLawyer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserService() (*service.UserService, *testutil.UserStore) {
	users := testutil.NewUserStore()
	return service.NewUserService(users, zap.NewNop()), users
}

func TestRegisterFromTelegram(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	user, created, err := svc.RegisterFromTelegram(ctx, "100", "500", "Иван", "ivan")
	require.NoError(t, err)

	assert.True(t, created)
	assert.NotZero(t, user.ID)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.Equal(t, "https://t.me/ivan", user.TelegramLink)
	assert.Equal(t, "500", user.ChatID)
}

func TestRegisterFromTelegramIdempotent(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	first, created, err := svc.RegisterFromTelegram(ctx, "100", "500", "Иван", "ivan")
	require.NoError(t, err)
	require.True(t, created)

	// Повторный /start не создаёт дубликат, но обновляет chat ID
	second, created, err := svc.RegisterFromTelegram(ctx, "100", "600", "Иван", "ivan")
	require.NoError(t, err)

	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "600", second.ChatID)
}

func TestRegisterFromTelegramNoUsername(t *testing.T) {
	svc, _ := newUserService()

	user, _, err := svc.RegisterFromTelegram(context.Background(), "100", "500", "Иван", "")
	require.NoError(t, err)

	assert.Empty(t, user.TelegramLink)
}

func TestCreateUserDefaultsRole(t *testing.T) {
	svc, _ := newUserService()

	user := &model.User{Name: "Иван"}
	require.NoError(t, svc.Create(context.Background(), user))

	assert.Equal(t, model.RoleCustomer, user.Role)
}

func TestCreateUserUnknownRole(t *testing.T) {
	svc, _ := newUserService()

	err := svc.Create(context.Background(), &model.User{Name: "Иван", Role: "admin"})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestGetByRole(t *testing.T) {
	svc, users := newUserService()
	expert := users.Seed(&model.User{Name: "Анна", Role: model.RoleExpert})

	got, err := svc.GetByRole(context.Background(), expert.ID, model.RoleExpert)
	require.NoError(t, err)
	assert.Equal(t, expert.ID, got.ID)

	_, err = svc.GetByRole(context.Background(), expert.ID, model.RoleCustomer)
	assert.ErrorIs(t, err, service.ErrCustomerNotFound)

	_, err = svc.GetByRole(context.Background(), 999, model.RoleExpert)
	assert.ErrorIs(t, err, service.ErrExpertNotFound)
}

func TestUpdateUser(t *testing.T) {
	svc, users := newUserService()
	user := users.Seed(&model.User{Name: "Иван", Role: model.RoleCustomer})

	name := "Иван Петров"
	role := model.RoleExpert
	updated, err := svc.Update(context.Background(), user.ID, service.UserUpdate{
		Name: &name,
		Role: &role,
	})
	require.NoError(t, err)

	assert.Equal(t, "Иван Петров", updated.Name)
	assert.Equal(t, model.RoleExpert, updated.Role)
}

func TestUpdateUserUnknownRole(t *testing.T) {
	svc, users := newUserService()
	user := users.Seed(&model.User{Name: "Иван", Role: model.RoleCustomer})

	bad := model.Role("admin")
	_, err := svc.Update(context.Background(), user.ID, service.UserUpdate{Role: &bad})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestSetRole(t *testing.T) {
	svc, users := newUserService()
	users.Seed(&model.User{Name: "Иван", TelegramID: "100", Role: model.RoleCustomer})

	user, err := svc.SetRole(context.Background(), "100", model.RoleExpert)
	require.NoError(t, err)
	assert.Equal(t, model.RoleExpert, user.Role)

	_, err = svc.SetRole(context.Background(), "999", model.RoleExpert)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestDeleteByRole(t *testing.T) {
	svc, users := newUserService()
	expert := users.Seed(&model.User{Name: "Анна", Role: model.RoleExpert})

	// Удаление через /customers/:id не трогает эксперта
	err := svc.DeleteByRole(context.Background(), expert.ID, model.RoleCustomer)
	assert.ErrorIs(t, err, service.ErrCustomerNotFound)

	require.NoError(t, svc.DeleteByRole(context.Background(), expert.ID, model.RoleExpert))

	_, err = svc.Get(context.Background(), expert.ID)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
