package model

import "time"

type Role string

const (
	RoleExpert   Role = "expert"   // Эксперт, принимает консультации
	RoleCustomer Role = "customer" // Клиент, записывается на консультации
)

// ValidRole проверяет что роль из допустимого набора
func ValidRole(r Role) bool {
	return r == RoleExpert || r == RoleCustomer
}

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	TelegramID   string    `json:"telegramId"`   // Строка, чтобы вместить большие числовые ID
	TelegramLink string    `json:"telegramLink"` // Ссылка вида https://t.me/<username>
	ChatID       string    `json:"chatId"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
