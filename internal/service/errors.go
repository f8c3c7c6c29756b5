package service

import "errors"

// Ошибки доменного уровня. HTTP-слой переводит их в коды ответов:
// not found — 404, validation — 400, остальное — 500.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrExpertNotFound       = errors.New("expert not found")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrConsultationNotFound = errors.New("consultation not found")
	ErrValidation           = errors.New("validation failed")
)
