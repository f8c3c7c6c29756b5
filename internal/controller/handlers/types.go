package handlers

import (
	"github.com/gigabyte1511/blondeLawyer/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService         *service.UserService
	consultationService *service.ConsultationService
	notifier            service.Notifier
	logger              *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	consultationService *service.ConsultationService,
	notifier service.Notifier,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:         userService,
		consultationService: consultationService,
		notifier:            notifier,
		logger:              logger,
	}
}
