// Package server реализует REST API платформы: CRUD по пользователям
// и консультациям, workflow статусов и расчёт свободных слотов.
package server

import (
	"context"
	"net/http"

	"github.com/gigabyte1511/blondeLawyer/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Server struct {
	srv           *http.Server
	engine        *gin.Engine
	users         *service.UserService
	consultations *service.ConsultationService
	schedule      *service.ScheduleService
	logger        *zap.Logger
}

func New(
	addr string,
	users *service.UserService,
	consultations *service.ConsultationService,
	schedule *service.ScheduleService,
	logger *zap.Logger,
) *Server {
	s := &Server{
		users:         users,
		consultations: consultations,
		schedule:      schedule,
		logger:        logger,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.requestLogger())
	engine.Use(requestMetrics())

	// SPA ходит к API с другого origin
	engine.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization", "Accept"},
		MaxAge:       86400,
	}))

	s.registerRoutes(engine)

	s.engine = engine
	s.srv = &http.Server{Addr: addr, Handler: engine}
	return s
}

func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := r.Group("/users")
	{
		users.GET("", s.listUsers)
		users.POST("", s.createUser)
		users.GET("/byTelegramId/:telegramId", s.getUserByTelegramID)
		users.GET("/:id", s.getUserByID)
		users.PUT("/:id", s.updateUser)
		users.DELETE("/:id", s.deleteUser)
	}

	experts := r.Group("/experts")
	{
		experts.GET("", s.listExperts)
		experts.POST("", s.createExpert)
		experts.GET("/telegram/:telegram_id", s.getExpertByTelegramID)
		experts.GET("/:id", s.getExpertByID)
		experts.GET("/:id/slots", s.getExpertSlots)
		experts.DELETE("/:id", s.deleteExpert)
	}

	customers := r.Group("/customers")
	{
		customers.GET("", s.listCustomers)
		customers.POST("", s.createCustomer)
		customers.GET("/telegram/:telegram_id", s.getCustomerByTelegramID)
		customers.GET("/:id", s.getCustomerByID)
		customers.DELETE("/:id", s.deleteCustomer)
	}

	consultations := r.Group("/consultations")
	{
		consultations.GET("", s.listConsultations)
		consultations.POST("", s.createConsultation)
		consultations.GET("/customer/:customer_id", s.getConsultationsByCustomer)
		consultations.GET("/expert/:expert_id", s.getConsultationsByExpert)
		consultations.GET("/user/:user_id", s.getConsultationsByUser)
		consultations.GET("/:id", s.getConsultationByID)
		consultations.PUT("/:id", s.updateConsultation)
		consultations.PUT("/:id/status", s.updateConsultationStatus)
		consultations.PUT("/:id/approve", s.approveConsultation)
		consultations.PUT("/:id/reject", s.rejectConsultation)
		consultations.DELETE("/:id", s.deleteConsultation)
	}
}

// Handler возвращает корневой http.Handler (используется тестами)
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start запускает HTTP-сервер
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.srv.Addr))
	return s.srv.ListenAndServe()
}

// Shutdown останавливает сервер с ожиданием активных запросов
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
