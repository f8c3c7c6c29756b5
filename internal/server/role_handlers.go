package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gigabyte1511/blondeLawyer/internal/model"
	"github.com/gigabyte1511/blondeLawyer/internal/service"
	"github.com/gin-gonic/gin"
)

// Endpoints /experts и /customers — представления таблицы users,
// отфильтрованные по роли. Отдельных сущностей за ними нет.

func (s *Server) listExperts(c *gin.Context) {
	s.listByRole(c, model.RoleExpert, "experts", "Experts retrieved successfully.")
}

func (s *Server) listCustomers(c *gin.Context) {
	s.listByRole(c, model.RoleCustomer, "customers", "Customers retrieved successfully.")
}

func (s *Server) listByRole(c *gin.Context, role model.Role, key, message string) {
	users, err := s.users.ListByRole(c.Request.Context(), role)
	if err != nil {
		respondError(c, err)
		return
	}

	if users == nil {
		users = []*model.User{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		key:       users,
	})
}

func (s *Server) getExpertByID(c *gin.Context) {
	s.getByRole(c, model.RoleExpert, "expert")
}

func (s *Server) getCustomerByID(c *gin.Context) {
	s.getByRole(c, model.RoleCustomer, "customer")
}

func (s *Server) getByRole(c *gin.Context, role model.Role, label string) {
	id, ok := parseIDParam(c, "id", label)
	if !ok {
		return
	}

	user, err := s.users.GetByRole(c.Request.Context(), id, role)
	if err != nil {
		if errors.Is(err, service.ErrExpertNotFound) || errors.Is(err, service.ErrCustomerNotFound) {
			respondNotFound(c, fmt.Sprintf("%s with ID %q not found.", titleCase(label), c.Param("id")))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": titleCase(label) + " retrieved successfully.",
		label:     user,
	})
}

func (s *Server) getExpertByTelegramID(c *gin.Context) {
	s.getByRoleAndTelegramID(c, model.RoleExpert, "expert")
}

func (s *Server) getCustomerByTelegramID(c *gin.Context) {
	s.getByRoleAndTelegramID(c, model.RoleCustomer, "customer")
}

func (s *Server) getByRoleAndTelegramID(c *gin.Context, role model.Role, label string) {
	telegramID := c.Param("telegram_id")
	if telegramID == "" {
		respondBadRequest(c, "Telegram ID is required")
		return
	}

	user, err := s.users.GetByTelegramIDAndRole(c.Request.Context(), telegramID, role)
	if err != nil {
		if errors.Is(err, service.ErrExpertNotFound) || errors.Is(err, service.ErrCustomerNotFound) {
			respondNotFound(c, fmt.Sprintf("%s with Telegram ID %q not found.", titleCase(label), telegramID))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": titleCase(label) + " retrieved successfully.",
		label:     user,
	})
}

func (s *Server) createExpert(c *gin.Context) {
	s.createWithRole(c, model.RoleExpert, "expert")
}

func (s *Server) createCustomer(c *gin.Context) {
	s.createWithRole(c, model.RoleCustomer, "customer")
}

func (s *Server) createWithRole(c *gin.Context, role model.Role, label string) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	user := &model.User{Role: role}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.TelegramID != nil {
		user.TelegramID = *req.TelegramID
	}
	if req.TelegramLink != nil {
		user.TelegramLink = *req.TelegramLink
	}
	if req.ChatID != nil {
		user.ChatID = *req.ChatID
	}

	if err := s.users.Create(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": titleCase(label) + " created successfully.",
		label:     user,
	})
}

func (s *Server) deleteExpert(c *gin.Context) {
	s.deleteByRole(c, model.RoleExpert, "expert")
}

func (s *Server) deleteCustomer(c *gin.Context) {
	s.deleteByRole(c, model.RoleCustomer, "customer")
}

func (s *Server) deleteByRole(c *gin.Context, role model.Role, label string) {
	id, ok := parseIDParam(c, "id", label)
	if !ok {
		return
	}

	if err := s.users.DeleteByRole(c.Request.Context(), id, role); err != nil {
		if errors.Is(err, service.ErrExpertNotFound) || errors.Is(err, service.ErrCustomerNotFound) {
			respondNotFound(c, fmt.Sprintf("%s with ID %q not found.", titleCase(label), c.Param("id")))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s with ID %q has been deleted successfully.", titleCase(label), c.Param("id")),
	})
}

// getExpertSlots возвращает часовые слоты эксперта на дату
func (s *Server) getExpertSlots(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "expert")
	if !ok {
		return
	}

	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		respondBadRequest(c, "Valid date is required, use YYYY-MM-DD")
		return
	}

	slots, err := s.schedule.AvailableSlots(c.Request.Context(), id, day)
	if err != nil {
		if errors.Is(err, service.ErrExpertNotFound) {
			respondNotFound(c, fmt.Sprintf("Expert with ID %q not found.", c.Param("id")))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Time slots retrieved successfully.",
		"slots":   slots,
	})
}

func titleCase(label string) string {
	if label == "" {
		return label
	}
	return string(label[0]-'a'+'A') + label[1:]
}
