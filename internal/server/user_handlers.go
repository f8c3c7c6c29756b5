package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gigabyte1511/blondeLawyer/internal/model"
	"github.com/gigabyte1511/blondeLawyer/internal/service"
	"github.com/gin-gonic/gin"
)

type userRequest struct {
	Name         *string     `json:"name"`
	TelegramID   *string     `json:"telegramId"`
	TelegramLink *string     `json:"telegramLink"`
	ChatID       *string     `json:"chatId"`
	Role         *model.Role `json:"role"`
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	if users == nil {
		users = []*model.User{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Users retrieved successfully.",
		"users":   users,
	})
}

func (s *Server) getUserByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	user, err := s.users.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondNotFound(c, fmt.Sprintf("User with ID %q not found.", c.Param("id")))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User retrieved successfully.",
		"user":    user,
	})
}

func (s *Server) getUserByTelegramID(c *gin.Context) {
	telegramID := c.Param("telegramId")
	if telegramID == "" {
		respondBadRequest(c, "Telegram ID is required")
		return
	}

	user, err := s.users.GetByTelegramID(c.Request.Context(), telegramID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondNotFound(c, fmt.Sprintf("User with Telegram ID %q not found.", telegramID))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User retrieved successfully.",
		"user":    user,
	})
}

func (s *Server) createUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	user := &model.User{}
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
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.users.Create(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully.",
		"user":    user,
	})
}

func (s *Server) updateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	user, err := s.users.Update(c.Request.Context(), id, service.UserUpdate{
		Name:         req.Name,
		TelegramID:   req.TelegramID,
		TelegramLink: req.TelegramLink,
		ChatID:       req.ChatID,
		Role:         req.Role,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondNotFound(c, fmt.Sprintf("User with ID %q not found.", c.Param("id")))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully.",
		"user":    user,
	})
}

func (s *Server) deleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	if err := s.users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondNotFound(c, fmt.Sprintf("User with ID %q not found.", c.Param("id")))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("User with ID %q has been deleted successfully.", c.Param("id")),
	})
}
