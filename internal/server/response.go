package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gigabyte1511/blondeLawyer/internal/service"
	"github.com/gin-gonic/gin"
)

// respondError переводит доменные ошибки в HTTP-коды: validation — 400,
// not found — 404, всё остальное — 500 с текстом ошибки как есть.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrExpertNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrConsultationNotFound):
		status = http.StatusNotFound
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"error": message})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// parseIDParam читает положительный числовой path-параметр. При ошибке
// пишет 400 и возвращает ok == false.
func parseIDParam(c *gin.Context, param, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "Valid "+label+" ID is required")
		return 0, false
	}
	return id, true
}
