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

type createConsultationRequest struct {
	ExpertID     *int64  `json:"expertId" binding:"required"`
	CustomerID   *int64  `json:"customerId" binding:"required"`
	Type         string  `json:"type" binding:"required"`
	Status       string  `json:"status"`
	Message      *string `json:"message"`
	ScheduledFor string  `json:"scheduledFor" binding:"required"`
}

type updateConsultationRequest struct {
	ExpertID     *int64  `json:"expertId"`
	CustomerID   *int64  `json:"customerId"`
	Type         *string `json:"type"`
	Status       *string `json:"status"`
	Message      *string `json:"message"`
	ScheduledFor *string `json:"scheduledFor"`
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
	// Comment принимается для совместимости с клиентами, но не хранится
	Comment *string `json:"comment"`
}

func (s *Server) listConsultations(c *gin.Context) {
	consultations, err := s.consultations.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	if len(consultations) == 0 {
		respondNotFound(c, "No consultations found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Consultations retrieved successfully.",
		"consultations": consultations,
	})
}

func (s *Server) getConsultationByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "consultation")
	if !ok {
		return
	}

	consultation, err := s.consultations.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrConsultationNotFound) {
			respondNotFound(c, fmt.Sprintf("Consultation with ID %q not found.", c.Param("id")))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      fmt.Sprintf("Consultation with ID %q retrieved successfully.", c.Param("id")),
		"consultation": consultation,
	})
}

func (s *Server) createConsultation(c *gin.Context) {
	var req createConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	scheduledFor, err := time.Parse(time.RFC3339, req.ScheduledFor)
	if err != nil {
		respondBadRequest(c, "Invalid scheduledFor format, use RFC3339")
		return
	}

	consultation, err := s.consultations.Create(c.Request.Context(), service.CreateConsultationInput{
		ExpertID:     *req.ExpertID,
		CustomerID:   *req.CustomerID,
		Type:         req.Type,
		Message:      req.Message,
		Status:       model.ConsultationStatus(req.Status),
		ScheduledFor: scheduledFor,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExpertNotFound):
			respondNotFound(c, fmt.Sprintf("Expert with ID \"%d\" not found.", *req.ExpertID))
		case errors.Is(err, service.ErrCustomerNotFound):
			respondNotFound(c, fmt.Sprintf("Customer with ID \"%d\" not found.", *req.CustomerID))
		default:
			respondError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Consultation created successfully.",
		"consultation": consultation,
	})
}

func (s *Server) updateConsultation(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "consultation")
	if !ok {
		return
	}

	var req updateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	upd := service.ConsultationUpdate{
		ExpertID:   req.ExpertID,
		CustomerID: req.CustomerID,
		Type:       req.Type,
		Message:    req.Message,
	}

	if req.Status != nil {
		status := model.ConsultationStatus(*req.Status)
		upd.Status = &status
	}
	if req.ScheduledFor != nil {
		scheduledFor, err := time.Parse(time.RFC3339, *req.ScheduledFor)
		if err != nil {
			respondBadRequest(c, "Invalid scheduledFor format, use RFC3339")
			return
		}
		upd.ScheduledFor = &scheduledFor
	}

	consultation, err := s.consultations.Update(c.Request.Context(), id, upd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConsultationNotFound):
			respondNotFound(c, fmt.Sprintf("Consultation with ID %q not found.", c.Param("id")))
		case errors.Is(err, service.ErrExpertNotFound):
			respondNotFound(c, "Expert not found.")
		case errors.Is(err, service.ErrCustomerNotFound):
			respondNotFound(c, "Customer not found.")
		default:
			respondError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Consultation updated successfully.",
		"consultation": consultation,
	})
}

func (s *Server) updateConsultationStatus(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Status is required")
		return
	}

	s.changeStatus(c, model.ConsultationStatus(req.Status))
}

func (s *Server) approveConsultation(c *gin.Context) {
	s.changeStatus(c, model.ConsultationStatusApproved)
}

func (s *Server) rejectConsultation(c *gin.Context) {
	s.changeStatus(c, model.ConsultationStatusRejected)
}

func (s *Server) changeStatus(c *gin.Context, status model.ConsultationStatus) {
	id, ok := parseIDParam(c, "id", "consultation")
	if !ok {
		return
	}

	consultation, changed, err := s.consultations.ChangeStatus(c.Request.Context(), id, status)
	if err != nil {
		if errors.Is(err, service.ErrConsultationNotFound) {
			respondNotFound(c, fmt.Sprintf("Consultation with ID %q not found.", c.Param("id")))
			return
		}
		respondError(c, err)
		return
	}

	message := fmt.Sprintf("Consultation status updated to %q successfully.", status)
	if !changed {
		message = fmt.Sprintf("Consultation status is already %q.", status)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      message,
		"consultation": consultation,
	})
}

func (s *Server) getConsultationsByCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "customer_id", "customer")
	if !ok {
		return
	}

	consultations, err := s.consultations.ListByCustomer(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondNotFound(c, fmt.Sprintf("Customer with ID %q not found.", c.Param("customer_id")))
			return
		}
		respondError(c, err)
		return
	}

	if len(consultations) == 0 {
		respondNotFound(c, fmt.Sprintf("No consultations found for customer with ID %q.", c.Param("customer_id")))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("Consultations for customer with ID %q retrieved successfully.", c.Param("customer_id")),
		"consultations": consultations,
	})
}

func (s *Server) getConsultationsByExpert(c *gin.Context) {
	id, ok := parseIDParam(c, "expert_id", "expert")
	if !ok {
		return
	}

	consultations, err := s.consultations.ListByExpert(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExpertNotFound) {
			respondNotFound(c, fmt.Sprintf("Expert with ID %q not found.", c.Param("expert_id")))
			return
		}
		respondError(c, err)
		return
	}

	if len(consultations) == 0 {
		respondNotFound(c, fmt.Sprintf("No consultations found for expert with ID %q.", c.Param("expert_id")))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("Consultations for expert with ID %q retrieved successfully.", c.Param("expert_id")),
		"consultations": consultations,
	})
}

func (s *Server) getConsultationsByUser(c *gin.Context) {
	id, ok := parseIDParam(c, "user_id", "user")
	if !ok {
		return
	}

	consultations, err := s.consultations.ListByUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondNotFound(c, fmt.Sprintf("User with ID %q not found.", c.Param("user_id")))
			return
		}
		respondError(c, err)
		return
	}

	if len(consultations) == 0 {
		respondNotFound(c, fmt.Sprintf("No consultations found for user with ID %q.", c.Param("user_id")))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("Consultations for user with ID %q retrieved successfully.", c.Param("user_id")),
		"consultations": consultations,
	})
}

func (s *Server) deleteConsultation(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "consultation")
	if !ok {
		return
	}

	if err := s.consultations.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrConsultationNotFound) {
			respondNotFound(c, fmt.Sprintf("Consultation with ID %q not found.", c.Param("id")))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Consultation with ID %q has been deleted successfully.", c.Param("id")),
	})
}
