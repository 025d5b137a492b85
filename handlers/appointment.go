package handlers

import (
	"net/http"

	"soulspace/middleware"
	"soulspace/services/appointment"

	"github.com/gin-gonic/gin"
)

// AppointmentService is wired by the composition root before the router
// starts.
var AppointmentService appointment.AppointmentService

// CreateAppointment books a slot for the authenticated user.
func CreateAppointment(c *gin.Context) {
	var input struct {
		ProviderID string `json:"provider_id" binding:"required"`
		SlotID     string `json:"slot_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := AppointmentService.Create(c.Request.Context(), middleware.ActorID(c), input.ProviderID, input.SlotID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// ListUserAppointments returns the authenticated user's appointments,
// optionally filtered with ?status=.
func ListUserAppointments(c *gin.Context) {
	items, err := AppointmentService.ListForUser(c.Request.Context(), middleware.ActorID(c), c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": items})
}

// GetUserAppointment returns the requester-facing detail view.
func GetUserAppointment(c *gin.Context) {
	detail, err := AppointmentService.GetForUser(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CancelUserAppointment cancels the authenticated user's pending
// appointment. A reason is required.
func CancelUserAppointment(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := AppointmentService.CancelByUser(c.Request.Context(), c.Param("id"), middleware.ActorID(c), input.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListProviderAppointments returns the authenticated provider's
// appointments, optionally filtered with ?status=.
func ListProviderAppointments(c *gin.Context) {
	items, err := AppointmentService.ListForProvider(c.Request.Context(), middleware.ActorID(c), c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": items})
}

// GetProviderAppointment returns the provider-facing detail view.
func GetProviderAppointment(c *gin.Context) {
	detail, err := AppointmentService.GetForProvider(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ActOnAppointment accepts or declines a pending appointment from the
// provider side.
func ActOnAppointment(c *gin.Context) {
	var input struct {
		Action string `json:"action" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	switch input.Action {
	case "accept":
		result, err := AppointmentService.Accept(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	case "decline":
		appt, err := AppointmentService.Decline(c.Request.Context(), c.Param("id"), middleware.ActorID(c), input.Reason)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, appt)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be accept or decline"})
	}
}

// CancelProviderAppointment cancels a pending appointment from the provider
// side. A reason is required.
func CancelProviderAppointment(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := AppointmentService.CancelByProvider(c.Request.Context(), c.Param("id"), middleware.ActorID(c), input.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}
