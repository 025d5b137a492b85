package handlers

import (
	"net/http"

	"soulspace/middleware"
	"soulspace/services/slot"

	"github.com/gin-gonic/gin"
)

// SlotService is wired by the composition root before the router starts.
var SlotService slot.SlotService

// PublishSlot creates an open slot on the authenticated provider's calendar.
func PublishSlot(c *gin.Context) {
	var input struct {
		Date  string `json:"date" binding:"required"`
		Start string `json:"start" binding:"required"`
		End   string `json:"end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := SlotService.Publish(c.Request.Context(), middleware.ActorID(c), input.Date, input.Start, input.End)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListProviderSlots returns the authenticated provider's slots for a month
// (?month=YYYY-MM).
func ListProviderSlots(c *gin.Context) {
	month := c.Query("month")
	slots, err := SlotService.ListByMonth(c.Request.Context(), middleware.ActorID(c), month)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ListAvailableSlots returns a provider's open slots for a date, for the
// requester-facing booking screen.
func ListAvailableSlots(c *gin.Context) {
	providerID := c.Param("id")
	date := c.Query("date")
	slots, err := SlotService.ListAvailable(c.Request.Context(), providerID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// RemoveSlot deletes one of the authenticated provider's open slots.
// Reserved slots cannot be removed.
func RemoveSlot(c *gin.Context) {
	slotID := c.Param("id")
	if err := SlotService.Remove(c.Request.Context(), middleware.ActorID(c), slotID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": slotID})
}
