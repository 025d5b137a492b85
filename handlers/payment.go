package handlers

import (
	"net/http"

	"soulspace/middleware"
	"soulspace/services/payment"

	"github.com/gin-gonic/gin"
)

// PaymentService is wired by the composition root before the router starts.
var PaymentService payment.PaymentService

// RecordPayment settles a pending appointment. Card settles through the
// gateway immediately; cash is recorded and collected at the consultation.
func RecordPayment(c *gin.Context) {
	var input struct {
		Method             string `json:"method" binding:"required"`
		PaymentMethodToken string `json:"payment_method_token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	pay, err := PaymentService.Record(c.Request.Context(), middleware.ActorID(c), c.Param("id"), input.Method, input.PaymentMethodToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pay)
}
