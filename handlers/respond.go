package handlers

import (
	"errors"
	"net/http"

	"soulspace/services/appointment"
	"soulspace/services/payment"
	"soulspace/services/slot"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondServiceError translates a service-layer error into an HTTP
// response. Typed errors carry a stable code the clients branch on;
// anything untyped is an internal fault and stays opaque.
func respondServiceError(c *gin.Context, err error) {
	var slotErr *slot.SlotError
	if errors.As(err, &slotErr) {
		c.JSON(slotErrorStatus(slotErr.Code), gin.H{"error": slotErr.Message, "code": slotErr.Code})
		return
	}

	var engineErr *appointment.EngineError
	if errors.As(err, &engineErr) {
		c.JSON(engineErrorStatus(engineErr.Code), gin.H{"error": engineErr.Message, "code": engineErr.Code})
		return
	}

	var payErr *payment.PaymentError
	if errors.As(err, &payErr) {
		c.JSON(paymentErrorStatus(payErr.Code), gin.H{"error": payErr.Message, "code": payErr.Code})
		return
	}

	zap.L().Error("unhandled service error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func slotErrorStatus(code string) int {
	switch code {
	case slot.CodeOverlap, slot.CodeBooked:
		return http.StatusConflict
	case slot.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func engineErrorStatus(code string) int {
	switch code {
	case appointment.CodeSlotUnavailable, appointment.CodeSlotInPast,
		appointment.CodeInvalidState, appointment.CodePaymentNotReady,
		appointment.CodeProviderNotApproved:
		return http.StatusConflict
	case appointment.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func paymentErrorStatus(code string) int {
	switch code {
	case payment.CodeNotPending, payment.CodeAlreadySettled:
		return http.StatusConflict
	case payment.CodeNotFound:
		return http.StatusNotFound
	case payment.CodeGatewayDeclined:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}
