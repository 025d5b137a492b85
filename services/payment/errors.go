package payment

import "fmt"

// Error codes surfaced by the payment orchestrator.
const (
	CodeNotPending      = "appointmentNotPending"
	CodeAlreadySettled  = "paymentAlreadySettled"
	CodeInvalidMethod   = "invalidPaymentMethod"
	CodeNotFound        = "paymentNotFound"
	CodeGatewayDeclined = "paymentGatewayDeclined"
)

type PaymentError struct {
	Code    string
	Message string
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newNotPendingError(appointmentID string) error {
	return &PaymentError{
		Code:    CodeNotPending,
		Message: fmt.Sprintf("appointment %s is not pending and cannot be paid", appointmentID),
	}
}

func newAlreadySettledError(appointmentID string) error {
	return &PaymentError{
		Code:    CodeAlreadySettled,
		Message: fmt.Sprintf("appointment %s has already been paid", appointmentID),
	}
}

func newInvalidMethodError(method string) error {
	return &PaymentError{
		Code:    CodeInvalidMethod,
		Message: fmt.Sprintf("unsupported payment method %q", method),
	}
}

func newNotFoundError(appointmentID string) error {
	return &PaymentError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("appointment %s not found", appointmentID),
	}
}

func newGatewayDeclinedError(err error) error {
	return &PaymentError{
		Code:    CodeGatewayDeclined,
		Message: err.Error(),
	}
}
