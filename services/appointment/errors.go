package appointment

import "fmt"

// Error codes surfaced by the booking engine. Conflict codes are safe for
// the client to retry after re-reading state; validation codes are not.
const (
	CodeSlotUnavailable     = "slotUnavailable"
	CodeSlotInPast          = "slotInPast"
	CodeInvalidState        = "invalidState"
	CodePaymentNotReady     = "paymentNotReady"
	CodeInvalidCancelReason = "invalidCancelReason"
	CodeProviderNotApproved = "providerNotApproved"
	CodeNotFound            = "notFound"
	CodeInvalidStatusFilter = "invalidStatusFilter"
)

type EngineError struct {
	Code    string
	Message string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newSlotUnavailableError(slotID string) error {
	return &EngineError{
		Code:    CodeSlotUnavailable,
		Message: fmt.Sprintf("slot %s is already booked or does not exist", slotID),
	}
}

func newSlotInPastError(slotID string) error {
	return &EngineError{
		Code:    CodeSlotInPast,
		Message: fmt.Sprintf("slot %s starts in the past and cannot be booked", slotID),
	}
}

// newInvalidStateError is returned by every transition that loses the race
// on status=pending. Callers that re-invoke after success should treat it as
// "already applied".
func newInvalidStateError(appointmentID, expected string) error {
	return &EngineError{
		Code:    CodeInvalidState,
		Message: fmt.Sprintf("appointment %s is not %s", appointmentID, expected),
	}
}

func newPaymentNotReadyError(appointmentID string) error {
	return &EngineError{
		Code:    CodePaymentNotReady,
		Message: fmt.Sprintf("appointment %s has no acceptable payment", appointmentID),
	}
}

func newInvalidCancelReasonError() error {
	return &EngineError{
		Code:    CodeInvalidCancelReason,
		Message: "a cancel reason is required",
	}
}

func newProviderNotApprovedError(providerID string) error {
	return &EngineError{
		Code:    CodeProviderNotApproved,
		Message: fmt.Sprintf("provider %s is not approved for bookings", providerID),
	}
}

func newInvalidStatusFilterError(status string) error {
	return &EngineError{
		Code:    CodeInvalidStatusFilter,
		Message: fmt.Sprintf("unknown appointment status %q", status),
	}
}

func newNotFoundError(kind, id string) error {
	return &EngineError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s not found", kind, id),
	}
}
