package slot

import "fmt"

// Error codes surfaced by the slot service.
const (
	CodeOverlap    = "slotOverlap"
	CodeBooked     = "slotBooked"
	CodeNotFound   = "slotNotFound"
	CodeValidation = "slotValidation"
)

type SlotError struct {
	Code    string
	Message string
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newOverlapError(date, start, end string) error {
	return &SlotError{
		Code:    CodeOverlap,
		Message: fmt.Sprintf("slot %s %s-%s overlaps or is adjacent to an existing slot", date, start, end),
	}
}

func newBookedError(slotID string) error {
	return &SlotError{
		Code:    CodeBooked,
		Message: fmt.Sprintf("slot %s is reserved and cannot be removed", slotID),
	}
}

func newNotFoundError(slotID string) error {
	return &SlotError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("slot %s not found", slotID),
	}
}

func newValidationError(msg string) error {
	return &SlotError{Code: CodeValidation, Message: msg}
}
