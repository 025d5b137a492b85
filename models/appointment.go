package models

import "time"

// Appointment statuses. Transitions are monotonic:
// pending -> upcoming | cancelled, upcoming -> past | cancelled is never
// performed by the engine (cancellation requires pending), past and
// cancelled are terminal.
const (
	AppointmentPending   = "pending"
	AppointmentUpcoming  = "upcoming"
	AppointmentPast      = "past"
	AppointmentCancelled = "cancelled"
)

// Actors recorded on cancellation.
const (
	ActorUser     = "user"
	ActorProvider = "provider"
)

// Appointment is a consultation booked against a reserved slot. It is never
// physically deleted; the status field carries the full lifecycle.
type Appointment struct {
	ID         string `bson:"id" json:"id"`
	UserID     string `bson:"user_id" json:"user_id"`
	ProviderID string `bson:"provider_id" json:"provider_id"`
	SlotID     string `bson:"slot_id" json:"slot_id"`

	// Snapshot of the consumed slot.
	Date  string `bson:"date" json:"date"`
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`

	// Price breakdown in minor currency units (VND).
	Price         int `bson:"price" json:"price"`
	VAT           int `bson:"vat" json:"vat"`
	AfterHoursFee int `bson:"after_hours_fee" json:"after_hours_fee"`
	Discount      int `bson:"discount" json:"discount"`
	TotalAmount   int `bson:"total_amount" json:"total_amount"`

	Status       string `bson:"status" json:"status"`
	CancelReason string `bson:"cancel_reason,omitempty" json:"cancel_reason,omitempty"`
	CancelledBy  string `bson:"cancelled_by,omitempty" json:"cancelled_by,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ValidAppointmentStatus reports whether s is one of the lifecycle statuses.
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentPending, AppointmentUpcoming, AppointmentPast, AppointmentCancelled:
		return true
	}
	return false
}
