package models

import "time"

// Payment methods: card settles instantly through the gateway, cash is
// deferred and settled at the clinic.
const (
	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"
)

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Payment records a settlement attempt for an appointment. The latest
// payment by creation time is authoritative for the appointment.
type Payment struct {
	ID              string     `bson:"id" json:"id"`
	AppointmentID   string     `bson:"appointment_id" json:"appointment_id"`
	UserID          string     `bson:"user_id" json:"user_id"`
	ProviderID      string     `bson:"provider_id" json:"provider_id"`
	Method          string     `bson:"method" json:"method"`
	Amount          int        `bson:"amount" json:"amount"`
	Status          string     `bson:"status" json:"status"`
	TransactionCode string     `bson:"transaction_code,omitempty" json:"transaction_code,omitempty"`
	CreatedAt       time.Time  `bson:"created_at" json:"created_at"`
	PaidAt          *time.Time `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
	RefundedAt      *time.Time `bson:"refunded_at,omitempty" json:"refunded_at,omitempty"`
}
