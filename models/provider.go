package models

import "time"

// Provider approval states. Only approved providers can be booked.
const (
	ProviderApproved = "approved"
	ProviderPendingReview = "pending_review"
	ProviderSuspended = "suspended"
)

// Provider is the read model the booking core consumes: identity, approval
// status and consultation price, plus the denormalized patient counter the
// accept transaction increments.
type Provider struct {
	ID                string    `bson:"id" json:"id"`
	FullName          string    `bson:"full_name" json:"full_name"`
	Status            string    `bson:"status" json:"status"`
	ConsultationPrice int       `bson:"consultation_price" json:"consultation_price"`
	TotalPatients     int       `bson:"total_patients" json:"total_patients"`
	ClinicName        string    `bson:"clinic_name,omitempty" json:"clinic_name,omitempty"`
	ClinicAddress     string    `bson:"clinic_address,omitempty" json:"clinic_address,omitempty"`
	AvatarURL         string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	FCMToken          string    `bson:"fcm_token,omitempty" json:"-"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updated_at"`
}
