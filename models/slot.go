package models

import "time"

// Slot is a provider-published consultation time slot.
// Date is "YYYY-MM-DD"; Start/End are zero-padded "HH:MM" clock times,
// so lexical comparison matches chronological order.
type Slot struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"provider_id" json:"provider_id"`
	Date       string    `bson:"date" json:"date"`
	Start      string    `bson:"start" json:"start"`
	End        string    `bson:"end" json:"end"`
	Reserved   bool      `bson:"reserved" json:"reserved"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
