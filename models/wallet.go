package models

import "time"

// Wallet holds a provider's running balance. TotalEarned is monotonically
// non-decreasing; both fields grow only by atomic credits on acceptance.
type Wallet struct {
	ProviderID  string    `bson:"provider_id" json:"provider_id"`
	Balance     int       `bson:"balance" json:"balance"`
	TotalEarned int       `bson:"total_earned" json:"total_earned"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
