package models

// User is the requester read model: enough identity to render appointment
// views and route notifications. Account management lives outside the core.
type User struct {
	ID        string `bson:"id" json:"id"`
	Username  string `bson:"username" json:"username"`
	Email     string `bson:"email" json:"email"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	AvatarURL string `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	FCMToken  string `bson:"fcm_token,omitempty" json:"-"`
}
