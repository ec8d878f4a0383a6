package models

import (
	"time"
)

// User represents a registered account. PasswordHash and RefreshToken are
// never serialized in API responses.
type User struct {
	ID           string    `json:"id" db:"id"`
	Fullname     string    `json:"fullname" db:"fullname"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	AvatarURL    string    `json:"avatar" db:"avatar_url"`
	AvatarID     string    `json:"-" db:"avatar_id"`
	CoverURL     *string   `json:"coverImage,omitempty" db:"cover_url"`
	CoverID      *string   `json:"-" db:"cover_id"`
	RefreshToken *string   `json:"-" db:"refresh_token"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Subscription is a directed edge: subscriber follows channel.
type Subscription struct {
	ID           string    `json:"id" db:"id"`
	ChannelID    string    `json:"channel" db:"channel_id"`
	SubscriberID string    `json:"subscriber" db:"subscriber_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
