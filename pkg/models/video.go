package models

import (
	"time"
)

// Video represents an uploaded video. AssetID is the storage object id and
// doubles as the public lookup key for by-id fetches.
type Video struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	AssetID      string    `json:"videoId" db:"asset_id"`
	AssetURL     string    `json:"videoFile" db:"asset_url"`
	ThumbnailURL *string   `json:"thumbnail,omitempty" db:"thumbnail_url"`
	ThumbnailID  *string   `json:"-" db:"thumbnail_id"`
	Duration     float64   `json:"duration" db:"duration"`
	Views        int64     `json:"views" db:"views"`
	IsPublished  bool      `json:"isPublished" db:"is_published"`
	OwnerID      string    `json:"owner" db:"owner_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Playlist is an owner-scoped named collection of videos.
type Playlist struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	OwnerID     string    `json:"owner" db:"owner_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
