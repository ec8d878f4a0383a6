package models

import (
	"time"
)

// Comment is a user comment on a video.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	VideoID   string    `json:"video" db:"video_id"`
	OwnerID   string    `json:"owner" db:"owner_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Tweet is a short text post owned by a user.
type Tweet struct {
	ID        string    `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	OwnerID   string    `json:"owner" db:"owner_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Like references exactly one of video, comment or tweet. At most one like
// per (liker, target) pair, enforced by partial unique indexes.
type Like struct {
	ID        string    `json:"id" db:"id"`
	VideoID   *string   `json:"video,omitempty" db:"video_id"`
	CommentID *string   `json:"comment,omitempty" db:"comment_id"`
	TweetID   *string   `json:"tweet,omitempty" db:"tweet_id"`
	LikerID   string    `json:"likedBy" db:"liker_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
