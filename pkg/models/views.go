package models

import (
	"time"
)

// View-models: denormalized projections assembled per response, never
// persisted. Field sets mirror the projection whitelists of the read
// endpoints so unrelated columns are not leaked.

// OwnerInfo is the public display subset of a user joined into other views.
type OwnerInfo struct {
	ID       string `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Fullname string `json:"fullname" db:"fullname"`
	Avatar   string `json:"avatar" db:"avatar_url"`
}

// VideoWithOwner is a video joined with its owner's display fields.
type VideoWithOwner struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	AssetID      string    `json:"videoId"`
	AssetURL     string    `json:"videoFile"`
	ThumbnailURL *string   `json:"thumbnail,omitempty"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
	Owner        OwnerInfo `json:"ownerDetails"`
}

// ChannelProfile is the public channel page for a username.
type ChannelProfile struct {
	ID                string  `json:"id"`
	Fullname          string  `json:"fullname"`
	Username          string  `json:"username"`
	Email             string  `json:"email"`
	Avatar            string  `json:"avatar"`
	CoverImage        *string `json:"coverImage,omitempty"`
	SubscriberCount   int64   `json:"subscribersCount"`
	SubscribedToCount int64   `json:"channelSubscribedToCount"`
	IsSubscribed      bool    `json:"isSubscribed"`
}

// CommentView is one comment in a video's comment list, with like state
// computed for the requesting viewer.
type CommentView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	LikeCount int64     `json:"likeCount"`
	IsLiked   bool      `json:"isLiked"`
	CreatedAt time.Time `json:"createdAt"`
	Owner     OwnerInfo `json:"ownerDetails"`
}

// TweetView is a tweet with its like count and owner display fields.
type TweetView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	LikeCount int64     `json:"likeCount"`
	CreatedAt time.Time `json:"createdAt"`
	Owner     OwnerInfo `json:"ownerDetail"`
}

// LikeSummary aggregates likes for a single target.
type LikeSummary struct {
	LikeCount int64 `json:"likeCount"`
	IsLiked   bool  `json:"isLiked"`
}

// PlaylistDetail is a playlist with its videos and their owners joined in.
type PlaylistDetail struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Owner       OwnerInfo        `json:"ownerDetails"`
	Videos      []VideoWithOwner `json:"videos"`
}

// Pagination describes one page of a list response. Page and Limit are
// 1-indexed; a page past the end yields an empty item list, not an error.
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// VideoPage is a paginated video feed.
type VideoPage struct {
	Videos     []VideoWithOwner `json:"videos"`
	Pagination Pagination       `json:"pagination"`
}

// CommentPage is a paginated comment list.
type CommentPage struct {
	Comments   []CommentView `json:"comments"`
	Pagination Pagination    `json:"pagination"`
}
