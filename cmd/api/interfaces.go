package main

import (
	"context"

	"github.com/vidtube/backend/internal/database"
	"github.com/vidtube/backend/internal/storage"
	"github.com/vidtube/backend/pkg/models"
)

// Per-resource store interfaces implemented by *database.Repository. The
// handlers depend on these so tests can substitute mocks.

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID string, token *string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	UpdateAccountDetails(ctx context.Context, userID, fullname, email string) (*models.User, error)
	UpdateAvatar(ctx context.Context, userID, url, assetID string) (*models.User, error)
	UpdateCover(ctx context.Context, userID, url, assetID string) (*models.User, error)
	GetChannelProfile(ctx context.Context, username, viewerID string) (*models.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, userID string) ([]models.VideoWithOwner, error)
}

type VideoStore interface {
	CreateVideo(ctx context.Context, video *models.Video) error
	GetVideoByAssetID(ctx context.Context, assetID string) (*models.Video, error)
	UpdateVideoDetails(ctx context.Context, assetID, ownerID, title, description string, thumbnailURL, thumbnailID *string) (*models.Video, error)
	DeleteVideo(ctx context.Context, assetID, ownerID string) (*models.Video, error)
	TogglePublishStatus(ctx context.Context, assetID, ownerID string) (*models.Video, error)
	ListVideos(ctx context.Context, params database.VideoListParams) (*models.VideoPage, error)
	GetVideoWithOwner(ctx context.Context, assetID string) (*models.VideoWithOwner, error)
	RecordView(ctx context.Context, userID, videoID string) error
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	UpdateComment(ctx context.Context, videoID, ownerID, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, videoID, ownerID string) error
	ListComments(ctx context.Context, params database.CommentListParams) (*models.CommentPage, error)
}

type TweetStore interface {
	CreateTweet(ctx context.Context, tweet *models.Tweet) error
	UpdateTweet(ctx context.Context, tweetID, ownerID, content string) (*models.Tweet, error)
	DeleteTweet(ctx context.Context, tweetID, ownerID string) error
	ListTweets(ctx context.Context, ownerID string) ([]models.TweetView, error)
}

type LikeStore interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, like *models.Like) error
	GetLikeSummary(ctx context.Context, target *models.Like) (*models.LikeSummary, error)
}

type PlaylistStore interface {
	CreatePlaylist(ctx context.Context, playlist *models.Playlist, videoID string) error
	AddPlaylistVideo(ctx context.Context, playlistID, ownerID, videoID string) (*models.Playlist, error)
	RemovePlaylistVideo(ctx context.Context, playlistID, ownerID, videoID string) (*models.Playlist, error)
	GetPlaylistDetail(ctx context.Context, playlistID, ownerID string) ([]models.PlaylistDetail, error)
}

type SubscriptionStore interface {
	CreateSubscription(ctx context.Context, sub *models.Subscription) error
	DeleteSubscription(ctx context.Context, channelID, subscriberID string) error
}

// MediaStore is the media asset gateway.
type MediaStore interface {
	UploadFile(ctx context.Context, objectName, filePath string) (*storage.Asset, error)
	Delete(ctx context.Context, objectName string) error
	GetURL(ctx context.Context, objectName string) (string, error)
}

type HealthChecker interface {
	Health(ctx context.Context) error
}
