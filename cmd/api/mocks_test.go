package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/database"
	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/middleware"
	"github.com/vidtube/backend/internal/storage"
	"github.com/vidtube/backend/pkg/models"
)

// MockUserStore is a mock implementation of UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetUserByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) UpdateRefreshToken(ctx context.Context, userID string, token *string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockUserStore) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserStore) UpdateAccountDetails(ctx context.Context, userID, fullname, email string) (*models.User, error) {
	args := m.Called(ctx, userID, fullname, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) UpdateAvatar(ctx context.Context, userID, url, assetID string) (*models.User, error) {
	args := m.Called(ctx, userID, url, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) UpdateCover(ctx context.Context, userID, url, assetID string) (*models.User, error) {
	args := m.Called(ctx, userID, url, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetChannelProfile(ctx context.Context, username, viewerID string) (*models.ChannelProfile, error) {
	args := m.Called(ctx, username, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChannelProfile), args.Error(1)
}

func (m *MockUserStore) GetWatchHistory(ctx context.Context, userID string) ([]models.VideoWithOwner, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VideoWithOwner), args.Error(1)
}

// MockVideoStore is a mock implementation of VideoStore
type MockVideoStore struct {
	mock.Mock
}

func (m *MockVideoStore) CreateVideo(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoStore) GetVideoByAssetID(ctx context.Context, assetID string) (*models.Video, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoStore) UpdateVideoDetails(ctx context.Context, assetID, ownerID, title, description string, thumbnailURL, thumbnailID *string) (*models.Video, error) {
	args := m.Called(ctx, assetID, ownerID, title, description, thumbnailURL, thumbnailID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoStore) DeleteVideo(ctx context.Context, assetID, ownerID string) (*models.Video, error) {
	args := m.Called(ctx, assetID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoStore) TogglePublishStatus(ctx context.Context, assetID, ownerID string) (*models.Video, error) {
	args := m.Called(ctx, assetID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoStore) ListVideos(ctx context.Context, params database.VideoListParams) (*models.VideoPage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VideoPage), args.Error(1)
}

func (m *MockVideoStore) GetVideoWithOwner(ctx context.Context, assetID string) (*models.VideoWithOwner, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VideoWithOwner), args.Error(1)
}

func (m *MockVideoStore) RecordView(ctx context.Context, userID, videoID string) error {
	args := m.Called(ctx, userID, videoID)
	return args.Error(0)
}

// MockCommentStore is a mock implementation of CommentStore
type MockCommentStore struct {
	mock.Mock
}

func (m *MockCommentStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentStore) UpdateComment(ctx context.Context, videoID, ownerID, content string) (*models.Comment, error) {
	args := m.Called(ctx, videoID, ownerID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentStore) DeleteComment(ctx context.Context, videoID, ownerID string) error {
	args := m.Called(ctx, videoID, ownerID)
	return args.Error(0)
}

func (m *MockCommentStore) ListComments(ctx context.Context, params database.CommentListParams) (*models.CommentPage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommentPage), args.Error(1)
}

// MockTweetStore is a mock implementation of TweetStore
type MockTweetStore struct {
	mock.Mock
}

func (m *MockTweetStore) CreateTweet(ctx context.Context, tweet *models.Tweet) error {
	args := m.Called(ctx, tweet)
	return args.Error(0)
}

func (m *MockTweetStore) UpdateTweet(ctx context.Context, tweetID, ownerID, content string) (*models.Tweet, error) {
	args := m.Called(ctx, tweetID, ownerID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tweet), args.Error(1)
}

func (m *MockTweetStore) DeleteTweet(ctx context.Context, tweetID, ownerID string) error {
	args := m.Called(ctx, tweetID, ownerID)
	return args.Error(0)
}

func (m *MockTweetStore) ListTweets(ctx context.Context, ownerID string) ([]models.TweetView, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TweetView), args.Error(1)
}

// MockLikeStore is a mock implementation of LikeStore
type MockLikeStore struct {
	mock.Mock
}

func (m *MockLikeStore) CreateLike(ctx context.Context, like *models.Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockLikeStore) DeleteLike(ctx context.Context, like *models.Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockLikeStore) GetLikeSummary(ctx context.Context, target *models.Like) (*models.LikeSummary, error) {
	args := m.Called(ctx, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LikeSummary), args.Error(1)
}

// MockPlaylistStore is a mock implementation of PlaylistStore
type MockPlaylistStore struct {
	mock.Mock
}

func (m *MockPlaylistStore) CreatePlaylist(ctx context.Context, playlist *models.Playlist, videoID string) error {
	args := m.Called(ctx, playlist, videoID)
	return args.Error(0)
}

func (m *MockPlaylistStore) AddPlaylistVideo(ctx context.Context, playlistID, ownerID, videoID string) (*models.Playlist, error) {
	args := m.Called(ctx, playlistID, ownerID, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Playlist), args.Error(1)
}

func (m *MockPlaylistStore) RemovePlaylistVideo(ctx context.Context, playlistID, ownerID, videoID string) (*models.Playlist, error) {
	args := m.Called(ctx, playlistID, ownerID, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Playlist), args.Error(1)
}

func (m *MockPlaylistStore) GetPlaylistDetail(ctx context.Context, playlistID, ownerID string) ([]models.PlaylistDetail, error) {
	args := m.Called(ctx, playlistID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlaylistDetail), args.Error(1)
}

// MockSubscriptionStore is a mock implementation of SubscriptionStore
type MockSubscriptionStore struct {
	mock.Mock
}

func (m *MockSubscriptionStore) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionStore) DeleteSubscription(ctx context.Context, channelID, subscriberID string) error {
	args := m.Called(ctx, channelID, subscriberID)
	return args.Error(0)
}

// MockMediaStore is a mock implementation of MediaStore
type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) UploadFile(ctx context.Context, objectName, filePath string) (*storage.Asset, error) {
	args := m.Called(ctx, objectName, filePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Asset), args.Error(1)
}

func (m *MockMediaStore) Delete(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *MockMediaStore) GetURL(ctx context.Context, objectName string) (string, error) {
	args := m.Called(ctx, objectName)
	return args.String(0), args.Error(1)
}

type testStores struct {
	users         *MockUserStore
	videos        *MockVideoStore
	comments      *MockCommentStore
	tweets        *MockTweetStore
	likes         *MockLikeStore
	playlists     *MockPlaylistStore
	subscriptions *MockSubscriptionStore
	media         *MockMediaStore
}

func newTestAPI(t *testing.T) (*API, *testStores) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logging.NewDefaultLogger()
	require.NoError(t, err)

	stores := &testStores{
		users:         &MockUserStore{},
		videos:        &MockVideoStore{},
		comments:      &MockCommentStore{},
		tweets:        &MockTweetStore{},
		likes:         &MockLikeStore{},
		playlists:     &MockPlaylistStore{},
		subscriptions: &MockSubscriptionStore{},
		media:         &MockMediaStore{},
	}

	api := &API{
		cfg: &config.Config{
			Auth: config.AuthConfig{
				AccessTokenTTL:  15 * time.Minute,
				RefreshTokenTTL: 240 * time.Hour,
			},
		},
		log:           log,
		users:         stores.users,
		videos:        stores.videos,
		comments:      stores.comments,
		tweets:        stores.tweets,
		likes:         stores.likes,
		playlists:     stores.playlists,
		subscriptions: stores.subscriptions,
		media:         stores.media,
		health:        nil,
	}

	return api, stores
}

func newTestContext(t *testing.T, method, target string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req

	return c, w
}

func TestMain(m *testing.M) {
	middleware.SetSecrets("test-access-secret", "test-refresh-secret")
	os.Exit(m.Run())
}

func authenticate(c *gin.Context, user *models.User) {
	c.Set(middleware.AuthContextKey, user)
}

func mustRefreshToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := middleware.GenerateRefreshToken(userID, time.Hour)
	require.NoError(t, err)
	return token
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}
