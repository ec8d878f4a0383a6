package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vidtube/backend/internal/database"
	"github.com/vidtube/backend/pkg/models"
)

func TestNewLikeRequiresExactlyOneTarget(t *testing.T) {
	api, stores := newTestAPI(t)

	targets := []string{
		"/api/v1/likes/new-like",
		"/api/v1/likes/new-like?videoId=v1&commentId=c1",
		"/api/v1/likes/new-like?videoId=v1&commentId=c1&tweetId=t1",
	}

	for _, target := range targets {
		c, w := newTestContext(t, "POST", target, nil)
		authenticate(c, testUser())
		api.newLike(c)

		assert.Equal(t, http.StatusBadRequest, w.Code, "target %s", target)
	}

	stores.likes.AssertNotCalled(t, "CreateLike", mock.Anything, mock.Anything)
}

func TestNewLikeResolvesVideoTarget(t *testing.T) {
	api, stores := newTestAPI(t)

	video := &models.Video{ID: "vid-1", AssetID: "videos/abc.mp4"}
	stores.videos.On("GetVideoByAssetID", mock.Anything, "videos/abc.mp4").
		Return(video, nil)
	stores.likes.On("CreateLike", mock.Anything, mock.MatchedBy(func(like *models.Like) bool {
		return like.VideoID != nil && *like.VideoID == "vid-1" && like.LikerID == "user-1"
	})).Return(nil)

	c, w := newTestContext(t, "POST", "/api/v1/likes/new-like?videoId=videos%2Fabc.mp4", nil)
	authenticate(c, testUser())
	api.newLike(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	stores.likes.AssertExpectations(t)
}

func TestNewLikeTwice(t *testing.T) {
	api, stores := newTestAPI(t)

	stores.likes.On("CreateLike", mock.Anything, mock.AnythingOfType("*models.Like")).
		Return(database.ErrDuplicate)

	c, w := newTestContext(t, "POST", "/api/v1/likes/new-like?commentId=c1", nil)
	authenticate(c, testUser())
	api.newLike(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "already liked", env.Message)
}

func TestNewLikeUnknownTarget(t *testing.T) {
	api, stores := newTestAPI(t)

	// a comment id with no backing row fails the foreign key, not the
	// uniqueness check
	stores.likes.On("CreateLike", mock.Anything, mock.AnythingOfType("*models.Like")).
		Return(database.ErrNotFound)

	c, w := newTestContext(t, "POST", "/api/v1/likes/new-like?commentId=missing", nil)
	authenticate(c, testUser())
	api.newLike(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "like target not found", env.Message)
}

func TestUnlikeWithoutLike(t *testing.T) {
	api, stores := newTestAPI(t)

	stores.likes.On("DeleteLike", mock.Anything, mock.AnythingOfType("*models.Like")).
		Return(database.ErrNotFound)

	c, w := newTestContext(t, "DELETE", "/api/v1/likes/unlike?tweetId=t1", nil)
	authenticate(c, testUser())
	api.unlike(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "like not found", env.Message)
}

func TestGetLikesWithoutViewerContext(t *testing.T) {
	api, stores := newTestAPI(t)

	stores.likes.On("GetLikeSummary", mock.Anything, mock.MatchedBy(func(target *models.Like) bool {
		return target.TweetID != nil && target.LikerID == ""
	})).Return(&models.LikeSummary{LikeCount: 3, IsLiked: false}, nil)

	c, w := newTestContext(t, "GET", "/api/v1/likes/get-likes?tweetId=t1", nil)
	api.getLikes(c)

	assert.Equal(t, http.StatusOK, w.Code)
	stores.likes.AssertExpectations(t)
}
