package main

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vidtube/backend/internal/database"
	"github.com/vidtube/backend/pkg/models"
)

func TestCreatePlaylistRequiresNameAndDescription(t *testing.T) {
	api, stores := newTestAPI(t)

	c, w := newTestContext(t, "POST", "/api/v1/playlists/create-playlist",
		jsonBody(t, gin.H{"name": "Mix", "videoId": "videos/abc.mp4"}))
	authenticate(c, testUser())
	api.createPlaylist(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	stores.playlists.AssertNotCalled(t, "CreatePlaylist", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePlaylistUnknownSeedVideo(t *testing.T) {
	api, stores := newTestAPI(t)

	stores.videos.On("GetVideoByAssetID", mock.Anything, "missing").
		Return(nil, database.ErrNotFound)

	c, w := newTestContext(t, "POST", "/api/v1/playlists/create-playlist",
		jsonBody(t, gin.H{"name": "Mix", "description": "stuff", "videoId": "missing"}))
	authenticate(c, testUser())
	api.createPlaylist(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	stores.playlists.AssertNotCalled(t, "CreatePlaylist", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePlaylistSeedsVideo(t *testing.T) {
	api, stores := newTestAPI(t)

	video := &models.Video{ID: "vid-1", AssetID: "videos/abc.mp4"}
	stores.videos.On("GetVideoByAssetID", mock.Anything, "videos/abc.mp4").
		Return(video, nil)
	stores.playlists.On("CreatePlaylist", mock.Anything, mock.MatchedBy(func(p *models.Playlist) bool {
		return p.Name == "Mix" && p.OwnerID == "user-1"
	}), "vid-1").Return(nil)

	c, w := newTestContext(t, "POST", "/api/v1/playlists/create-playlist",
		jsonBody(t, gin.H{"name": "Mix", "description": "stuff", "videoId": "videos/abc.mp4"}))
	authenticate(c, testUser())
	api.createPlaylist(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	stores.playlists.AssertExpectations(t)
}

func TestAddPlaylistVideoNotOwned(t *testing.T) {
	api, stores := newTestAPI(t)

	video := &models.Video{ID: "vid-1", AssetID: "videos/abc.mp4"}
	stores.videos.On("GetVideoByAssetID", mock.Anything, "videos/abc.mp4").
		Return(video, nil)
	stores.playlists.On("AddPlaylistVideo", mock.Anything, "pl-1", "user-1", "vid-1").
		Return(nil, database.ErrNotFound)

	c, w := newTestContext(t, "PATCH",
		"/api/v1/playlists/add-song?playlistId=pl-1&videoId=videos/abc.mp4", nil)
	authenticate(c, testUser())
	api.addPlaylistVideo(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "playlist not found", env.Message)
}

func TestGetPlaylistsRequiresFilter(t *testing.T) {
	api, stores := newTestAPI(t)

	c, w := newTestContext(t, "GET", "/api/v1/playlists/get-playlist", nil)
	api.getPlaylists(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	stores.playlists.AssertNotCalled(t, "GetPlaylistDetail", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPlaylistsByOwner(t *testing.T) {
	api, stores := newTestAPI(t)

	detail := []models.PlaylistDetail{{ID: "pl-1", Name: "Mix"}}
	stores.playlists.On("GetPlaylistDetail", mock.Anything, "", "user-9").
		Return(detail, nil)

	c, w := newTestContext(t, "GET", "/api/v1/playlists/get-playlist?userId=user-9", nil)
	api.getPlaylists(c)

	assert.Equal(t, http.StatusOK, w.Code)
	stores.playlists.AssertExpectations(t)
}

func TestGetPlaylistsNoMatch(t *testing.T) {
	api, stores := newTestAPI(t)

	stores.playlists.On("GetPlaylistDetail", mock.Anything, "pl-404", "").
		Return(nil, database.ErrNotFound)

	c, w := newTestContext(t, "GET", "/api/v1/playlists/get-playlist?playlistId=pl-404", nil)
	api.getPlaylists(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "playlist not found", env.Message)
}
