package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/backend/internal/apierror"
	"github.com/vidtube/backend/internal/database"
	"github.com/vidtube/backend/internal/middleware"
	"github.com/vidtube/backend/pkg/models"
)

// Playlist creation: a playlist is never empty, it starts with one video.
func (api *API) createPlaylist(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		VideoID     string `json:"videoId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" {
		api.respondError(c, apierror.Validation("name and description are required"))
		return
	}

	video, err := api.resolveVideo(c, req.VideoID)
	if err != nil {
		api.respondError(c, err)
		return
	}

	playlist := &models.Playlist{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		OwnerID:     user.ID,
	}
	if err := api.playlists.CreatePlaylist(c.Request.Context(), playlist, video.ID); err != nil {
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusCreated, playlist, "playlist created successfully")
}

func (api *API) addPlaylistVideo(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	playlistID := strings.TrimSpace(c.Query("playlistId"))
	if playlistID == "" {
		api.respondError(c, apierror.Validation("playlist id is missing"))
		return
	}

	video, err := api.resolveVideo(c, c.Query("videoId"))
	if err != nil {
		api.respondError(c, err)
		return
	}

	playlist, err := api.playlists.AddPlaylistVideo(c.Request.Context(), playlistID, user.ID, video.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("playlist not found"))
			return
		}
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, playlist, "video added to playlist")
}

func (api *API) removePlaylistVideo(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	playlistID := strings.TrimSpace(c.Query("playlistId"))
	if playlistID == "" {
		api.respondError(c, apierror.Validation("playlist id is missing"))
		return
	}

	video, err := api.resolveVideo(c, c.Query("videoId"))
	if err != nil {
		api.respondError(c, err)
		return
	}

	playlist, err := api.playlists.RemovePlaylistVideo(c.Request.Context(), playlistID, user.ID, video.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("playlist not found"))
			return
		}
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, playlist, "video removed from playlist")
}

// Playlist listing: by playlist id, by owner, or both. At least one filter
// is required so the endpoint never dumps every playlist.
func (api *API) getPlaylists(c *gin.Context) {
	playlistID := strings.TrimSpace(c.Query("playlistId"))
	ownerID := strings.TrimSpace(c.Query("userId"))
	if playlistID == "" && ownerID == "" {
		api.respondError(c, apierror.Validation("playlistId or userId is required"))
		return
	}

	playlists, err := api.playlists.GetPlaylistDetail(c.Request.Context(), playlistID, ownerID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("playlist not found"))
			return
		}
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, playlists, "playlists fetched successfully")
}
