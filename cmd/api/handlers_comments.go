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

// resolveVideo maps a public video id from the URL to its row, turning both
// a blank param and an unknown id into the client-facing error.
func (api *API) resolveVideo(c *gin.Context, assetID string) (*models.Video, error) {
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return nil, apierror.Validation("video id is missing")
	}

	video, err := api.videos.GetVideoByAssetID(c.Request.Context(), assetID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apierror.NotFound("video not found")
		}
		return nil, err
	}
	return video, nil
}

// Comment listing: public, with per-comment like state personalized when a
// viewer is signed in.
func (api *API) getComments(c *gin.Context) {
	video, err := api.resolveVideo(c, c.Query("videoId"))
	if err != nil {
		api.respondError(c, err)
		return
	}

	var viewerID string
	if viewer, ok := middleware.GetUser(c); ok {
		viewerID = viewer.ID
	}

	page, err := api.comments.ListComments(c.Request.Context(), database.CommentListParams{
		VideoID:  video.ID,
		ViewerID: viewerID,
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 20),
	})
	if err != nil {
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, page, "comments fetched successfully")
}

func (api *API) newComment(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		api.respondError(c, apierror.Validation("content is required"))
		return
	}

	video, err := api.resolveVideo(c, c.Query("videoId"))
	if err != nil {
		api.respondError(c, err)
		return
	}

	comment := &models.Comment{
		Content: strings.TrimSpace(req.Content),
		VideoID: video.ID,
		OwnerID: user.ID,
	}
	if err := api.comments.CreateComment(c.Request.Context(), comment); err != nil {
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusCreated, comment, "comment added successfully")
}

func (api *API) editComment(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		api.respondError(c, apierror.Validation("content is required"))
		return
	}

	video, err := api.resolveVideo(c, c.Query("videoId"))
	if err != nil {
		api.respondError(c, err)
		return
	}

	comment, err := api.comments.UpdateComment(c.Request.Context(), video.ID, user.ID, strings.TrimSpace(req.Content))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("comment not found"))
			return
		}
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, comment, "comment updated successfully")
}

func (api *API) deleteComment(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	video, err := api.resolveVideo(c, c.Query("videoId"))
	if err != nil {
		api.respondError(c, err)
		return
	}

	if err := api.comments.DeleteComment(c.Request.Context(), video.ID, user.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("comment not found"))
			return
		}
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, gin.H{}, "comment deleted successfully")
}
