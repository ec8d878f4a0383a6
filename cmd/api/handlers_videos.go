package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/backend/internal/apierror"
	"github.com/vidtube/backend/internal/database"
	"github.com/vidtube/backend/internal/metrics"
	"github.com/vidtube/backend/internal/middleware"
	"github.com/vidtube/backend/pkg/models"
)

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}

// Feed endpoint: paginated, optionally filtered by text query and owner.
func (api *API) getVideos(c *gin.Context) {
	params := database.VideoListParams{
		Query:    strings.TrimSpace(c.Query("query")),
		OwnerID:  strings.TrimSpace(c.Query("userId")),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 10),
	}

	page, err := api.videos.ListVideos(c.Request.Context(), params)
	if err != nil {
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, page, "videos fetched successfully")
}

// Single-video endpoint. A signed-in viewer's request also records a watch
// history entry and bumps the view counter; failures there do not fail the
// fetch.
func (api *API) getVideoByID(c *gin.Context) {
	assetID := strings.TrimSpace(c.Param("videoId"))
	if assetID == "" {
		api.respondError(c, apierror.Validation("video id is missing"))
		return
	}

	video, err := api.videos.GetVideoWithOwner(c.Request.Context(), assetID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("video not found"))
			return
		}
		api.respondError(c, err)
		return
	}

	if viewer, ok := middleware.GetUser(c); ok {
		// unpublished videos are not publicly readable; the owner gets a
		// short-lived presigned link instead of the public URL
		if !video.IsPublished && viewer.ID == video.Owner.ID {
			url, err := api.media.GetURL(c.Request.Context(), video.AssetID)
			if err != nil {
				api.log.WithField("video_id", video.ID).ErrorWithErr("failed to presign asset url", err)
			} else {
				video.AssetURL = url
			}
		}

		if err := api.videos.RecordView(c.Request.Context(), viewer.ID, video.ID); err != nil {
			api.log.WithField("video_id", video.ID).ErrorWithErr("failed to record view", err)
		}
	}

	api.respond(c, http.StatusOK, video, "video fetched successfully")
}

// Upload endpoint: multipart with a required video file, an optional
// thumbnail and text metadata. Duration is probed during upload.
func (api *API) uploadVideo(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))
	if title == "" {
		api.respondError(c, apierror.Validation("title is required"))
		return
	}

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		api.respondError(c, apierror.Validation("video file is required"))
		return
	}

	asset, err := api.uploadAsset(c, videoFile, "videos")
	if err != nil {
		api.respondError(c, err)
		return
	}

	metrics.VideoUploadsTotal.Inc()
	metrics.VideoUploadSizeBytes.Observe(float64(videoFile.Size))

	video := &models.Video{
		Title:       title,
		Description: description,
		AssetID:     asset.ID,
		AssetURL:    asset.URL,
		Duration:    asset.Duration,
		OwnerID:     user.ID,
	}

	if thumbFile, err := c.FormFile("thumbnail"); err == nil {
		thumb, err := api.uploadAsset(c, thumbFile, "thumbnails")
		if err != nil {
			api.deleteAssetQuietly(c.Request.Context(), asset.ID)
			api.respondError(c, err)
			return
		}
		video.ThumbnailURL = &thumb.URL
		video.ThumbnailID = &thumb.ID
	}

	if err := api.videos.CreateVideo(c.Request.Context(), video); err != nil {
		api.deleteAssetQuietly(c.Request.Context(), asset.ID)
		if video.ThumbnailID != nil {
			api.deleteAssetQuietly(c.Request.Context(), *video.ThumbnailID)
		}
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusCreated, video, "video uploaded successfully")
}

// Update endpoint: replaces title, description and thumbnail together. Only
// the owner's rows match, so someone else's video reads as absent.
func (api *API) updateVideo(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	assetID := strings.TrimSpace(c.Param("videoId"))

	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))
	if title == "" || description == "" {
		api.respondError(c, apierror.Validation("title and description are required"))
		return
	}

	thumbFile, err := c.FormFile("thumbnail")
	if err != nil {
		api.respondError(c, apierror.Validation("thumbnail file is required"))
		return
	}

	existing, err := api.videos.GetVideoByAssetID(c.Request.Context(), assetID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("video not found"))
			return
		}
		api.respondError(c, err)
		return
	}
	if existing.OwnerID != user.ID {
		api.respondError(c, apierror.NotFound("video not found"))
		return
	}

	thumb, err := api.uploadAsset(c, thumbFile, "thumbnails")
	if err != nil {
		api.respondError(c, err)
		return
	}

	updated, err := api.videos.UpdateVideoDetails(c.Request.Context(), assetID, user.ID, title, description, &thumb.URL, &thumb.ID)
	if err != nil {
		api.deleteAssetQuietly(c.Request.Context(), thumb.ID)
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("video not found"))
			return
		}
		api.respondError(c, err)
		return
	}

	if existing.ThumbnailID != nil {
		api.deleteAssetQuietly(c.Request.Context(), *existing.ThumbnailID)
	}

	api.respond(c, http.StatusOK, updated, "video updated successfully")
}

// Delete endpoint: removes the record first, then cleans up storage.
func (api *API) deleteVideo(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	assetID := strings.TrimSpace(c.Param("videoId"))

	deleted, err := api.videos.DeleteVideo(c.Request.Context(), assetID, user.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("video not found"))
			return
		}
		api.respondError(c, err)
		return
	}

	api.deleteAssetQuietly(c.Request.Context(), deleted.AssetID)
	if deleted.ThumbnailID != nil {
		api.deleteAssetQuietly(c.Request.Context(), *deleted.ThumbnailID)
	}

	api.respond(c, http.StatusOK, gin.H{}, "video deleted successfully")
}

func (api *API) togglePublishStatus(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	assetID := strings.TrimSpace(c.Param("videoId"))

	video, err := api.videos.TogglePublishStatus(c.Request.Context(), assetID, user.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("video not found"))
			return
		}
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, video, "publish status toggled successfully")
}
