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

// parseLikeTarget reads the target from query parameters. Exactly one of
// videoId, commentId and tweetId must be set; a video target is resolved
// from its public id to the stored row.
func (api *API) parseLikeTarget(c *gin.Context) (*models.Like, error) {
	videoID := strings.TrimSpace(c.Query("videoId"))
	commentID := strings.TrimSpace(c.Query("commentId"))
	tweetID := strings.TrimSpace(c.Query("tweetId"))

	set := 0
	for _, id := range []string{videoID, commentID, tweetID} {
		if id != "" {
			set++
		}
	}
	if set != 1 {
		return nil, apierror.Validation("exactly one of videoId, commentId or tweetId is required")
	}

	like := &models.Like{}
	switch {
	case videoID != "":
		video, err := api.resolveVideo(c, videoID)
		if err != nil {
			return nil, err
		}
		like.VideoID = &video.ID
	case commentID != "":
		like.CommentID = &commentID
	default:
		like.TweetID = &tweetID
	}

	return like, nil
}

func (api *API) newLike(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	like, err := api.parseLikeTarget(c)
	if err != nil {
		api.respondError(c, err)
		return
	}
	like.LikerID = user.ID

	if err := api.likes.CreateLike(c.Request.Context(), like); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			api.respondError(c, apierror.Conflict("already liked"))
			return
		}
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("like target not found"))
			return
		}
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusCreated, like, "liked successfully")
}

func (api *API) unlike(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	like, err := api.parseLikeTarget(c)
	if err != nil {
		api.respondError(c, err)
		return
	}
	like.LikerID = user.ID

	if err := api.likes.DeleteLike(c.Request.Context(), like); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("like not found"))
			return
		}
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, gin.H{}, "unliked successfully")
}

// Like summary: public count for one target, plus whether the signed-in
// viewer has liked it.
func (api *API) getLikes(c *gin.Context) {
	target, err := api.parseLikeTarget(c)
	if err != nil {
		api.respondError(c, err)
		return
	}

	if viewer, ok := middleware.GetUser(c); ok {
		target.LikerID = viewer.ID
	}

	summary, err := api.likes.GetLikeSummary(c.Request.Context(), target)
	if err != nil {
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, summary, "likes fetched successfully")
}
