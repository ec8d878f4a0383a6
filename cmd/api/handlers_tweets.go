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

func (api *API) newTweet(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		api.respondError(c, apierror.Validation("content is required"))
		return
	}

	tweet := &models.Tweet{
		Content: strings.TrimSpace(req.Content),
		OwnerID: user.ID,
	}
	if err := api.tweets.CreateTweet(c.Request.Context(), tweet); err != nil {
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusCreated, tweet, "tweet created successfully")
}

func (api *API) editTweet(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	tweetID := strings.TrimSpace(c.Query("tweetId"))
	if tweetID == "" {
		api.respondError(c, apierror.Validation("tweet id is missing"))
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		api.respondError(c, apierror.Validation("content is required"))
		return
	}

	tweet, err := api.tweets.UpdateTweet(c.Request.Context(), tweetID, user.ID, strings.TrimSpace(req.Content))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("tweet not found"))
			return
		}
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, tweet, "tweet updated successfully")
}

func (api *API) deleteTweet(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	tweetID := strings.TrimSpace(c.Query("tweetId"))
	if tweetID == "" {
		api.respondError(c, apierror.Validation("tweet id is missing"))
		return
	}

	if err := api.tweets.DeleteTweet(c.Request.Context(), tweetID, user.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("tweet not found"))
			return
		}
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, gin.H{}, "tweet deleted successfully")
}

// Tweet listing: the requester's own tweets, newest first, with like counts.
func (api *API) getTweets(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	tweets, err := api.tweets.ListTweets(c.Request.Context(), user.ID)
	if err != nil {
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, tweets, "tweets fetched successfully")
}
