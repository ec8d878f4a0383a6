package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/backend/internal/apierror"
	"github.com/vidtube/backend/internal/database"
	"github.com/vidtube/backend/internal/metrics"
	"github.com/vidtube/backend/internal/middleware"
	"github.com/vidtube/backend/pkg/models"
)

// issueTokens generates an access/refresh pair, persists the refresh token
// as the user's single active value and sets both session cookies.
func (api *API) issueTokens(c *gin.Context, user *models.User) (string, string, error) {
	accessToken, err := middleware.GenerateAccessToken(user, api.cfg.Auth.AccessTokenTTL)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := middleware.GenerateRefreshToken(user.ID, api.cfg.Auth.RefreshTokenTTL)
	if err != nil {
		return "", "", err
	}

	if err := api.users.UpdateRefreshToken(c.Request.Context(), user.ID, &refreshToken); err != nil {
		return "", "", err
	}

	secure := api.cfg.Auth.SecureCookies
	c.SetCookie(middleware.AccessTokenCookie, accessToken, int(api.cfg.Auth.AccessTokenTTL.Seconds()), "/", "", secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, refreshToken, int(api.cfg.Auth.RefreshTokenTTL.Seconds()), "/", "", secure, true)

	return accessToken, refreshToken, nil
}

func (api *API) clearAuthCookies(c *gin.Context) {
	secure := api.cfg.Auth.SecureCookies
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", secure, true)
}

// Register endpoint: multipart form with text fields plus a required avatar
// image and an optional cover image.
func (api *API) registerUser(c *gin.Context) {
	fullname := strings.TrimSpace(c.PostForm("fullname"))
	email := strings.TrimSpace(c.PostForm("email"))
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if fullname == "" || email == "" || username == "" || password == "" {
		api.respondError(c, apierror.Validation("all fields are required"))
		return
	}

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		api.respondError(c, apierror.Validation("avatar file is required"))
		return
	}

	avatar, err := api.uploadAsset(c, avatarFile, "avatars")
	if err != nil {
		api.respondError(c, err)
		return
	}

	user := &models.User{
		Fullname:  fullname,
		Email:     email,
		Username:  strings.ToLower(username),
		AvatarURL: avatar.URL,
		AvatarID:  avatar.ID,
	}

	if coverFile, err := c.FormFile("coverImage"); err == nil {
		cover, err := api.uploadAsset(c, coverFile, "covers")
		if err != nil {
			api.respondError(c, err)
			return
		}
		user.CoverURL = &cover.URL
		user.CoverID = &cover.ID
	}

	hash, err := hashPassword(password)
	if err != nil {
		api.respondError(c, err)
		return
	}
	user.PasswordHash = hash

	if err := api.users.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			api.respondError(c, apierror.Conflict("user with email or username already exists"))
			return
		}
		api.respondError(c, err)
		return
	}

	metrics.RegistrationsTotal.Inc()
	api.respond(c, http.StatusCreated, user, "user registered successfully")
}

// Login endpoint: accepts username or email plus password.
func (api *API) loginUser(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		api.respondError(c, apierror.Validation("invalid request body"))
		return
	}

	identifier := strings.ToLower(strings.TrimSpace(req.Username))
	if identifier == "" {
		identifier = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if identifier == "" || req.Password == "" {
		api.respondError(c, apierror.Validation("username or email is required"))
		return
	}

	user, err := api.users.GetUserByUsernameOrEmail(c.Request.Context(), identifier)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("user does not exist"))
			return
		}
		api.respondError(c, err)
		return
	}

	if !checkPassword(user.PasswordHash, req.Password) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		api.respondError(c, apierror.Unauthorized("password incorrect"))
		return
	}

	accessToken, refreshToken, err := api.issueTokens(c, user)
	if err != nil {
		api.respondError(c, err)
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	api.respond(c, http.StatusOK, gin.H{
		"userData":     user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "user logged in successfully")
}

// Logout endpoint: clears the persisted refresh token and both cookies.
// Idempotent.
func (api *API) logoutUser(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	if err := api.users.UpdateRefreshToken(c.Request.Context(), user.ID, nil); err != nil && !errors.Is(err, database.ErrNotFound) {
		api.respondError(c, err)
		return
	}

	api.clearAuthCookies(c)
	api.respond(c, http.StatusOK, gin.H{}, "user logged out")
}

// Refresh endpoint: rotates both tokens. The incoming token must match the
// persisted value exactly; a previously rotated token is rejected.
func (api *API) refreshAccessToken(c *gin.Context) {
	incoming, _ := c.Cookie(middleware.RefreshTokenCookie)
	if incoming == "" {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			incoming = req.RefreshToken
		}
	}
	if incoming == "" {
		api.respondError(c, apierror.Unauthorized("unauthorized request"))
		return
	}

	userID, err := middleware.ParseRefreshToken(incoming)
	if err != nil {
		api.respondError(c, apierror.Unauthorized("invalid refresh token"))
		return
	}

	user, err := api.users.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		api.respondError(c, apierror.Unauthorized("invalid refresh token"))
		return
	}

	if user.RefreshToken == nil || *user.RefreshToken != incoming {
		api.respondError(c, apierror.Unauthorized("refresh token is expired or used"))
		return
	}

	accessToken, refreshToken, err := api.issueTokens(c, user)
	if err != nil {
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "access token refreshed")
}

// Change password endpoint.
func (api *API) changeCurrentPassword(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.OldPassword == "" || req.NewPassword == "" {
		api.respondError(c, apierror.Validation("old and new password are required"))
		return
	}

	if !checkPassword(user.PasswordHash, req.OldPassword) {
		api.respondError(c, apierror.Validation("invalid old password"))
		return
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		api.respondError(c, err)
		return
	}

	if err := api.users.UpdatePassword(c.Request.Context(), user.ID, hash); err != nil {
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, gin.H{}, "password changed successfully")
}

func (api *API) getCurrentUser(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	api.respond(c, http.StatusOK, user, "current user fetched successfully")
}

func (api *API) updateAccountDetails(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	var req struct {
		Fullname string `json:"fullname"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Fullname) == "" || strings.TrimSpace(req.Email) == "" {
		api.respondError(c, apierror.Validation("all fields are required"))
		return
	}

	updated, err := api.users.UpdateAccountDetails(c.Request.Context(), user.ID, strings.TrimSpace(req.Fullname), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			api.respondError(c, apierror.Conflict("email already in use"))
			return
		}
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, updated, "details updated successfully")
}

// Avatar replacement: upload the new asset, persist, then best-effort delete
// of the replaced one.
func (api *API) updateUserAvatar(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		api.respondError(c, apierror.Validation("avatar file is missing"))
		return
	}

	avatar, err := api.uploadAsset(c, file, "avatars")
	if err != nil {
		api.respondError(c, err)
		return
	}

	oldAssetID := user.AvatarID
	updated, err := api.users.UpdateAvatar(c.Request.Context(), user.ID, avatar.URL, avatar.ID)
	if err != nil {
		api.respondError(c, err)
		return
	}

	api.deleteAssetQuietly(c.Request.Context(), oldAssetID)
	api.respond(c, http.StatusOK, updated, "avatar image changed successfully")
}

func (api *API) updateUserCoverImage(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	file, err := c.FormFile("coverImage")
	if err != nil {
		api.respondError(c, apierror.Validation("cover image file is missing"))
		return
	}

	cover, err := api.uploadAsset(c, file, "covers")
	if err != nil {
		api.respondError(c, err)
		return
	}

	var oldAssetID string
	if user.CoverID != nil {
		oldAssetID = *user.CoverID
	}

	updated, err := api.users.UpdateCover(c.Request.Context(), user.ID, cover.URL, cover.ID)
	if err != nil {
		api.respondError(c, err)
		return
	}

	api.deleteAssetQuietly(c.Request.Context(), oldAssetID)
	api.respond(c, http.StatusOK, updated, "cover image changed successfully")
}

// Channel profile endpoint: public, personalized when a viewer is known.
func (api *API) getUserChannelProfile(c *gin.Context) {
	username := strings.ToLower(strings.TrimSpace(c.Param("username")))
	if username == "" {
		api.respondError(c, apierror.Validation("username is missing"))
		return
	}

	var viewerID string
	if viewer, ok := middleware.GetUser(c); ok {
		viewerID = viewer.ID
	}

	profile, err := api.users.GetChannelProfile(c.Request.Context(), username, viewerID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("channel does not exist"))
			return
		}
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, profile, "user channel fetched successfully")
}

// Subscribe endpoint. The self-subscription check runs before any lookup so
// it fails the same way whether or not the channel exists.
func (api *API) subscribeToChannel(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	channelUsername := strings.ToLower(strings.TrimSpace(c.Param("channelId")))

	if channelUsername == user.Username {
		api.respondError(c, apierror.Validation("you cannot subscribe to your own channel"))
		return
	}

	channel, err := api.users.GetUserByUsername(c.Request.Context(), channelUsername)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("channel not found"))
			return
		}
		api.respondError(c, err)
		return
	}

	sub := &models.Subscription{ChannelID: channel.ID, SubscriberID: user.ID}
	if err := api.subscriptions.CreateSubscription(c.Request.Context(), sub); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			api.respondError(c, apierror.Conflict("already subscribed"))
			return
		}
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, sub, "subscribed successfully")
}

func (api *API) unsubscribeFromChannel(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	channelUsername := strings.ToLower(strings.TrimSpace(c.Param("channelId")))

	if channelUsername == user.Username {
		api.respondError(c, apierror.Validation("you cannot unsubscribe from yourself"))
		return
	}

	channel, err := api.users.GetUserByUsername(c.Request.Context(), channelUsername)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("channel not found"))
			return
		}
		api.respondError(c, err)
		return
	}

	if err := api.subscriptions.DeleteSubscription(c.Request.Context(), channel.ID, user.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.respondError(c, apierror.NotFound("subscription not found"))
			return
		}
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, gin.H{}, "unsubscribed successfully")
}

func (api *API) getWatchHistory(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	history, err := api.users.GetWatchHistory(c.Request.Context(), user.ID)
	if err != nil {
		api.respondError(c, err)
		return
	}

	api.respond(c, http.StatusOK, history, "watch history fetched successfully")
}
