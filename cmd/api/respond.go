package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/backend/internal/apierror"
	"github.com/vidtube/backend/internal/database"
)

// envelope is the uniform JSON body every endpoint returns.
type envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
	Errors     []string    `json:"errors,omitempty"`
}

func (api *API) respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
}

// respondError is the single conversion point from handler failures to the
// error envelope. Untyped errors become a generic 500: internals are logged,
// never returned to the client.
func (api *API) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "something went wrong"
	details := []string{}

	var apiErr *apierror.Error
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.Status
		message = apiErr.Message
		if apiErr.Details != nil {
			details = apiErr.Details
		}
	case errors.Is(err, database.ErrNotFound):
		status = http.StatusNotFound
		message = "not found"
	case errors.Is(err, database.ErrDuplicate):
		status = http.StatusConflict
		message = "already exists"
	default:
		api.log.ErrorWithErr("unhandled error", err)
	}

	c.JSON(status, envelope{
		StatusCode: status,
		Data:       nil,
		Message:    message,
		Success:    false,
		Errors:     details,
	})
}
