package api

import (
	"errors"
	"net/http"
	"youclone/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// errorStatus maps service errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrAuthenticationFailed):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrChannelNotFound),
		errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrChannelExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body for err. Internal errors are logged and
// replaced by a generic message.
func respondError(c *gin.Context, err error) {
	code := errorStatus(err)
	if code == http.StatusInternalServerError {
		requestLogger(c).WithError(err).Error("Request failed")
		abortWithError(c, code, "An unexpected error occurred")
		return
	}
	if code == http.StatusServiceUnavailable {
		requestLogger(c).WithError(err).Warn("Dependency unavailable")
	}
	abortWithError(c, code, err.Error())
}

func requestLogger(c *gin.Context) logrus.FieldLogger {
	if raw, ok := c.Get(ContextLoggerKey); ok {
		if entry, ok := raw.(logrus.FieldLogger); ok {
			return entry
		}
	}
	return logrus.StandardLogger()
}
