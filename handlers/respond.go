package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docquiz/models"
)

// respondError maps the error taxonomy onto HTTP statuses. Anything
// unrecognized is treated as a storage-layer failure.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrOutOfRange),
		errors.Is(err, models.ErrEmptyQuiz),
		errors.Is(err, models.ErrQuizNotStarted),
		errors.Is(err, models.ErrQuizCompleted):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrUnsupportedFormat):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, models.ErrConversionFailed):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// currentUserID returns the authenticated user ID, or "" for anonymous
// requests behind the optional-auth middleware.
func currentUserID(c *gin.Context) string {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// requireUserID returns the user ID or writes a 401 and reports false.
func requireUserID(c *gin.Context) (string, bool) {
	id := currentUserID(c)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", false
	}
	return id, true
}
