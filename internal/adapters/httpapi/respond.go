package httpapi

import (
	"errors"
	"net/http"

	"flock/internal/adapters/httpapi/middleware"
	"flock/internal/core/apperr"
	"flock/internal/core/pagination"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

// writeError maps an error kind to its status. Anything unrecognised is a 500 with a generic
// message; the cause is attached to the context for the request logger.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrBadInput):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": apperr.Message(err, http.StatusText(status))})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

// currentUser is only called behind the auth middleware.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
	}
	return id, ok
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.FromString(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// pageRequest reads ?limit= and ?cursor=. A bad limit falls back to the default; a bad cursor
// is rejected.
func pageRequest(c *gin.Context) (pagination.Request, bool) {
	req, err := pagination.NewRequest(c.Query("limit"), c.Query("cursor"))
	if err != nil {
		writeError(c, err)
		return pagination.Request{}, false
	}
	return req, true
}
