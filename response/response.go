// Package response writes the JSON error envelope shared by middleware and controllers.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"team-portal/config"
	"team-portal/services"
)

// Error is the body of every non-2xx reply.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var kinds = []struct {
	err    error
	status int
	code   string
}{
	{services.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
	{services.ErrForbidden, http.StatusForbidden, "forbidden"},
	{services.ErrValidation, http.StatusBadRequest, "validation"},
	{services.ErrNotFound, http.StatusNotFound, "not_found"},
	{services.ErrConflict, http.StatusBadRequest, "conflict"},
	{services.ErrStorageUnavailable, http.StatusServiceUnavailable, "storage_unavailable"},
}

// Classify maps an error to its HTTP status and code. Unknown errors are internal.
func Classify(err error) (int, string) {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.status, k.code
		}
	}
	return http.StatusInternalServerError, "internal"
}

// AbortWithError writes the envelope for err and stops the handler chain.
// Internal errors are logged and replaced with a generic message.
func AbortWithError(c *gin.Context, err error) {
	status, code := Classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		config.Log.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		msg = "internal server error"
	}
	c.AbortWithStatusJSON(status, Error{Code: code, Message: msg})
}

// Message replies with {"message": msg}.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}
