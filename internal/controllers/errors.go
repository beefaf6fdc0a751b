package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const retryMessage = "Something went wrong, please try again later."

// ValidationError is a request the API refuses to act on (422).
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError means the addressed row does not exist (404).
type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// fail writes the single error response for err. Anything that is neither a
// ValidationError nor a NotFoundError is a storage failure: it is logged and
// the caller only sees a generic retry message.
func fail(c *gin.Context, log *zap.Logger, err error) {
	var ve *ValidationError
	var nf *NotFoundError
	switch {
	case errors.As(err, &ve):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": ve.Message})
	case errors.As(err, &nf):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": nf.Message})
	default:
		log.Error("storage failure",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": retryMessage})
	}
}
