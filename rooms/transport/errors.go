package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imtaco/interview-lobby/internal/errors"
	"github.com/imtaco/interview-lobby/internal/log"
	"github.com/imtaco/interview-lobby/internal/validation"
	"github.com/imtaco/interview-lobby/rooms"
)

var codeStatus = map[errors.Code]int{
	rooms.ErrValidation:      http.StatusBadRequest,
	rooms.ErrUnauthorized:    http.StatusUnauthorized,
	rooms.ErrAuth:            http.StatusUnauthorized,
	rooms.ErrPermission:      http.StatusForbidden,
	rooms.ErrNotFound:        http.StatusNotFound,
	rooms.ErrFlowNotFound:    http.StatusNotFound,
	rooms.ErrConflict:        http.StatusConflict,
	rooms.ErrBusy:            http.StatusConflict,
	rooms.ErrInvalidStep:     http.StatusConflict,
	rooms.ErrConfiguration:   http.StatusInternalServerError,
	rooms.ErrTransport:       http.StatusBadGateway,
	rooms.ErrProvider:        http.StatusBadGateway,
	rooms.ErrProviderRuntime: http.StatusBadGateway,
}

func statusOf(err error) int {
	if fe, ok := errors.As[*rooms.FlowError](err); ok {
		if st, ok := codeStatus[fe.Code]; ok {
			return st
		}
	}
	if code, ok := errors.CodeOf(err); ok {
		if st, ok := codeStatus[code]; ok {
			return st
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with the error's title and message. Errors without a
// user-facing message are logged and reported generically.
func (r *Router) writeError(c *gin.Context, err error, fallback string) {
	status := statusOf(err)
	if fe, ok := errors.As[*rooms.FlowError](err); ok {
		if status >= http.StatusInternalServerError {
			r.logger.Warn(fallback, log.Error(err))
		}
		c.JSON(status, gin.H{
			"success": false,
			"error":   fe.Title,
			"message": fe.Message,
		})
		return
	}

	r.logger.Error(fallback, log.Error(err))
	c.JSON(status, gin.H{
		"success": false,
		"error":   fallback,
	})
}

func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "Validation failed",
		"details": validation.FormatValidationError(err),
	})
}
