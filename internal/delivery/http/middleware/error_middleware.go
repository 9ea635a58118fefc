package middleware

import (
	"errors"
	"net/http"

	"atlantic-drive-backend/internal/delivery/http/response"
	"atlantic-drive-backend/internal/domain"
	"atlantic-drive-backend/pkg/apperror"
	"atlantic-drive-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached by a handler. Only AppError
// messages reach the client; everything else gets the generic message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal(err)
		}

		if appErr.Code >= http.StatusInternalServerError && appErr.Err != nil {
			logger.Log.Error("request failed",
				"path", c.FullPath(),
				"request_id", domain.RequestIDFromContext(c.Request.Context()),
				"error", appErr.Err.Error(),
			)
		}
		response.Error(c, appErr.Code, appErr.Message)
	}
}

// Recovery turns a panic into the generic 500 envelope
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.Error("panic recovered",
			"path", c.FullPath(),
			"request_id", domain.RequestIDFromContext(c.Request.Context()),
			"panic", recovered,
		)
		response.Error(c, http.StatusInternalServerError, apperror.MsgInternal)
		c.Abort()
	})
}
