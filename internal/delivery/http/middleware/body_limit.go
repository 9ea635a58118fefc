package middleware

import (
	"net/http"

	"atlantic-drive-backend/internal/delivery/http/response"
	"atlantic-drive-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// DefaultBodyLimit caps form payloads
const DefaultBodyLimit int64 = 64 << 10

// BodyLimit rejects request bodies larger than limit bytes. Reads past the
// limit fail with *http.MaxBytesError.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			response.Error(c, http.StatusRequestEntityTooLarge, apperror.MsgInvalidRequest)
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
