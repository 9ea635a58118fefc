package middleware

import (
	"net/http"
	"strconv"
	"time"

	"atlantic-drive-backend/internal/delivery/http/response"
	"atlantic-drive-backend/pkg/apperror"
	"atlantic-drive-backend/pkg/logger"
	"atlantic-drive-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware caps requests per client with limiter. It guards the
// whole API against floods; the per-submission budget is charged later, by
// the intake usecases, only for valid non-spam submissions.
func RateLimitMiddleware(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ClientIdentifier(c.Request)

		decision, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Only reachable with FailClosed
			logger.Log.Error("rate limit store unavailable", "error", err.Error())
			response.Error(c, http.StatusServiceUnavailable, apperror.MsgInternal)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining()))
		c.Header("X-RateLimit-Reset", decision.ResetAt.UTC().Format(time.RFC3339))

		if !decision.Allowed {
			SetRetryAfter(c, time.Until(decision.ResetAt))
			response.Error(c, http.StatusTooManyRequests, apperror.MsgTooManyRequests)
			c.Abort()
			return
		}

		c.Next()
	}
}

// SetRetryAfter sets the Retry-After header in whole seconds, at least 1
func SetRetryAfter(c *gin.Context, d time.Duration) {
	seconds := int((d + time.Second - 1) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(seconds))
}
