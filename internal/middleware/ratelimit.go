package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/portal-api/pkg/errors"
	"github.com/noah-isme/portal-api/pkg/response"
)

// Limiter decides whether another hit for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

var errTooManyRequests = appErrors.New("RATE_LIMITED", http.StatusTooManyRequests, "too many attempts, please try again later")

// RateLimit bounds requests per client IP and route. A nil limiter or a
// non-positive limit disables it.
func RateLimit(limiter Limiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}
		key := "ratelimit:" + c.FullPath() + ":" + c.ClientIP()
		if !limiter.Allow(c.Request.Context(), key, limit, window) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			response.Abort(c, errTooManyRequests)
			return
		}
		c.Next()
	}
}
