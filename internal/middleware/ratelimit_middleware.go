package middleware

import (
	"context"
	"net/http"
	"strconv"

	"contacts-api/internal/redis"
	"contacts-api/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// AuthLimiter is the slice of the rate limiter the middleware consumes.
type AuthLimiter interface {
	AllowAuth(ctx context.Context, ip string) (*redis.RateLimitResult, error)
}

// RateLimitMiddleware applies per-IP limiting to the credential-bearing
// auth endpoints. A nil limiter disables limiting entirely.
func RateLimitMiddleware(limiter AuthLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || !isAuthEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		result, err := limiter.AllowAuth(c.Request.Context(), c.ClientIP())
		if err != nil {
			c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("rate limit error"))
			c.Abort()
			return
		}

		setRateLimitHeaders(c, result)

		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("Too many requests"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// setRateLimitHeaders sets standard rate limit response headers
func setRateLimitHeaders(c *gin.Context, result *redis.RateLimitResult) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(result.ResetIn.Seconds()), 10))
}

// isAuthEndpoint checks if the request path is an auth endpoint
func isAuthEndpoint(path string) bool {
	authPaths := []string{
		"/api/users/register",
		"/api/users/login",
	}
	for _, p := range authPaths {
		if path == p {
			return true
		}
	}
	return false
}
