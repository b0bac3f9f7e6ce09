package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thurahtetaung/universal-yoga/pkg/redis"
	"github.com/thurahtetaung/universal-yoga/pkg/response"
)

// RateLimit allows limit requests per client and route within window.
// With no Redis, or when Redis errors, requests pass through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "too many sync requests, try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
