package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/eventpulse/feedback-backend/errors"
	"github.com/eventpulse/feedback-backend/logger"
)

// SubmissionRateLimiter creates a rate limiter for the public submission
// endpoint. It uses Redis for distributed limiting keyed by client IP, with a
// fixed window implemented through INCR and EXPIRE.
//
// The limiter fails open: if Redis is unreachable the request proceeds, so a
// cache outage never blocks feedback collection. A nil client disables the
// limiter entirely.
func SubmissionRateLimiter(redisClient *redis.Client, maxPerWindow int, window time.Duration) gin.HandlerFunc {
	if redisClient == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:submit:%s", c.ClientIP())

		// Pipeline keeps INCR and EXPIRE atomic
		pipe := redisClient.TxPipeline()
		incr := pipe.Incr(c.Request.Context(), key)
		pipe.Expire(c.Request.Context(), key, window)

		if _, err := pipe.Exec(c.Request.Context()); err != nil {
			logger.GetLogger().Warnw("Rate limit check failed, allowing request",
				"error", err,
				"client_ip", c.ClientIP())
			c.Next()
			return
		}

		if incr.Val() > int64(maxPerWindow) {
			_ = c.Error(apperrors.RateLimitExceeded(
				"Too many submissions, please try again later",
				int(window.Seconds()),
			))
			c.Abort()
			return
		}

		c.Next()
	}
}
