package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/trektide/trektide/internal/config"
	"github.com/trektide/trektide/internal/httperr"
)

// RateLimit throttles each client IP to cfg.RateLimitMax requests per
// window with a fixed redis counter. Redis being unreachable fails open:
// throttling is protection, not a dependency.
func RateLimit(rdb *redis.Client, cfg *config.Config, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "ratelimit:" + c.ClientIP()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn().Err(err).Msg("rate limiter unavailable")
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, cfg.RateLimitWindow)
		}

		if count > int64(cfg.RateLimitMax) {
			_ = c.Error(httperr.New(429, "Too many requests from this IP, please try again later"))
			c.Abort()
			return
		}

		c.Next()
	}
}
