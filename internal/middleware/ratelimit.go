package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/klasstra/klasstra-api/internal/service"
	appErrors "github.com/klasstra/klasstra-api/pkg/errors"
	"github.com/klasstra/klasstra-api/pkg/ratelimit"
	"github.com/klasstra/klasstra-api/pkg/response"
)

// RateLimit refuses the caller with 429 once they exceed the limiter's quota.
// A store failure lets the request through. Must run after JWT.
func RateLimit(limiter *ratelimit.Limiter, metrics *service.MetricsService, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			unauthorized(c, appErrors.ErrUnauthorized)
			return
		}

		allowed, err := limiter.Allow(c.Request.Context(), claims.UserID)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Int64("user_id", claims.UserID), zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			metrics.RecordRateLimited(c.FullPath())
			c.Header("Retry-After", strconv.Itoa(int(limiter.Window().Seconds())))
			response.Error(c, appErrors.ErrRateLimited)
			return
		}
		c.Next()
	}
}
