package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/klasstra/klasstra-api/internal/models"
	appErrors "github.com/klasstra/klasstra-api/pkg/errors"
	"github.com/klasstra/klasstra-api/pkg/response"
)

// RequirePolicy admits callers whose role satisfies allowed. Must run after JWT.
func RequirePolicy(allowed func(models.UserRole) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			unauthorized(c, appErrors.ErrUnauthorized)
			return
		}
		if !allowed(claims.Role) {
			response.Error(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
