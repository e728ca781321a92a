package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/klasstra/klasstra-api/internal/models"
	"github.com/klasstra/klasstra-api/internal/service"
	appErrors "github.com/klasstra/klasstra-api/pkg/errors"
	"github.com/klasstra/klasstra-api/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// JWT protects routes by requiring a valid bearer token.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, appErrors.ErrUnauthorized)
			return
		}

		claims, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			unauthorized(c, err)
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// Claims returns the authenticated caller, or nil on public routes.
func Claims(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*models.JWTClaims)
	return claims
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func unauthorized(c *gin.Context, err error) {
	if appErrors.FromError(err).Status == appErrors.ErrUnauthorized.Status {
		c.Header("WWW-Authenticate", "Bearer")
	}
	response.Error(c, err)
}
