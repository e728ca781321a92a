package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/klasstra/klasstra-api/pkg/errors"
)

// Detail is the body returned by endpoints that only acknowledge an action.
type Detail struct {
	Detail string `json:"detail"`
}

// JSON sends the payload as the bare response body.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Message responds with {"detail": message}.
func Message(c *gin.Context, status int, message string) {
	JSON(c, status, Detail{Detail: message})
}

// Error writes {"detail", "code"} with the status carried by err.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Err != nil {
		_ = c.Error(appErr.Err)
	}
	c.Header("Cache-Control", "no-store")
	c.AbortWithStatusJSON(appErr.Status, appErr)
}
