package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/klasstra/klasstra-api/internal/models"
	appErrors "github.com/klasstra/klasstra-api/pkg/errors"
	"github.com/klasstra/klasstra-api/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service authService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login godoc
// @Summary Obtain an access token
// @Description Accepts JSON or form fields. username matches the username or the email.
// @Tags Authentication
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} appErrors.Error
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid login payload"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if appErrors.FromError(err).Status == http.StatusUnauthorized {
			c.Header("WWW-Authenticate", "Bearer")
		}
		response.Error(c, err)
		return
	}

	response.OK(c, res)
}
