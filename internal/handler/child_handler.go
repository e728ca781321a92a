package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/klasstra/klasstra-api/internal/middleware"
	"github.com/klasstra/klasstra-api/internal/models"
	"github.com/klasstra/klasstra-api/pkg/response"
)

type childService interface {
	Create(ctx context.Context, claims *models.JWTClaims, req models.CreateChildRequest) (*models.Child, error)
	ListMine(ctx context.Context, parentID int64) ([]models.Child, error)
}

// ChildHandler lets parents manage their children.
type ChildHandler struct {
	service childService
}

// NewChildHandler constructs a child handler.
func NewChildHandler(svc childService) *ChildHandler {
	return &ChildHandler{service: svc}
}

// Create godoc
// @Summary Register a child
// @Tags Children
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateChildRequest true "Child payload"
// @Success 200 {object} models.Child
// @Failure 403 {object} appErrors.Error
// @Router /children/ [post]
func (h *ChildHandler) Create(c *gin.Context) {
	var req models.CreateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid child payload"))
		return
	}

	child, err := h.service.Create(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.MarkAudited(c, child.ID)
	response.OK(c, child)
}

// ListMine godoc
// @Summary List my children
// @Tags Children
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Child
// @Router /children/my [get]
func (h *ChildHandler) ListMine(c *gin.Context) {
	children, err := h.service.ListMine(c.Request.Context(), claimsFromContext(c).UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, children)
}
