package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/klasstra/klasstra-api/internal/middleware"
	"github.com/klasstra/klasstra-api/internal/models"
	"github.com/klasstra/klasstra-api/pkg/response"
)

type classService interface {
	List(ctx context.Context) ([]models.Class, error)
	Create(ctx context.Context, req models.CreateClassRequest) (*models.Class, error)
}

// ClassHandler serves the class catalogue.
type ClassHandler struct {
	service classService
}

// NewClassHandler constructs a class handler.
func NewClassHandler(svc classService) *ClassHandler {
	return &ClassHandler{service: svc}
}

// List godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Success 200 {array} models.Class
// @Router /classes/ [get]
func (h *ClassHandler) List(c *gin.Context) {
	classes, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, classes)
}

// Create godoc
// @Summary Create class
// @Tags Classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateClassRequest true "Class payload"
// @Success 200 {object} models.Class
// @Failure 400 {object} appErrors.Error
// @Router /classes/ [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req models.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid class payload"))
		return
	}

	class, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.MarkAudited(c, class.ID)
	response.OK(c, class)
}
