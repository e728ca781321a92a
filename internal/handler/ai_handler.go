package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/klasstra/klasstra-api/internal/models"
	"github.com/klasstra/klasstra-api/pkg/response"
)

type aiService interface {
	Generate(ctx context.Context, claims *models.JWTClaims, req models.GenerateRequest) (*models.GenerateResponse, error)
}

// AIHandler exposes the announcement drafting assistant.
type AIHandler struct {
	service aiService
}

// NewAIHandler constructs an AI handler.
func NewAIHandler(svc aiService) *AIHandler {
	return &AIHandler{service: svc}
}

// Generate godoc
// @Summary Draft a trilingual announcement from notes
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.GenerateRequest true "Teacher notes"
// @Success 200 {object} models.GenerateResponse
// @Failure 500 {object} appErrors.Error
// @Failure 502 {object} appErrors.Error
// @Router /ai/generate [post]
func (h *AIHandler) Generate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid generate payload"))
		return
	}

	res, err := h.service.Generate(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}
