package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/klasstra/klasstra-api/internal/models"
	"github.com/klasstra/klasstra-api/internal/service"
	"github.com/klasstra/klasstra-api/pkg/response"
)

type parentService interface {
	List(ctx context.Context) ([]models.User, error)
	Export(ctx context.Context, format string) (*service.ExportFile, error)
}

// ParentHandler exposes the parent roster to administrators.
type ParentHandler struct {
	service parentService
}

// NewParentHandler constructs a parent handler.
func NewParentHandler(svc parentService) *ParentHandler {
	return &ParentHandler{service: svc}
}

// List godoc
// @Summary List parent accounts
// @Tags Parents
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Router /parents/ [get]
func (h *ParentHandler) List(c *gin.Context) {
	parents, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, parents)
}

// Export godoc
// @Summary Download the parent roster
// @Tags Parents
// @Produce text/csv,application/pdf
// @Security BearerAuth
// @Param format query string false "csv or pdf" Enums(csv, pdf)
// @Success 200 {file} file
// @Failure 400 {object} appErrors.Error
// @Router /parents/export [get]
func (h *ParentHandler) Export(c *gin.Context) {
	file, err := h.service.Export(c.Request.Context(), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
