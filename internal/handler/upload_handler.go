package handler

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/klasstra/klasstra-api/internal/models"
	"github.com/klasstra/klasstra-api/pkg/response"
)

type uploadService interface {
	Upload(ctx context.Context, originalName string, r io.Reader) (*models.UploadResponse, error)
}

// UploadHandler accepts attachment uploads.
type UploadHandler struct {
	service uploadService
}

// NewUploadHandler constructs an upload handler.
func NewUploadHandler(svc uploadService) *UploadHandler {
	return &UploadHandler{service: svc}
}

// Upload godoc
// @Summary Upload an attachment
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Attachment"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} appErrors.Error
// @Router /upload/ [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, invalidPayload(err, "file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, invalidPayload(err, "could not read upload"))
		return
	}
	defer file.Close()

	res, err := h.service.Upload(c.Request.Context(), header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}
