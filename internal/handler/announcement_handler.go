package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/klasstra/klasstra-api/internal/middleware"
	"github.com/klasstra/klasstra-api/internal/models"
	"github.com/klasstra/klasstra-api/pkg/response"
)

type announcementService interface {
	Create(ctx context.Context, claims *models.JWTClaims, req models.CreateAnnouncementRequest) (*models.AnnouncementView, error)
	CreateForRecipients(ctx context.Context, claims *models.JWTClaims, req models.TeacherAnnouncementRequest) ([]models.AnnouncementView, error)
	ForParent(ctx context.Context, parentID int64) ([]models.AnnouncementView, error)
	ForTeacher(ctx context.Context, teacherID int64) ([]models.AnnouncementView, error)
	Update(ctx context.Context, claims *models.JWTClaims, id int64, req models.UpdateAnnouncementRequest) (*models.AnnouncementView, error)
	Delete(ctx context.Context, claims *models.JWTClaims, id int64) error
	ReachableParents(ctx context.Context, claims *models.JWTClaims) ([]models.User, error)
}

// AnnouncementHandler serves announcement posting and the parent feed.
type AnnouncementHandler struct {
	service announcementService
}

// NewAnnouncementHandler constructs an announcement handler.
func NewAnnouncementHandler(svc announcementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: svc}
}

// Create godoc
// @Summary Post an announcement to a class or a parent
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateAnnouncementRequest true "Announcement payload"
// @Success 200 {object} models.AnnouncementView
// @Failure 400 {object} appErrors.Error
// @Failure 429 {object} appErrors.Error
// @Router /announcements/ [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req models.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid announcement payload"))
		return
	}

	view, err := h.service.Create(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.MarkAudited(c, view.ID)
	response.OK(c, view)
}

// ForParent godoc
// @Summary Announcements visible to the calling parent
// @Tags Announcements
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AnnouncementView
// @Router /announcements/for_parent [get]
func (h *AnnouncementHandler) ForParent(c *gin.Context) {
	views, err := h.service.ForParent(c.Request.Context(), claimsFromContext(c).UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, views)
}

// ReachableParents godoc
// @Summary Parents the caller may address
// @Tags Announcements
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Router /announcements/teacher/parents [get]
func (h *AnnouncementHandler) ReachableParents(c *gin.Context) {
	parents, err := h.service.ReachableParents(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, parents)
}
