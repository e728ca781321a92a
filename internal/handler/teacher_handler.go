package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/klasstra/klasstra-api/internal/middleware"
	"github.com/klasstra/klasstra-api/internal/models"
	"github.com/klasstra/klasstra-api/pkg/response"
)

type teacherClassService interface {
	ListForTeacher(ctx context.Context, teacherID int64) ([]models.Class, error)
}

// TeacherHandler serves the teacher workspace.
type TeacherHandler struct {
	classes       teacherClassService
	announcements announcementService
}

// NewTeacherHandler constructs a teacher handler.
func NewTeacherHandler(classes teacherClassService, announcements announcementService) *TeacherHandler {
	return &TeacherHandler{classes: classes, announcements: announcements}
}

// MyClasses godoc
// @Summary Classes assigned to the calling teacher
// @Tags Teacher
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Class
// @Router /teacher/my-classes [get]
func (h *TeacherHandler) MyClasses(c *gin.Context) {
	classes, err := h.classes.ListForTeacher(c.Request.Context(), claimsFromContext(c).UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, classes)
}

// MyAnnouncements godoc
// @Summary Announcements for the teacher's classes and the teacher's own posts
// @Tags Teacher
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AnnouncementView
// @Router /teacher/my-announcements [get]
func (h *TeacherHandler) MyAnnouncements(c *gin.Context) {
	views, err := h.announcements.ForTeacher(c.Request.Context(), claimsFromContext(c).UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, views)
}

// CreateAnnouncements godoc
// @Summary Post one announcement to several classes and parents
// @Tags Teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.TeacherAnnouncementRequest true "Announcement payload"
// @Success 200 {array} models.AnnouncementView
// @Failure 400 {object} appErrors.Error
// @Failure 429 {object} appErrors.Error
// @Router /teacher/announcements [post]
func (h *TeacherHandler) CreateAnnouncements(c *gin.Context) {
	var req models.TeacherAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid announcement payload"))
		return
	}

	views, err := h.announcements.CreateForRecipients(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	for _, v := range views {
		middleware.MarkAudited(c, v.ID)
	}
	response.OK(c, views)
}

// UpdateAnnouncement godoc
// @Summary Edit an announcement the caller created
// @Tags Teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Param payload body models.UpdateAnnouncementRequest true "Fields to change"
// @Success 200 {object} models.AnnouncementView
// @Failure 403 {object} appErrors.Error
// @Failure 404 {object} appErrors.Error
// @Router /teacher/announcements/{id} [patch]
func (h *TeacherHandler) UpdateAnnouncement(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid announcement payload"))
		return
	}

	view, err := h.announcements.Update(c.Request.Context(), claimsFromContext(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view)
}

// DeleteAnnouncement godoc
// @Summary Delete an announcement the caller created
// @Tags Teacher
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Detail
// @Failure 403 {object} appErrors.Error
// @Failure 404 {object} appErrors.Error
// @Router /teacher/announcements/{id} [delete]
func (h *TeacherHandler) DeleteAnnouncement(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.announcements.Delete(c.Request.Context(), claimsFromContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Announcement deleted")
}
