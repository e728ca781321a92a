package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/klasstra/klasstra-api/internal/middleware"
	"github.com/klasstra/klasstra-api/internal/models"
	"github.com/klasstra/klasstra-api/internal/service"
	"github.com/klasstra/klasstra-api/pkg/response"
)

type adminService interface {
	PromoteClassRep(ctx context.Context, userID int64) error
	AssignTeacher(ctx context.Context, req models.AssignTeacherClassRequest) (*service.AssignResult, error)
}

type auditLister interface {
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error)
}

// AdminHandler serves administrative operations.
type AdminHandler struct {
	service adminService
	audit   auditLister
}

// NewAdminHandler constructs an admin handler.
func NewAdminHandler(svc adminService, audit auditLister) *AdminHandler {
	return &AdminHandler{service: svc, audit: audit}
}

// PromoteClassRep godoc
// @Summary Promote a user to class representative
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Detail
// @Failure 404 {object} appErrors.Error
// @Router /admin/user/{id}/class_rep [put]
func (h *AdminHandler) PromoteClassRep(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.PromoteClassRep(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "User promoted to class_rep")
}

// AssignTeacher godoc
// @Summary Assign a teacher to a class
// @Description Accepts a JSON body or teacher_id and class_id query parameters.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.AssignTeacherClassRequest false "Assignment"
// @Param teacher_id query int false "Teacher ID"
// @Param class_id query int false "Class ID"
// @Success 200 {object} response.Detail
// @Failure 400 {object} appErrors.Error
// @Router /admin/assign-teacher-class [post]
func (h *AdminHandler) AssignTeacher(c *gin.Context) {
	var req models.AssignTeacherClassRequest
	if c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, invalidPayload(err, "invalid assignment payload"))
			return
		}
	} else if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, invalidPayload(err, "teacher_id and class_id must be integers"))
		return
	}

	result, err := h.service.AssignTeacher(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Created {
		middleware.MarkAudited(c, req.ClassID)
	}
	response.Message(c, http.StatusOK, result.Message)
}

// AuditLogs godoc
// @Summary Recent audit entries
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param entity_type query string false "Entity type filter"
// @Param limit query int false "Maximum entries (default 50, max 200)"
// @Success 200 {array} models.AuditLog
// @Router /admin/audit-logs [get]
func (h *AdminHandler) AuditLogs(c *gin.Context) {
	filter := models.AuditFilter{EntityType: c.Query("entity_type")}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, invalidPayload(err, "limit must be an integer"))
			return
		}
		filter.Limit = limit
	}

	entries, err := h.audit.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}
