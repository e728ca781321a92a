package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/klasstra/klasstra-api/internal/models"
	appErrors "github.com/klasstra/klasstra-api/pkg/errors"
)

type adminUserRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	UpdateRole(ctx context.Context, id int64, role models.UserRole, updatedAt time.Time) error
}

type teacherClassRepository interface {
	Assign(ctx context.Context, teacherID, classID int64) (bool, error)
}

// AssignResult reports the outcome of a teacher assignment.
type AssignResult struct {
	Created bool
	Message string
}

// AdminService implements role promotion and teacher assignment.
type AdminService struct {
	users          adminUserRepository
	classes        classLookup
	teacherClasses teacherClassRepository
	validator      *validator.Validate
	logger         *zap.Logger
}

// NewAdminService constructs an AdminService.
func NewAdminService(users adminUserRepository, classes classLookup, teacherClasses teacherClassRepository, validate *validator.Validate, logger *zap.Logger) *AdminService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{users: users, classes: classes, teacherClasses: teacherClasses, validator: validate, logger: logger}
}

// PromoteClassRep sets a user's role to class_rep.
func (s *AdminService) PromoteClassRep(ctx context.Context, userID int64) error {
	if err := s.users.UpdateRole(ctx, userID, models.RoleClassRep, time.Now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "User not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to promote user")
	}
	s.logger.Info("user promoted to class_rep", zap.Int64("user_id", userID))
	return nil
}

// AssignTeacher links a teacher to a class. Assigning an existing pair is acknowledged without change.
func (s *AdminService) AssignTeacher(ctx context.Context, req models.AssignTeacherClassRequest) (*AssignResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}

	teacher, err := s.users.FindByID(ctx, req.TeacherID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	if teacher == nil || teacher.Role != models.RoleTeacher {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid teacher_id or user is not a teacher.")
	}

	if _, err := s.classes.FindByID(ctx, req.ClassID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	created, err := s.teacherClasses.Assign(ctx, req.TeacherID, req.ClassID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign teacher")
	}
	if !created {
		return &AssignResult{Message: "Teacher is already assigned to this class."}, nil
	}
	return &AssignResult{
		Created: true,
		Message: fmt.Sprintf("Assigned teacher_id=%d to class_id=%d.", req.TeacherID, req.ClassID),
	}, nil
}
