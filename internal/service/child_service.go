package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/klasstra/klasstra-api/internal/models"
	appErrors "github.com/klasstra/klasstra-api/pkg/errors"
)

type childRepository interface {
	Create(ctx context.Context, child *models.Child) error
	ListByParent(ctx context.Context, parentID int64) ([]models.Child, error)
}

type classLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Class, error)
}

// ChildService lets parents register and list their children.
type ChildService struct {
	repo      childRepository
	classes   classLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewChildService constructs a ChildService.
func NewChildService(repo childRepository, classes classLookup, validate *validator.Validate, logger *zap.Logger) *ChildService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChildService{repo: repo, classes: classes, validator: validate, logger: logger}
}

// Create registers a child under the calling parent. A parent cannot register
// a child for another account.
func (s *ChildService) Create(ctx context.Context, claims *models.JWTClaims, req models.CreateChildRequest) (*models.Child, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}
	if req.ParentID != claims.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "You can only add children to your own account")
	}

	class, err := s.classes.FindByID(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	child := &models.Child{
		ParentID:  req.ParentID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		ClassID:   class.ID,
	}
	if err := s.repo.Create(ctx, child); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create child")
	}
	child.Class = class
	return child, nil
}

// ListMine returns the caller's children with their classes.
func (s *ChildService) ListMine(ctx context.Context, parentID int64) ([]models.Child, error) {
	children, err := s.repo.ListByParent(ctx, parentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list children")
	}
	if children == nil {
		children = []models.Child{}
	}
	return children, nil
}
