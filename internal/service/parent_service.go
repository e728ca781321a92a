package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/klasstra/klasstra-api/internal/models"
	appErrors "github.com/klasstra/klasstra-api/pkg/errors"
	"github.com/klasstra/klasstra-api/pkg/export"
)

type parentRepository interface {
	ListByRoles(ctx context.Context, roles ...models.UserRole) ([]models.User, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ParentService lists parent accounts for administrators.
type ParentService struct {
	repo   parentRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewParentService constructs a ParentService.
func NewParentService(repo parentRepository, logger *zap.Logger) *ParentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParentService{repo: repo, logger: logger, now: time.Now}
}

// List returns users whose role is parent.
func (s *ParentService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.ListByRoles(ctx, models.RoleParent)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list parents")
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// Export renders the parent roster as csv or pdf.
func (s *ParentService) Export(ctx context.Context, format string) (*ExportFile, error) {
	exporter, err := export.ForFormat(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv or pdf")
	}

	parents, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Title:   "Parents",
		Headers: []string{"id", "username", "first_name", "last_name", "email"},
		Rows:    make([][]string, 0, len(parents)),
	}
	for _, p := range parents {
		dataset.Rows = append(dataset.Rows, []string{strconv.FormatInt(p.ID, 10), p.Username, p.FirstName, p.LastName, p.Email})
	}

	data, err := exporter.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	s.logger.Info("parent roster exported", zap.String("format", exporter.Extension()), zap.Int("rows", len(parents)))

	return &ExportFile{
		Filename:    fmt.Sprintf("parents-%s.%s", s.now().UTC().Format("20060102"), exporter.Extension()),
		ContentType: exporter.ContentType(),
		Data:        data,
	}, nil
}
