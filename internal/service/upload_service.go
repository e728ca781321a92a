package service

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/klasstra/klasstra-api/internal/models"
	appErrors "github.com/klasstra/klasstra-api/pkg/errors"
)

type fileStore interface {
	SaveStream(originalName string, r io.Reader) (string, error)
}

// UploadService stores attachments and returns their public URL.
type UploadService struct {
	store   fileStore
	baseURL string
	logger  *zap.Logger
}

// NewUploadService constructs an UploadService. baseURL has no trailing slash.
func NewUploadService(store fileStore, baseURL string, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{store: store, baseURL: baseURL, logger: logger}
}

// Upload stores r under a random name and returns {url}. File type and size are not checked.
func (s *UploadService) Upload(ctx context.Context, originalName string, r io.Reader) (*models.UploadResponse, error) {
	name, err := s.store.SaveStream(originalName, r)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store file")
	}
	s.logger.Debug("file uploaded", zap.String("name", name))
	return &models.UploadResponse{URL: s.baseURL + "/uploads/" + name}, nil
}
