package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/klasstra/klasstra-api/internal/models"
	appErrors "github.com/klasstra/klasstra-api/pkg/errors"
	"github.com/klasstra/klasstra-api/pkg/llm"
)

// AIService drafts announcements with a language model.
type AIService struct {
	completer llm.Completer
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAIService constructs an AIService. A nil completer means no API key is configured.
func NewAIService(completer llm.Completer, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AIService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AIService{completer: completer, metrics: metrics, validator: validate, logger: logger}
}

// Generate turns the caller's notes into a trilingual announcement draft.
func (s *AIService) Generate(ctx context.Context, claims *models.JWTClaims, req models.GenerateRequest) (*models.GenerateResponse, error) {
	if s.completer == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "OpenAI API key not configured")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}

	name := claims.Subject
	if name == "" {
		name = "Teacher"
	}
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: announcementSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("The teacher's name is %s. Here is the teacher's input:\n%s", name, req.InputText)},
	}

	start := time.Now()
	out, err := s.completer.Complete(ctx, messages)
	if err != nil {
		s.metrics.ObserveAICall("error", time.Since(start))
		s.logger.Warn("ai generation failed", zap.Int64("user_id", claims.UserID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "OpenAI API error: "+err.Error())
	}
	s.metrics.ObserveAICall("ok", time.Since(start))

	return &models.GenerateResponse{OutputText: strings.TrimSpace(out)}, nil
}
