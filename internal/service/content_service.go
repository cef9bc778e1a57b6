package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/scribeflow/scribeflow-api/internal/auth"
	"github.com/scribeflow/scribeflow-api/internal/domain"
	"github.com/scribeflow/scribeflow-api/internal/mapper"
	"github.com/scribeflow/scribeflow-api/internal/repository"
	"github.com/scribeflow/scribeflow-api/internal/textutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ContentService handles the saved content history
type ContentService struct {
	contentRepo *repository.ContentRepository
	logger      *zap.Logger
}

// NewContentService creates a new ContentService instance
func NewContentService(
	contentRepo *repository.ContentRepository,
	logger *zap.Logger,
) *ContentService {
	return &ContentService{
		contentRepo: contentRepo,
		logger:      logger,
	}
}

// Create saves a transformation result to the current user's history.
// Word counts are computed server-side from the submitted texts.
func (s *ContentService) Create(ctx context.Context, req *domain.CreateContentRequest) (*domain.ContentDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}

	if !req.ContentType.IsValid() {
		return nil, ErrInvalidContentType
	}

	if err := req.Metadata.ValidateFor(req.ContentType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}

	content := &domain.Content{
		UserID:               userCtx.UserID,
		Title:                req.Title,
		OriginalContent:      req.OriginalContent,
		TransformedContent:   req.TransformedContent,
		ContentType:          req.ContentType,
		OriginalWordCount:    textutil.WordCount(req.OriginalContent),
		TransformedWordCount: textutil.WordCount(req.TransformedContent),
		Metadata:             req.Metadata,
	}

	if err := s.contentRepo.Create(ctx, content); err != nil {
		return nil, fmt.Errorf("failed to create content: %w", err)
	}

	s.logger.Info("content saved",
		zap.String("contentID", content.ID.String()),
		zap.String("userID", userCtx.UserID.String()),
		zap.String("contentType", string(content.ContentType)),
	)

	dto := mapper.ToContentDTO(content)
	return &dto, nil
}

// GetByID returns a content entry by ID, verifying ownership
func (s *ContentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ContentDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}

	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}

	if content.UserID != userCtx.UserID {
		return nil, ErrContentNotOwned
	}

	dto := mapper.ToContentDTO(content)
	return &dto, nil
}

// ListForCurrentUser returns the current user's history, newest first,
// optionally filtered by content type
func (s *ContentService) ListForCurrentUser(ctx context.Context, contentType *domain.ContentType) ([]domain.ContentDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}

	if contentType != nil && !contentType.IsValid() {
		return nil, ErrInvalidContentType
	}

	contents, err := s.contentRepo.ListByUser(ctx, userCtx.UserID, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to list contents: %w", err)
	}

	return mapper.ToContentDTOs(contents), nil
}

// ListRecentForCurrentUser returns the current user's most recent entries.
// The limit is clamped to [1, 100] with a default of 10.
func (s *ContentService) ListRecentForCurrentUser(ctx context.Context, limit int) ([]domain.ContentDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}

	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	contents, err := s.contentRepo.ListRecentByUser(ctx, userCtx.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent contents: %w", err)
	}

	return mapper.ToContentDTOs(contents), nil
}
