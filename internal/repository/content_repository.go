package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/scribeflow/scribeflow-api/internal/domain"
	"gorm.io/gorm"
)

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) Create(ctx context.Context, content *domain.Content) error {
	return r.db.WithContext(ctx).Create(content).Error
}

func (r *ContentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Content, error) {
	var content domain.Content
	err := r.db.WithContext(ctx).First(&content, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// ListByUser returns a user's saved contents, newest first, optionally
// filtered by content type
func (r *ContentRepository) ListByUser(ctx context.Context, userID uuid.UUID, contentType *domain.ContentType) ([]domain.Content, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if contentType != nil {
		query = query.Where("content_type = ?", *contentType)
	}

	var contents []domain.Content
	if err := query.Find(&contents).Error; err != nil {
		return nil, err
	}
	return contents, nil
}

// ListRecentByUser returns the user's most recent contents, newest first
func (r *ContentRepository) ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Content, error) {
	var contents []domain.Content
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

// CountByUser returns the number of contents a user has saved
func (r *ContentRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Content{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
