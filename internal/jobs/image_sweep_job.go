package jobs

import (
	"context"
	"time"

	"github.com/scribeflow/scribeflow-api/internal/repository"
	"github.com/scribeflow/scribeflow-api/internal/storage"
	"go.uber.org/zap"
)

// ImageSweepJob deletes stored profile images that no user references
// anymore. Uploads that were replaced or whose save failed leave files
// behind; this job reclaims them.
type ImageSweepJob struct {
	userRepo *repository.UserRepository
	storage  storage.Storage
	logger   *zap.Logger
}

// NewImageSweepJob creates a new image sweep job
func NewImageSweepJob(
	userRepo *repository.UserRepository,
	store storage.Storage,
	logger *zap.Logger,
) *ImageSweepJob {
	return &ImageSweepJob{
		userRepo: userRepo,
		storage:  store,
		logger:   logger,
	}
}

// Run performs one sweep
func (j *ImageSweepJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	referenced, err := j.userRepo.ListProfileImages(ctx)
	if err != nil {
		j.logger.Error("image sweep: failed to list referenced images", zap.Error(err))
		return
	}

	inUse := make(map[string]bool, len(referenced))
	for _, ref := range referenced {
		inUse[ref] = true
	}

	stored, err := j.storage.List(ctx)
	if err != nil {
		j.logger.Error("image sweep: failed to list stored files", zap.Error(err))
		return
	}

	var removed, failed int
	for _, path := range stored {
		if inUse[path] {
			continue
		}
		if err := j.storage.Delete(ctx, path); err != nil {
			j.logger.Warn("image sweep: failed to delete orphaned file",
				zap.String("path", path),
				zap.Error(err),
			)
			failed++
			continue
		}
		removed++
	}

	j.logger.Info("image sweep completed",
		zap.Int("stored", len(stored)),
		zap.Int("referenced", len(referenced)),
		zap.Int("removed", removed),
		zap.Int("failed", failed),
	)
}
