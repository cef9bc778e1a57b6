package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/scribeflow/scribeflow-api/internal/ai"
	"github.com/scribeflow/scribeflow-api/internal/auth"
	"github.com/scribeflow/scribeflow-api/internal/domain"
	"github.com/scribeflow/scribeflow-api/internal/textutil"
	"go.uber.org/zap"
)

var paramValidate = validator.New()

// TransformService runs text transformations through the AI provider
type TransformService struct {
	generator      ai.Generator
	requestTimeout time.Duration
	logger         *zap.Logger
}

// NewTransformService creates a new TransformService instance
func NewTransformService(
	generator ai.Generator,
	requestTimeout time.Duration,
	logger *zap.Logger,
) *TransformService {
	if requestTimeout <= 0 {
		requestTimeout = 60 * time.Second
	}

	return &TransformService{
		generator:      generator,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// Transform generates a variant of the submitted text. The result is not
// persisted; saving to history is a separate, explicit call.
func (s *TransformService) Transform(ctx context.Context, req *domain.TransformRequest) (*domain.TransformResponse, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}

	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: text must not be empty", ErrInvalidParameters)
	}

	if !req.ContentType.IsValid() {
		return nil, ErrInvalidContentType
	}

	if req.Parameters != nil {
		if err := paramValidate.Struct(req.Parameters); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.generator.Generate(ctx, &ai.Request{
		Content:     req.Text,
		ContentType: req.ContentType,
		Tone:        req.Tone,
		Audience:    req.Audience,
		Parameters:  req.Parameters,
	})
	if err != nil {
		s.logger.Error("transformation failed",
			zap.String("userID", userCtx.UserID.String()),
			zap.String("contentType", string(req.ContentType)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	s.logger.Info("transformation completed",
		zap.String("userID", userCtx.UserID.String()),
		zap.String("contentType", string(req.ContentType)),
		zap.Duration("duration", time.Since(start)),
	)

	return &domain.TransformResponse{
		OriginalContent:      req.Text,
		TransformedContent:   result.Text,
		ContentType:          req.ContentType,
		OriginalWordCount:    textutil.WordCount(req.Text),
		TransformedWordCount: textutil.WordCount(result.Text),
		Metadata:             transformMetadata(req),
		Model:                result.Model,
	}, nil
}

// transformMetadata collects the generation options used, in the shape
// the save endpoint accepts, so the client can persist them verbatim.
func transformMetadata(req *domain.TransformRequest) domain.ContentMetadata {
	meta := domain.ContentMetadata{}
	if req.Tone != "" {
		meta["tone"] = req.Tone
	}
	if req.Audience != "" {
		meta["audience"] = req.Audience
	}
	if p := req.Parameters; p != nil {
		if p.Temperature != nil {
			meta["temperature"] = *p.Temperature
		}
		if p.TopP != nil {
			meta["topP"] = *p.TopP
		}
		if p.TopK != nil {
			meta["topK"] = *p.TopK
		}
		if p.MaxOutputTokens != nil {
			meta["maxOutputTokens"] = *p.MaxOutputTokens
		}
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}
