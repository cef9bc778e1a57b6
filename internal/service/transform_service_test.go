package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/scribeflow/scribeflow-api/internal/ai"
	"github.com/scribeflow/scribeflow-api/internal/auth"
	"github.com/scribeflow/scribeflow-api/internal/domain"
	"github.com/scribeflow/scribeflow-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	result  *ai.Result
	err     error
	lastReq *ai.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req *ai.Request) (*ai.Result, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func createTransformTestContext() context.Context {
	userCtx := &auth.UserContext{
		UserID:   uuid.New(),
		Username: "testuser",
		Email:    "test@example.com",
	}
	return auth.WithUserContext(context.Background(), userCtx)
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestTransformService_Transform(t *testing.T) {
	ctx := createTransformTestContext()

	t.Run("successful transformation", func(t *testing.T) {
		gen := &fakeGenerator{result: &ai.Result{
			Text:  "A much longer expanded version of the input text",
			Model: "gemini-1.5-flash",
		}}
		svc := service.NewTransformService(gen, time.Minute, zap.NewNop())

		resp, err := svc.Transform(ctx, &domain.TransformRequest{
			Text:        "Short input text",
			ContentType: domain.ContentTypeExpand,
		})

		require.NoError(t, err)
		assert.Equal(t, "Short input text", resp.OriginalContent)
		assert.Equal(t, "A much longer expanded version of the input text", resp.TransformedContent)
		assert.Equal(t, domain.ContentTypeExpand, resp.ContentType)
		assert.Equal(t, 3, resp.OriginalWordCount)
		assert.Equal(t, 9, resp.TransformedWordCount)
		assert.Equal(t, "gemini-1.5-flash", resp.Model)
	})

	t.Run("request is passed through to the generator", func(t *testing.T) {
		gen := &fakeGenerator{result: &ai.Result{Text: "out"}}
		svc := service.NewTransformService(gen, time.Minute, zap.NewNop())

		params := &domain.AIParameters{
			Temperature:     floatPtr(0.7),
			TopK:            intPtr(40),
			MaxOutputTokens: intPtr(1024),
		}
		_, err := svc.Transform(ctx, &domain.TransformRequest{
			Text:        "input",
			ContentType: domain.ContentTypeSummarize,
			Tone:        "formal",
			Audience:    "university students",
			Parameters:  params,
		})

		require.NoError(t, err)
		require.NotNil(t, gen.lastReq)
		assert.Equal(t, "input", gen.lastReq.Content)
		assert.Equal(t, domain.ContentTypeSummarize, gen.lastReq.ContentType)
		assert.Equal(t, "formal", gen.lastReq.Tone)
		assert.Equal(t, "university students", gen.lastReq.Audience)
		assert.Equal(t, params, gen.lastReq.Parameters)
	})

	t.Run("generation settings are echoed in response metadata", func(t *testing.T) {
		gen := &fakeGenerator{result: &ai.Result{Text: "out"}}
		svc := service.NewTransformService(gen, time.Minute, zap.NewNop())

		resp, err := svc.Transform(ctx, &domain.TransformRequest{
			Text:        "input",
			ContentType: domain.ContentTypeExpand,
			Tone:        "casual",
			Parameters:  &domain.AIParameters{Temperature: floatPtr(0.3), TopK: intPtr(20)},
		})

		require.NoError(t, err)
		assert.Equal(t, "casual", resp.Metadata["tone"])
		assert.Equal(t, 0.3, resp.Metadata["temperature"])
		assert.Equal(t, 20, resp.Metadata["topK"])
		assert.NotContains(t, resp.Metadata, "audience")
	})

	t.Run("metadata omitted when no settings were given", func(t *testing.T) {
		gen := &fakeGenerator{result: &ai.Result{Text: "out"}}
		svc := service.NewTransformService(gen, time.Minute, zap.NewNop())

		resp, err := svc.Transform(ctx, &domain.TransformRequest{
			Text:        "input",
			ContentType: domain.ContentTypeExpand,
		})

		require.NoError(t, err)
		assert.Nil(t, resp.Metadata)
	})

	t.Run("whitespace-only text rejected before calling provider", func(t *testing.T) {
		gen := &fakeGenerator{result: &ai.Result{Text: "out"}}
		svc := service.NewTransformService(gen, time.Minute, zap.NewNop())

		resp, err := svc.Transform(ctx, &domain.TransformRequest{
			Text:        "   \n\t",
			ContentType: domain.ContentTypeExpand,
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, service.ErrInvalidParameters)
		assert.Nil(t, gen.lastReq)
	})

	t.Run("invalid content type rejected before calling provider", func(t *testing.T) {
		gen := &fakeGenerator{result: &ai.Result{Text: "out"}}
		svc := service.NewTransformService(gen, time.Minute, zap.NewNop())

		resp, err := svc.Transform(ctx, &domain.TransformRequest{
			Text:        "input",
			ContentType: domain.ContentType("translate"),
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, service.ErrInvalidContentType)
		assert.Nil(t, gen.lastReq)
	})

	t.Run("out-of-range temperature rejected", func(t *testing.T) {
		gen := &fakeGenerator{result: &ai.Result{Text: "out"}}
		svc := service.NewTransformService(gen, time.Minute, zap.NewNop())

		resp, err := svc.Transform(ctx, &domain.TransformRequest{
			Text:        "input",
			ContentType: domain.ContentTypeExpand,
			Parameters:  &domain.AIParameters{Temperature: floatPtr(1.5)},
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, service.ErrInvalidParameters)
		assert.Nil(t, gen.lastReq)
	})

	t.Run("out-of-range maxOutputTokens rejected", func(t *testing.T) {
		gen := &fakeGenerator{result: &ai.Result{Text: "out"}}
		svc := service.NewTransformService(gen, time.Minute, zap.NewNop())

		resp, err := svc.Transform(ctx, &domain.TransformRequest{
			Text:        "input",
			ContentType: domain.ContentTypeExpand,
			Parameters:  &domain.AIParameters{MaxOutputTokens: intPtr(10)},
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, service.ErrInvalidParameters)
	})

	t.Run("boundary parameter values accepted", func(t *testing.T) {
		gen := &fakeGenerator{result: &ai.Result{Text: "out"}}
		svc := service.NewTransformService(gen, time.Minute, zap.NewNop())

		_, err := svc.Transform(ctx, &domain.TransformRequest{
			Text:        "input",
			ContentType: domain.ContentTypeSimilar,
			Parameters: &domain.AIParameters{
				Temperature:     floatPtr(1.0),
				TopP:            floatPtr(0.0),
				TopK:            intPtr(1),
				MaxOutputTokens: intPtr(8192),
			},
		})

		assert.NoError(t, err)
	})

	t.Run("provider failure surfaces as generation error", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("quota exceeded")}
		svc := service.NewTransformService(gen, time.Minute, zap.NewNop())

		resp, err := svc.Transform(ctx, &domain.TransformRequest{
			Text:        "input",
			ContentType: domain.ContentTypeTemplate,
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, service.ErrGenerationFailed)
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("error without user context", func(t *testing.T) {
		gen := &fakeGenerator{result: &ai.Result{Text: "out"}}
		svc := service.NewTransformService(gen, time.Minute, zap.NewNop())

		resp, err := svc.Transform(context.Background(), &domain.TransformRequest{
			Text:        "input",
			ContentType: domain.ContentTypeExpand,
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, service.ErrUserContextRequired)
	})
}
