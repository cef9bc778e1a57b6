package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/scribeflow/scribeflow-api/internal/config"
	"github.com/scribeflow/scribeflow-api/internal/domain"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiGenerator implements Generator on top of the Google Gemini API
type GeminiGenerator struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiGenerator creates a Gemini-backed generator
func NewGeminiGenerator(ctx context.Context, cfg *config.AIConfig, logger *zap.Logger) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger.Info("Gemini generator initialized", zap.String("model", cfg.Model))

	return &GeminiGenerator{
		client: client,
		model:  cfg.Model,
		logger: logger,
	}, nil
}

// Close releases the underlying client
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// Generate runs a single generation call. There is no retry; upstream
// failures surface to the caller as-is.
func (g *GeminiGenerator) Generate(ctx context.Context, req *Request) (*Result, error) {
	instruction, err := BuildInstruction(req)
	if err != nil {
		return nil, err
	}

	model := g.client.GenerativeModel(g.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(instruction)},
	}
	model.GenerationConfig = generationConfig(req.Parameters)

	resp, err := model.GenerateContent(ctx, genai.Text(req.Content))
	if err != nil {
		g.logger.Error("generation request failed",
			zap.String("model", g.model),
			zap.String("content_type", string(req.ContentType)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("generation request failed: %w", err)
	}

	text, err := extractText(resp)
	if err != nil {
		return nil, err
	}

	return &Result{Text: text, Model: g.model}, nil
}

// generationConfig maps optional tuning parameters onto the genai config
func generationConfig(p *domain.AIParameters) genai.GenerationConfig {
	var cfg genai.GenerationConfig
	if p == nil {
		return cfg
	}
	if p.Temperature != nil {
		v := float32(*p.Temperature)
		cfg.Temperature = &v
	}
	if p.TopP != nil {
		v := float32(*p.TopP)
		cfg.TopP = &v
	}
	if p.TopK != nil {
		v := int32(*p.TopK)
		cfg.TopK = &v
	}
	if p.MaxOutputTokens != nil {
		v := int32(*p.MaxOutputTokens)
		cfg.MaxOutputTokens = &v
	}
	return cfg
}

// extractText concatenates the text parts of the first candidate
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("model returned no text content")
	}

	return strings.TrimSpace(sb.String()), nil
}
