// Package ai provides the text generation provider used by the
// transformation pipeline.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/scribeflow/scribeflow-api/internal/domain"
)

// Request describes a single generation call. Tone and Audience are
// optional steering hints appended to the system instruction.
type Request struct {
	Content     string
	ContentType domain.ContentType
	Tone        string
	Audience    string
	Parameters  *domain.AIParameters
}

// Result is the provider's output
type Result struct {
	Text  string
	Model string
}

// Generator produces a transformed variant of the input text.
// Implementations must honor ctx cancellation; callers apply the
// configured request timeout.
type Generator interface {
	Generate(ctx context.Context, req *Request) (*Result, error)
}

// System instructions per transformation type. The model sees the raw
// user text as the sole user message.
const (
	expandInstruction = "You are an expert writing assistant. Expand the provided text into a longer, " +
		"richer version. Preserve the original meaning, tone and factual claims while adding depth, " +
		"detail and supporting explanation. Return only the expanded text, nothing else."

	summarizeInstruction = "You are an expert writing assistant. Summarize the provided text into a " +
		"shorter version that keeps every essential point. Do not introduce information that is not " +
		"in the original. Return only the summary, nothing else."

	similarInstruction = "You are an expert writing assistant. Rewrite the provided text as new content " +
		"with the same meaning, structure and approximate length, but different wording. Return only " +
		"the rewritten text, nothing else."

	templateInstruction = "You are an expert writing assistant. Convert the provided text into a reusable " +
		"template: replace specific names, dates, numbers and other concrete details with descriptive " +
		"placeholders in curly braces, e.g. {customer_name}. Return only the template, nothing else."
)

// InstructionFor returns the system instruction for a content type
func InstructionFor(ct domain.ContentType) (string, error) {
	switch ct {
	case domain.ContentTypeExpand:
		return expandInstruction, nil
	case domain.ContentTypeSummarize:
		return summarizeInstruction, nil
	case domain.ContentTypeSimilar:
		return similarInstruction, nil
	case domain.ContentTypeTemplate:
		return templateInstruction, nil
	default:
		return "", fmt.Errorf("unsupported content type: %s", ct)
	}
}

// BuildInstruction returns the full system instruction for a request,
// including any tone and audience hints.
func BuildInstruction(req *Request) (string, error) {
	instruction, err := InstructionFor(req.ContentType)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(instruction)
	if req.Tone != "" {
		fmt.Fprintf(&sb, " Write in a %s tone.", req.Tone)
	}
	if req.Audience != "" {
		fmt.Fprintf(&sb, " Write for this audience: %s.", req.Audience)
	}
	return sb.String(), nil
}
