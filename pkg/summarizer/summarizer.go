package summarizer

import (
	"context"
	"fmt"
	"strings"

	"case-knowledge-be/internal/constant"
	"case-knowledge-be/pkg/llm"
)

// maxInputChars bounds the document prefix sent to the model so summary
// cost stays flat regardless of document size.
const maxInputChars = 12000

const promptTemplate = `Summarize the following document in 2-3 sentences. Focus on what the document is about and its key points. Answer with the summary only.

Document name: %s

%s`

// Summarizer produces a short abstract of an extracted document.
type Summarizer struct {
	provider llm.LLMProvider
	model    string
}

func NewSummarizer(provider llm.LLMProvider, model string) *Summarizer {
	return &Summarizer{provider: provider, model: model}
}

// Summarize returns a short summary of text. Empty or whitespace-only input
// short-circuits to a fixed placeholder without touching the model.
func (s *Summarizer) Summarize(ctx context.Context, fileName, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return constant.EmptyTextSummary, nil
	}

	runes := []rune(text)
	if len(runes) > maxInputChars {
		text = string(runes[:maxInputChars])
	}

	summary, err := s.provider.Generate(ctx,
		fmt.Sprintf(promptTemplate, fileName, text),
		llm.WithModel(s.model),
		llm.WithTemperature(0.2),
	)
	if err != nil {
		return "", fmt.Errorf("summarize %s: %w", fileName, err)
	}
	return strings.TrimSpace(summary), nil
}
