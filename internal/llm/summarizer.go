package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/chumarjamil/hallucination-guard/internal/model"
)

// Summarizer wraps a Provider and produces the optional LLMSummary attached
// to detection results
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer builds a summarizer from configuration. An empty provider
// name yields a disabled summarizer, not an error.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateSummary asks the provider to restate the result. Scoring has
// already happened by the time this runs; the summary is presentation only.
func (s *Summarizer) GenerateSummary(ctx context.Context, result model.DetectionResult) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Result:    result,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	return &model.LLMSummary{
		Enabled:  true,
		Provider: s.provider.Name(),
		Model:    resp.Model,
		Text:     resp.Summary,
	}, nil
}

// NewProvider creates a provider from configuration. An empty provider name
// returns (nil, nil): LLM summaries disabled.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)
	case "anthropic", "claude":
		return NewAnthropicProvider(config)
	case "ollama":
		return NewOllamaProvider(config)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}
