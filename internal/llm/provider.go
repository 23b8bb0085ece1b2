package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/chumarjamil/hallucination-guard/internal/model"
)

// Provider generates a plain-language restatement of a detection result.
// Providers run after scoring and their output never feeds back into it.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize produces a short summary of the detection result
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks whether the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest is the input for summary generation
type SummarizeRequest struct {
	// Result is the detection result to restate
	Result model.DetectionResult

	// Prompt overrides the default prompt when non-empty
	Prompt string

	// Model is the provider-specific model name
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse is the provider's output
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	Provider  string // "openai", "anthropic", "ollama", ""
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns provider defaults with summarization disabled
func DefaultConfig() Config {
	return Config{
		Timeout:   30,
		MaxTokens: 500,
	}
}

// ConfigFromModel converts the application LLM config
func ConfigFromModel(cfg model.LLMConfig, proxy model.ProxyConfig) Config {
	return Config{
		Provider:   cfg.Provider,
		Model:      cfg.Model,
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		MaxTokens:  cfg.MaxTokens,
		HTTPProxy:  proxy.HTTP,
		HTTPSProxy: proxy.HTTPS,
		NoProxy:    proxy.No,
	}
}

// BuildPrompt constructs the default summarization prompt. The provider is
// constrained to restate what the report already says: it may not introduce
// facts, judge truth, or cite sources beyond those listed.
func BuildPrompt(result model.DetectionResult) string {
	var b strings.Builder

	b.WriteString(`You are summarizing a hallucination-detection report. The report measures how well claims are supported by retrieved evidence - it never asserts truth or falsehood.

RULES:
1. Restate ONLY the numbers and claims listed below. Do not add facts.
2. Do not judge whether any claim is actually true or false.
3. Use phrasing like "support was found for..." or "no evidence was found for...".

`)

	fmt.Fprintf(&b, "Report:\n")
	fmt.Fprintf(&b, "- Hallucination risk: %.2f\n", result.Risk)
	fmt.Fprintf(&b, "- Claims analysed: %d (%d supported, %d unsupported)\n",
		result.TotalClaims, result.SupportedClaims, result.UnsupportedClaims)
	fmt.Fprintf(&b, "- Average similarity: %.2f\n", result.AverageSimilarity)

	if len(result.FlaggedClaims) > 0 {
		b.WriteString("\nFlagged claims:\n")
		for i, fc := range result.FlaggedClaims {
			if i >= 10 {
				fmt.Fprintf(&b, "... and %d more\n", len(result.FlaggedClaims)-10)
				break
			}
			fmt.Fprintf(&b, "- %s (similarity %.2f, source: %s)\n", fc.Claim, fc.Confidence, orNone(fc.Source))
		}
	}

	b.WriteString("\nWrite a 2-3 sentence summary of evidence support, nothing else.")
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
