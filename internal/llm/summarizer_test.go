package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/chumarjamil/hallucination-guard/internal/model"
)

type fakeProvider struct {
	lastPrompt string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Summarize(_ context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	prompt := req.Prompt
	if prompt == "" {
		prompt = BuildPrompt(req.Result)
	}
	f.lastPrompt = prompt
	return &SummarizeResponse{Summary: "summary text", Model: "fake-1"}, nil
}

func (f *fakeProvider) IsAvailable(context.Context) bool { return true }

func TestNewProvider_EmptyDisables(t *testing.T) {
	provider, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider != nil {
		t.Error("empty provider name should disable summaries")
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "palm"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewProvider_OpenAIRequiresKey(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("expected error when the OpenAI key is missing")
	}
}

func TestSummarizer_Disabled(t *testing.T) {
	s, err := NewSummarizer(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.IsEnabled() {
		t.Error("summarizer should be disabled without a provider")
	}

	summary, err := s.GenerateSummary(context.Background(), model.DetectionResult{})
	if err != nil || summary != nil {
		t.Errorf("disabled summarizer should be a no-op, got %v, %v", summary, err)
	}
}

func TestSummarizer_UsesProvider(t *testing.T) {
	fake := &fakeProvider{}
	s := &Summarizer{provider: fake, config: DefaultConfig()}

	result := model.DetectionResult{
		Risk:              0.73,
		TotalClaims:       3,
		SupportedClaims:   1,
		UnsupportedClaims: 2,
		FlaggedClaims: []model.FlaggedClaim{
			{Claim: "The moon is made of cheese.", Confidence: 0.12},
		},
	}

	summary, err := s.GenerateSummary(context.Background(), result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary == nil || !summary.Enabled || summary.Provider != "fake" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if !strings.Contains(fake.lastPrompt, "The moon is made of cheese.") {
		t.Error("prompt should list the flagged claims")
	}
	if !strings.Contains(fake.lastPrompt, "0.73") {
		t.Error("prompt should restate the risk score")
	}
}

func TestBuildPrompt_CapsFlaggedClaims(t *testing.T) {
	result := model.DetectionResult{TotalClaims: 20, UnsupportedClaims: 20}
	for i := 0; i < 20; i++ {
		result.FlaggedClaims = append(result.FlaggedClaims, model.FlaggedClaim{Claim: "claim"})
	}

	prompt := BuildPrompt(result)

	if !strings.Contains(prompt, "and 10 more") {
		t.Errorf("expected flagged-claim list to be capped, got:\n%s", prompt)
	}
}
