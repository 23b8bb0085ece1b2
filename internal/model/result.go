package model

// FlaggedClaim summarizes one unsupported claim for presentation layers
type FlaggedClaim struct {
	Claim      string  `json:"claim"`
	Confidence float64 `json:"confidence"`
	Evidence   string  `json:"evidence"`
	Source     string  `json:"source,omitempty"`
}

// DetectionResult is the complete output of a detection run
type DetectionResult struct {
	Hallucinated      bool           `json:"hallucinated"`
	Risk              float64        `json:"hallucination_risk"`
	Confidence        float64        `json:"confidence"`
	TotalClaims       int            `json:"total_claims"`
	SupportedClaims   int            `json:"supported_claims"`
	UnsupportedClaims int            `json:"unsupported_claims"`
	AverageSimilarity float64        `json:"average_similarity"`
	FlaggedClaims     []FlaggedClaim `json:"flagged_claims"`
	Explanations      []Explanation  `json:"explanations"`
	HighlightedText   string         `json:"highlighted_text"`
	Summary           string         `json:"explanation"` // Top-level summary sentence

	LLM *LLMSummary `json:"llm,omitempty"` // Optional LLM restatement (never affects the score)
}

// LLMSummary contains an optional LLM-generated plain-language restatement
// of the detection result. It is produced after scoring and never feeds back
// into it.
type LLMSummary struct {
	Enabled  bool   `json:"enabled"`
	Provider string `json:"provider,omitempty"` // openai, anthropic, ollama
	Model    string `json:"model,omitempty"`
	Text     string `json:"text,omitempty"`
}
