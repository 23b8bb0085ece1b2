package model

// RiskReport aggregates per-claim verification outcomes into a single
// bounded hallucination-risk score. Reports are created fresh per detection
// call and never mutated.
type RiskReport struct {
	TotalClaims       int     `json:"total_claims"`
	SupportedClaims   int     `json:"supported_claims"`
	UnsupportedClaims int     `json:"unsupported_claims"`
	AverageSimilarity float64 `json:"average_similarity"` // 0.0 when TotalClaims == 0
	UnsupportedRatio  float64 `json:"unsupported_ratio"`  // 0.0 when TotalClaims == 0
	Risk              float64 `json:"hallucination_risk"` // [0,1]
}

// Confidence is the caller-facing inverse of the risk score
func (r RiskReport) Confidence() float64 {
	return 1.0 - r.Risk
}

// Severity is a three-tier classification of how badly an unsupported claim
// fails verification
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium" // Evidence exists but the signal is weak and ambiguous
	SeverityHigh   Severity = "high"   // No evidence at all, or evidence substantially dissimilar
)

// Explanation is the human-readable account of one claim's verification
type Explanation struct {
	Claim        string   `json:"claim"`
	Hallucinated bool     `json:"hallucinated"`
	Confidence   float64  `json:"confidence"`
	Explanation  string   `json:"explanation"`
	Evidence     string   `json:"evidence,omitempty"`
	Source       string   `json:"source,omitempty"`
	Severity     Severity `json:"severity"`
}
