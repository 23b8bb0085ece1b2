package explain

import (
	"fmt"
	"unicode/utf8"

	"github.com/chumarjamil/hallucination-guard/internal/model"
	"github.com/chumarjamil/hallucination-guard/internal/score"
)

const evidencePreviewChars = 200

// Explainer turns verification records into human-readable explanations
type Explainer struct{}

// NewExplainer creates a new explainer
func NewExplainer() *Explainer {
	return &Explainer{}
}

// Explain builds one explanation per record. The support threshold is the
// same value used to derive each record's Supported field; the severity
// classifier needs it to pick between the medium and high bands.
func (e *Explainer) Explain(records []model.VerificationRecord, supportThreshold float64) []model.Explanation {
	explanations := make([]model.Explanation, 0, len(records))

	for _, rec := range records {
		severity := model.SeverityLow
		if !rec.Supported {
			severity = score.Classify(rec, supportThreshold)
		}

		explanations = append(explanations, model.Explanation{
			Claim:        rec.Claim.Text,
			Hallucinated: !rec.Supported,
			Confidence:   rec.Similarity,
			Explanation:  explanationText(rec),
			Evidence:     rec.EvidenceText,
			Source:       rec.SourceLabel,
			Severity:     severity,
		})
	}

	return explanations
}

func explanationText(rec model.VerificationRecord) string {
	if rec.Supported {
		return fmt.Sprintf("This claim appears to be factually supported (similarity: %.2f).", rec.Similarity)
	}

	if rec.EvidenceFound {
		evidence := truncateRuneSafe(rec.EvidenceText, evidencePreviewChars)
		return fmt.Sprintf(
			"This claim could not be verified. Available evidence suggests otherwise (similarity: %.2f). Source evidence: %s",
			rec.Similarity, evidence)
	}

	return fmt.Sprintf(
		"This claim could not be verified against any trusted source (similarity: %.2f). No supporting evidence was found.",
		rec.Similarity)
}

// truncateRuneSafe cuts s to at most n bytes without splitting a UTF-8 rune
func truncateRuneSafe(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
