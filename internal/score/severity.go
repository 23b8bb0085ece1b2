package score

import "github.com/chumarjamil/hallucination-guard/internal/model"

// dissimilarBand is the similarity below which evidence is considered
// substantially dissimilar from the claim, suggesting contradiction or
// unrelated content.
const dissimilarBand = 0.2

// Classify assigns a severity tier to a single verification record. Only
// unsupported records carry a meaningful severity; supported ones fall
// through to low and callers treat them as unflagged.
func Classify(record model.VerificationRecord, supportThreshold float64) model.Severity {
	if !record.EvidenceFound {
		// No evidence at all cannot even be contradicted, only
		// unconfirmed: the most severe failure mode.
		return model.SeverityHigh
	}
	if record.Similarity < dissimilarBand {
		return model.SeverityHigh
	}
	if record.Similarity < supportThreshold {
		return model.SeverityMedium
	}
	// Unreachable for unsupported records: supported is defined as
	// similarity >= supportThreshold.
	return model.SeverityLow
}
