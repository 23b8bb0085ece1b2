package model

// VerificationRecord is the outcome of checking a single claim against the
// reference corpus. Records are immutable value objects: construct one with
// NewVerificationRecord or NewUnverifiedRecord and never mutate it afterwards.
type VerificationRecord struct {
	Claim         Claim   `json:"claim"`
	Similarity    float64 `json:"similarity"`         // [0,1]; 0.0 when no evidence was found
	EvidenceFound bool    `json:"evidence_found"`     // false when retrieval produced nothing at all
	EvidenceText  string  `json:"evidence,omitempty"` // Best-matching reference snippet
	SourceLabel   string  `json:"source,omitempty"`   // Evidence origin (e.g., "Wikipedia: Eiffel Tower")
	Supported     bool    `json:"supported"`
}

// NewVerificationRecord builds a record for a claim with retrieved evidence.
// Supported is always derived from similarity and the injected threshold,
// never set independently.
func NewVerificationRecord(claim Claim, similarity float64, evidenceText, sourceLabel string, supportThreshold float64) VerificationRecord {
	return VerificationRecord{
		Claim:         claim,
		Similarity:    similarity,
		EvidenceFound: true,
		EvidenceText:  evidenceText,
		SourceLabel:   sourceLabel,
		Supported:     similarity >= supportThreshold,
	}
}

// NewUnverifiedRecord builds a record for a claim with no retrievable
// evidence. The zero similarity counts in aggregate math, but the record
// stays distinguishable from "evidence found but dissimilar" so the severity
// classifier and explanation text can treat it as the worst failure mode.
func NewUnverifiedRecord(claim Claim) VerificationRecord {
	return VerificationRecord{Claim: claim}
}
