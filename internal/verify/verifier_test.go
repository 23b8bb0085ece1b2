package verify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/chumarjamil/hallucination-guard/internal/model"
)

// stubSource serves canned passages keyed by query
type stubSource struct {
	passages map[string]*Passage
	err      error
}

func (s *stubSource) Search(_ context.Context, query string) (*Passage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.passages[query], nil
}

func TestVerifier_SupportedClaim(t *testing.T) {
	source := &stubSource{passages: map[string]*Passage{
		"Eiffel Tower": {
			Text:  "The Eiffel Tower is a wrought-iron lattice tower located in Paris, France.",
			Label: "Eiffel Tower",
		},
	}}
	verifier := NewVerifier(source, NewLexicalScorer(), 0.45, 2)

	claims := []model.Claim{{
		Text:    "The Eiffel Tower is located in Paris.",
		Subject: "Eiffel Tower",
	}}

	records, err := verifier.Verify(context.Background(), claims)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if !rec.EvidenceFound {
		t.Error("expected evidence to be found")
	}
	if !rec.Supported {
		t.Errorf("expected claim to be supported, similarity=%f", rec.Similarity)
	}
	if rec.SourceLabel != "Wikipedia: Eiffel Tower" {
		t.Errorf("unexpected source label %q", rec.SourceLabel)
	}
}

func TestVerifier_NoEvidence(t *testing.T) {
	verifier := NewVerifier(&stubSource{}, NewLexicalScorer(), 0.45, 2)

	claims := []model.Claim{{Text: "Zorblax conquered the seventh moon.", Subject: "Zorblax"}}

	records, err := verifier.Verify(context.Background(), claims)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := records[0]
	if rec.EvidenceFound {
		t.Error("expected no evidence")
	}
	if rec.Supported {
		t.Error("claim without evidence must be unsupported")
	}
	if rec.Similarity != 0.0 {
		t.Errorf("expected similarity 0.0, got %f", rec.Similarity)
	}
}

func TestVerifier_SourceErrorsAreNonFatal(t *testing.T) {
	verifier := NewVerifier(&stubSource{err: errors.New("network down")}, NewLexicalScorer(), 0.45, 2)

	records, err := verifier.Verify(context.Background(), []model.Claim{{Text: "Paris is the capital of France.", Subject: "Paris"}})
	if err != nil {
		t.Fatalf("source errors should degrade to unverified records, got %v", err)
	}
	if records[0].EvidenceFound {
		t.Error("expected an unverified record when all lookups fail")
	}
}

func TestVerifier_PreservesClaimOrder(t *testing.T) {
	source := &stubSource{passages: map[string]*Passage{
		"Alpha": {Text: "Alpha is the first letter.", Label: "Alpha"},
		"Omega": {Text: "Omega is the last letter.", Label: "Omega"},
	}}
	verifier := NewVerifier(source, NewLexicalScorer(), 0.45, 4)

	claims := []model.Claim{
		{Text: "Alpha is the first letter.", Subject: "Alpha"},
		{Text: "Omega is the last letter.", Subject: "Omega"},
	}

	records, err := verifier.Verify(context.Background(), claims)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, rec := range records {
		if rec.Claim.Text != claims[i].Text {
			t.Errorf("record %d out of order: %q", i, rec.Claim.Text)
		}
	}
}

func TestVerifier_EmptyClaims(t *testing.T) {
	verifier := NewVerifier(&stubSource{}, NewLexicalScorer(), 0.45, 2)

	records, err := verifier.Verify(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestSearchQueries(t *testing.T) {
	claim := model.Claim{
		Text:    "The Great Wall of China was built over many centuries.",
		Subject: "Great Wall",
	}

	queries := searchQueries(claim)

	if len(queries) == 0 || queries[0] != "Great Wall" {
		t.Fatalf("expected the subject as the first query, got %v", queries)
	}
	joined := strings.Join(queries, "|")
	if !strings.Contains(joined, "China") {
		t.Errorf("expected capitalized terms among queries, got %v", queries)
	}
	seen := map[string]bool{}
	for _, q := range queries {
		if seen[q] {
			t.Errorf("duplicate query %q", q)
		}
		seen[q] = true
	}
}

func TestSearchQueries_Fallback(t *testing.T) {
	claim := model.Claim{Text: "it rained for forty days and forty nights over the valley floor."}

	queries := searchQueries(claim)

	if len(queries) != 1 || !strings.HasPrefix(claim.Text, queries[0]) {
		t.Errorf("expected a single text-prefix fallback query, got %v", queries)
	}
}

func TestVerifier_EvidenceTruncationKeepsRunesIntact(t *testing.T) {
	// A long passage full of multi-byte runes must not be cut mid-rune
	// when stored on the record.
	source := &stubSource{passages: map[string]*Passage{
		"Tōkyō": {
			Text:  strings.Repeat("Tōkyō is the capital of Japan. ", 40),
			Label: "Tōkyō",
		},
	}}
	verifier := NewVerifier(source, NewLexicalScorer(), 0.45, 2)

	records, err := verifier.Verify(context.Background(), []model.Claim{{
		Text:    "Tōkyō is the capital of Japan.",
		Subject: "Tōkyō",
	}})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(records[0].EvidenceText) > maxEvidenceChars {
		t.Errorf("evidence not truncated: %d bytes", len(records[0].EvidenceText))
	}
	if !utf8.ValidString(records[0].EvidenceText) {
		t.Error("evidence contains a split rune")
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 80, "short"},
		{"abcdef", 4, "abcd"},
		{"ééé", 3, "é"},
		{"日本語", 4, "日"},
	}
	for _, tc := range cases {
		got := truncate(tc.in, tc.n)
		if got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
		}
	}
}
