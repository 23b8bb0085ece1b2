package extract

import (
	"strings"
	"testing"
)

func TestClaimExtractor_BasicExtraction(t *testing.T) {
	extractor := NewClaimExtractor()

	text := "The Eiffel Tower was built in 1889. " +
		"Laksa originated in Malaysia and spread to coastal regions. " +
		"Hmm, interesting thought indeed, maybe, perhaps, possibly so then."

	claims := extractor.Extract(text)

	if len(claims) < 2 {
		t.Fatalf("expected at least 2 claims, got %d", len(claims))
	}

	foundBuilt := false
	for _, claim := range claims {
		if strings.Contains(claim.Text, "Eiffel Tower") {
			foundBuilt = true
			if claim.Subject != "Eiffel Tower" {
				t.Errorf("expected subject 'Eiffel Tower', got %q", claim.Subject)
			}
			if !strings.HasPrefix(claim.Heuristic, "keyword:") {
				t.Errorf("expected a keyword heuristic, got %q", claim.Heuristic)
			}
		}
	}
	if !foundBuilt {
		t.Error("expected a claim about the Eiffel Tower")
	}
}

func TestClaimExtractor_SpansMatchSource(t *testing.T) {
	extractor := NewClaimExtractor()

	text := "Some filler words here first, yes.  Mars is the largest planet in our system."

	claims := extractor.Extract(text)

	for _, claim := range claims {
		if !claim.HasSpan() {
			t.Errorf("claim %q has no span", claim.Text)
			continue
		}
		if got := text[claim.Span[0]:claim.Span[1]]; got != claim.Text {
			t.Errorf("span does not slice back to claim text: %q vs %q", got, claim.Text)
		}
	}
}

func TestClaimExtractor_EntityHeuristic(t *testing.T) {
	extractor := NewClaimExtractor()

	// No factual-indicator verb, but a named entity appears mid-sentence.
	text := "According to rumors surrounding Atlantis, nobody ever sailed home."

	claims := extractor.Extract(text)

	found := false
	for _, claim := range claims {
		if claim.Heuristic == "entity" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an entity-heuristic claim, got %+v", claims)
	}
}

func TestClaimExtractor_Dedupe(t *testing.T) {
	extractor := NewClaimExtractor()

	text := "Rome was founded in 753 BC. Rome was founded in 753 BC."

	claims := extractor.Extract(text)

	if len(claims) != 1 {
		t.Errorf("expected duplicate sentences to collapse to 1 claim, got %d", len(claims))
	}
}

func TestClaimExtractor_EmptyAndShortInput(t *testing.T) {
	extractor := NewClaimExtractor()

	if claims := extractor.Extract(""); len(claims) != 0 {
		t.Errorf("expected no claims for empty input, got %d", len(claims))
	}
	if claims := extractor.Extract("Hi."); len(claims) != 0 {
		t.Errorf("expected no claims for a tiny fragment, got %d", len(claims))
	}
}
