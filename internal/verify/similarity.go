package verify

import (
	"math"
	"strings"
	"unicode"
)

// SimilarityScorer computes semantic closeness between a claim and an
// evidence passage in [0,1]
type SimilarityScorer interface {
	Score(claim, evidence string) float64
}

// stopwords carry no comparison signal
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"of": true, "in": true, "on": true, "at": true, "to": true, "for": true,
	"by": true, "with": true, "from": true, "as": true, "that": true,
	"this": true, "it": true, "its": true, "be": true, "been": true,
}

// LexicalScorer is a deterministic term-frequency cosine similarity scorer.
// It stands in for an embedding model behind the same interface: anything
// producing a [0,1] closeness score can replace it.
type LexicalScorer struct{}

// NewLexicalScorer creates a lexical similarity scorer
func NewLexicalScorer() *LexicalScorer {
	return &LexicalScorer{}
}

// Score returns the cosine similarity between the term-frequency vectors of
// the two texts
func (s *LexicalScorer) Score(claim, evidence string) float64 {
	a := termFrequencies(claim)
	b := termFrequencies(evidence)
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	dot := 0.0
	for term, fa := range a {
		if fb, ok := b[term]; ok {
			dot += fa * fb
		}
	}
	if dot == 0 {
		return 0.0
	}

	sim := dot / (norm(a) * norm(b))
	if sim < 0.0 {
		return 0.0
	}
	if sim > 1.0 {
		return 1.0
	}
	return sim
}

func termFrequencies(text string) map[string]float64 {
	freqs := make(map[string]float64)
	for _, token := range tokenize(text) {
		freqs[token]++
	}
	return freqs
}

func tokenize(text string) []string {
	var tokens []string
	for _, field := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len(field) < 2 || stopwords[field] {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

func norm(freqs map[string]float64) float64 {
	sum := 0.0
	for _, f := range freqs {
		sum += f * f
	}
	return math.Sqrt(sum)
}
