package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/chumarjamil/hallucination-guard/internal/model"
)

const (
	minSentenceLen = 10
	maxSentenceLen = 500
)

// factualIndicators are predicates that mark a sentence as making a
// checkable factual assertion.
var factualIndicators = map[string]bool{
	"is": true, "was": true, "are": true, "were": true, "has": true, "had": true,
	"founded": true, "invented": true, "discovered": true, "created": true, "published": true,
	"born": true, "died": true, "located": true, "contains": true, "produces": true, "consists": true,
	"became": true, "established": true, "developed": true, "introduced": true, "launched": true,
	"released": true, "built": true, "designed": true, "won": true, "received": true, "achieved": true,
	"holds": true, "measures": true, "weighs": true, "costs": true, "earned": true, "scored": true,
	"ranked": true, "reached": true, "surpassed": true, "exceeded": true, "composed": true,
	"flows": true, "empties": true, "borders": true, "spans": true, "covers": true,
}

// determiners excluded from entity and subject detection
var determiners = map[string]bool{
	"the": true, "this": true, "that": true, "these": true, "those": true, "there": true,
	"a": true, "an": true, "it": true, "its": true,
}

// ClaimExtractor extracts factual claims from plain text
type ClaimExtractor struct{}

// NewClaimExtractor creates a new claim extractor
func NewClaimExtractor() *ClaimExtractor {
	return &ClaimExtractor{}
}

// Extract returns the factual claims found in text. A sentence becomes a
// claim when it contains a factual-indicator predicate or names an entity.
// Byte offsets into the original text are preserved for highlighting.
func (e *ClaimExtractor) Extract(text string) []model.Claim {
	var claims []model.Claim

	for _, sent := range splitSentences(text) {
		heuristic, ok := e.classify(sent.text)
		if !ok {
			continue
		}
		claims = append(claims, model.Claim{
			Text:      sent.text,
			Span:      [2]int{sent.start, sent.end},
			Subject:   guessSubject(sent.text),
			Heuristic: heuristic,
		})
	}

	return dedupeClaims(claims)
}

// classify decides whether a sentence is a claim and names the rule that
// matched
func (e *ClaimExtractor) classify(sentence string) (string, bool) {
	for _, token := range strings.Fields(strings.ToLower(sentence)) {
		token = strings.Trim(token, ".,;:!?()\"'")
		if factualIndicators[token] {
			return "keyword:" + token, true
		}
	}
	if hasNamedEntity(sentence) {
		return "entity", true
	}
	return "", false
}

// sentence is a trimmed sentence with its location in the source text
type sentence struct {
	text  string
	start int
	end   int
}

// splitSentences splits text into sentences on terminators followed by
// whitespace, keeping byte offsets. Very short and very long fragments are
// dropped.
func splitSentences(text string) []sentence {
	var sentences []sentence

	start := 0
	for i, r := range text {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		next := i + utf8.RuneLen(r)
		if next < len(text) && !isSpaceByte(text[next]) {
			continue // likely an abbreviation or a decimal point
		}
		if s, ok := makeSentence(text, start, next); ok {
			sentences = append(sentences, s)
		}
		start = next
	}

	if s, ok := makeSentence(text, start, len(text)); ok {
		sentences = append(sentences, s)
	}

	return sentences
}

func makeSentence(text string, start, end int) (sentence, bool) {
	for start < end && isSpaceByte(text[start]) {
		start++
	}
	for end > start && isSpaceByte(text[end-1]) {
		end--
	}
	if end-start < minSentenceLen || end-start > maxSentenceLen {
		return sentence{}, false
	}
	return sentence{text: text[start:end], start: start, end: end}, true
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// hasNamedEntity reports whether the sentence mentions a capitalized term
// beyond its first token
func hasNamedEntity(sentence string) bool {
	tokens := strings.Fields(sentence)
	for i, token := range tokens {
		if i == 0 {
			continue // sentence-initial capitalization is not a signal
		}
		token = strings.Trim(token, ".,;:!?()\"'")
		if len(token) <= 2 || determiners[strings.ToLower(token)] {
			continue
		}
		r, _ := utf8.DecodeRuneInString(token)
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// guessSubject returns the leading run of capitalized tokens, the usual
// position of the subject in declarative English sentences.
func guessSubject(sentence string) string {
	var subject []string
	for i, token := range strings.Fields(sentence) {
		trimmed := strings.Trim(token, ".,;:!?()\"'")
		if trimmed == "" {
			break
		}
		r, _ := utf8.DecodeRuneInString(trimmed)
		if !unicode.IsUpper(r) {
			break
		}
		if i == 0 && determiners[strings.ToLower(trimmed)] {
			continue // skip a leading "The"
		}
		subject = append(subject, trimmed)
	}
	return strings.Join(subject, " ")
}

// dedupeClaims removes duplicate claims, keeping the first occurrence
func dedupeClaims(claims []model.Claim) []model.Claim {
	seen := make(map[string]bool)
	var unique []model.Claim

	for _, claim := range claims {
		key := strings.ToLower(strings.TrimSpace(claim.Text))
		if !seen[key] {
			seen[key] = true
			unique = append(unique, claim)
		}
	}

	return unique
}
