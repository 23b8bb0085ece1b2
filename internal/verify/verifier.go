package verify

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/chumarjamil/hallucination-guard/internal/model"
)

const maxEvidenceChars = 500

// Verifier checks claims against an evidence source and produces
// verification records
type Verifier struct {
	source     EvidenceSource
	similarity SimilarityScorer
	threshold  float64
	maxWorkers int
}

// NewVerifier creates a verifier. The support threshold is injected here and
// is the only place Supported gets derived.
func NewVerifier(source EvidenceSource, similarity SimilarityScorer, supportThreshold float64, maxWorkers int) *Verifier {
	if maxWorkers <= 0 {
		maxWorkers = 8
	}
	return &Verifier{
		source:     source,
		similarity: similarity,
		threshold:  supportThreshold,
		maxWorkers: maxWorkers,
	}
}

// Verify checks all claims concurrently and returns one record per claim,
// in claim order
func (v *Verifier) Verify(ctx context.Context, claims []model.Claim) ([]model.VerificationRecord, error) {
	if len(claims) == 0 {
		return []model.VerificationRecord{}, nil
	}

	records := make([]model.VerificationRecord, len(claims))
	semaphore := make(chan struct{}, v.maxWorkers)
	var wg sync.WaitGroup

	for i, claim := range claims {
		wg.Add(1)
		go func(idx int, c model.Claim) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				records[idx] = model.NewUnverifiedRecord(c)
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			records[idx] = v.verifySingle(ctx, c)
		}(i, claim)
	}

	wg.Wait()

	return records, ctx.Err()
}

// verifySingle finds the best evidence for one claim and builds its record
func (v *Verifier) verifySingle(ctx context.Context, claim model.Claim) model.VerificationRecord {
	bestScore := 0.0
	var bestPassage *Passage

	for _, query := range searchQueries(claim) {
		passage, err := v.source.Search(ctx, query)
		if err != nil {
			slog.Debug("evidence lookup failed", "query", query, "error", err)
			continue
		}
		if passage == nil {
			continue
		}

		sim := v.similarity.Score(claim.Text, passage.Text)
		if bestPassage == nil || sim > bestScore {
			bestScore = sim
			bestPassage = passage
		}
	}

	if bestPassage == nil {
		return model.NewUnverifiedRecord(claim)
	}

	evidence := truncate(bestPassage.Text, maxEvidenceChars)

	record := model.NewVerificationRecord(claim, bestScore, evidence, "Wikipedia: "+bestPassage.Label, v.threshold)
	slog.Debug("claim verified",
		"supported", record.Supported,
		"similarity", record.Similarity,
		"claim", truncate(claim.Text, 60))
	return record
}

// searchQueries generates evidence queries from a claim: its subject first,
// then capitalized terms, then a text-prefix fallback
func searchQueries(claim model.Claim) []string {
	var queries []string
	if claim.Subject != "" {
		queries = append(queries, claim.Subject)
	}

	for _, word := range strings.Fields(claim.Text) {
		word = strings.Trim(word, ".,;:!?()\"'")
		if len(word) <= 2 {
			continue
		}
		r, _ := utf8.DecodeRuneInString(word)
		if !unicode.IsUpper(r) {
			continue
		}
		switch strings.ToLower(word) {
		case "the", "this", "that", "these", "those", "there":
			continue
		}
		queries = append(queries, word)
	}

	if len(queries) == 0 {
		queries = append(queries, truncate(claim.Text, 80))
	}

	// Dedupe, preserving order
	seen := make(map[string]bool)
	var unique []string
	for _, q := range queries {
		if !seen[q] {
			seen[q] = true
			unique = append(unique, q)
		}
	}
	return unique
}

// truncate cuts s to at most n bytes without splitting a UTF-8 rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
