// Package guard wires claim extraction, verification, scoring, and
// explanation into the full detection pipeline.
package guard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chumarjamil/hallucination-guard/internal/cache"
	"github.com/chumarjamil/hallucination-guard/internal/explain"
	"github.com/chumarjamil/hallucination-guard/internal/extract"
	"github.com/chumarjamil/hallucination-guard/internal/highlight"
	"github.com/chumarjamil/hallucination-guard/internal/llm"
	"github.com/chumarjamil/hallucination-guard/internal/model"
	"github.com/chumarjamil/hallucination-guard/internal/score"
	"github.com/chumarjamil/hallucination-guard/internal/verify"
)

// ClaimVerifier checks extracted claims against a reference corpus
type ClaimVerifier interface {
	Verify(ctx context.Context, claims []model.Claim) ([]model.VerificationRecord, error)
}

// Detector runs the complete detection pipeline over a text
type Detector struct {
	extractor  *extract.ClaimExtractor
	verifier   ClaimVerifier
	scorer     *score.Scorer
	explainer  *explain.Explainer
	summarizer *llm.Summarizer // nil when LLM summaries are disabled
	cfg        *model.Config
}

// NewDetector creates a detector with the default Wikipedia-backed verifier
func NewDetector(cfg *model.Config) *Detector {
	var evidenceCache cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			evidenceCache = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			evidenceCache = cache.NewMemoryCache(cfg.Cache.TTL, 10*cfg.Cache.TTL)
		}
	}

	source := verify.NewWikipediaSource(cfg.Wiki, cfg.Proxy, evidenceCache)
	verifier := verify.NewVerifier(source, verify.NewLexicalScorer(),
		cfg.Detection.SupportThreshold, cfg.Concurrency.VerifyWorkers)

	return New(cfg, verifier)
}

// New creates a detector around an explicit verifier
func New(cfg *model.Config, verifier ClaimVerifier) *Detector {
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM, cfg.Proxy))
		if err != nil {
			slog.Warn("LLM provider unavailable, summaries disabled", "error", err)
		} else {
			summarizer = s
		}
	}

	return &Detector{
		extractor:  extract.NewClaimExtractor(),
		verifier:   verifier,
		scorer:     score.NewScorer(),
		explainer:  explain.NewExplainer(),
		summarizer: summarizer,
		cfg:        cfg,
	}
}

// Detect runs the full pipeline on text
func (d *Detector) Detect(ctx context.Context, text string) (*model.DetectionResult, error) {
	// 1. Extract claims
	claims := d.extractor.Extract(text)
	slog.Debug("extracted claims", "count", len(claims))

	// 2. Verify against the reference corpus
	records, err := d.verifier.Verify(ctx, claims)
	if err != nil {
		return nil, fmt.Errorf("verify claims: %w", err)
	}

	// 3. Score
	report := d.scorer.Score(records)

	// 4. Explain
	explanations := d.explainer.Explain(records, d.cfg.Detection.SupportThreshold)

	// 5. Highlight unsupported spans
	highlighted := highlight.Plain(text, records)

	// 6. Collect flagged claims
	var flagged []model.FlaggedClaim
	for _, rec := range records {
		if rec.Supported {
			continue
		}
		evidence := rec.EvidenceText
		if evidence == "" {
			evidence = "No supporting evidence found."
		}
		flagged = append(flagged, model.FlaggedClaim{
			Claim:      rec.Claim.Text,
			Confidence: rec.Similarity,
			Evidence:   evidence,
			Source:     rec.SourceLabel,
		})
	}

	// 7. Assemble the result
	hallucinated := score.Hallucinated(report, d.cfg.Detection.ConfidenceThreshold)
	result := &model.DetectionResult{
		Hallucinated:      hallucinated,
		Risk:              report.Risk,
		Confidence:        report.Confidence(),
		TotalClaims:       report.TotalClaims,
		SupportedClaims:   report.SupportedClaims,
		UnsupportedClaims: report.UnsupportedClaims,
		AverageSimilarity: report.AverageSimilarity,
		FlaggedClaims:     flagged,
		Explanations:      explanations,
		HighlightedText:   highlighted,
		Summary:           summaryText(report),
	}

	// 8. Optional LLM restatement, after scoring so it can never affect it
	if d.summarizer.IsEnabled() {
		llmSummary, err := d.summarizer.GenerateSummary(ctx, *result)
		if err != nil {
			slog.Warn("LLM summary generation failed", "error", err)
		} else {
			result.LLM = llmSummary
		}
	}

	slog.Info("detection complete",
		"risk", report.Risk,
		"claims", report.TotalClaims,
		"unsupported", report.UnsupportedClaims,
		"hallucinated", hallucinated)

	return result, nil
}

func summaryText(report model.RiskReport) string {
	if report.UnsupportedClaims > 0 {
		return fmt.Sprintf("Detected %d unsupported claim(s) out of %d. Hallucination risk: %.0f%%.",
			report.UnsupportedClaims, report.TotalClaims, report.Risk*100)
	}
	return fmt.Sprintf("All %d claim(s) appear factually supported. Confidence: %.0f%%.",
		report.TotalClaims, report.Confidence()*100)
}
