package score

import (
	"sort"

	"github.com/chumarjamil/hallucination-guard/internal/model"
)

// Signal weights. They sum to 1.0 so each term's natural [0,1] range keeps
// the combined risk bounded; the final clamp guards against future weight
// changes and floating-point drift.
const (
	WeightUnsupportedRatio = 0.50
	WeightInvSimilarity    = 0.35
	WeightSeverityPenalty  = 0.15
)

// Scorer combines per-claim verification outcomes into a RiskReport.
// It holds no state and is safe for concurrent use.
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the aggregate hallucination risk for a set of verification
// records. It is pure and total: any input, including an empty one, yields a
// valid report, and the result does not depend on record order.
func (s *Scorer) Score(records []model.VerificationRecord) model.RiskReport {
	total := len(records)
	if total == 0 {
		// No claims means nothing to flag as hallucinated.
		return model.RiskReport{}
	}

	supported := 0
	similarities := make([]float64, 0, total)
	for _, r := range records {
		if r.Supported {
			supported++
		}
		// Out-of-range similarity is an upstream contract violation;
		// clamp rather than crash.
		similarities = append(similarities, clamp01(r.Similarity))
	}
	unsupported := total - supported

	// Float addition is not associative, so sum in a canonical order to
	// keep the report bit-identical under record permutation.
	sort.Float64s(similarities)
	similaritySum := 0.0
	for _, sim := range similarities {
		similaritySum += sim
	}

	avgSimilarity := similaritySum / float64(total)
	unsupportedRatio := float64(unsupported) / float64(total)

	risk := WeightUnsupportedRatio*unsupportedRatio +
		WeightInvSimilarity*(1.0-avgSimilarity) +
		WeightSeverityPenalty*severityPenalty(unsupportedRatio)

	return model.RiskReport{
		TotalClaims:       total,
		SupportedClaims:   supported,
		UnsupportedClaims: unsupported,
		AverageSimilarity: avgSimilarity,
		UnsupportedRatio:  unsupportedRatio,
		Risk:              clamp01(risk),
	}
}

// severityPenalty boosts the risk when a majority of claims fail. It grows
// quadratically from 0 at a 50% failure ratio to 1 at 100%, so a single
// unsupported claim among many supported ones is not amplified.
func severityPenalty(unsupportedRatio float64) float64 {
	if unsupportedRatio <= 0.5 {
		return 0.0
	}
	excess := (unsupportedRatio - 0.5) / 0.5
	return excess * excess
}

// Hallucinated reports whether the aggregate risk crosses the caller's
// confidence threshold. The decision lives outside RiskReport so the same
// report can be judged against different thresholds without rescoring.
func Hallucinated(report model.RiskReport, confidenceThreshold float64) bool {
	return report.Risk >= confidenceThreshold
}

func clamp01(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
