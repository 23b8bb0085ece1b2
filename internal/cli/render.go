package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chumarjamil/hallucination-guard/internal/model"
)

// riskLabel buckets a risk score into a coarse verdict
func riskLabel(risk float64) string {
	switch {
	case risk < 0.3:
		return "LOW"
	case risk < 0.6:
		return "MEDIUM"
	default:
		return "HIGH"
	}
}

// renderResult writes a detection result as text or JSON
func renderResult(w io.Writer, result *model.DetectionResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return nil
	}

	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "  Hallucination Guard Report\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Risk:        %.4f (%s)\n", result.Risk, riskLabel(result.Risk))
	fmt.Fprintf(w, "  Confidence:  %.4f\n", result.Confidence)
	fmt.Fprintf(w, "  Verdict:     %s\n", verdict(result.Hallucinated))
	fmt.Fprintf(w, "  Claims:      %d total, %d supported, %d unsupported\n",
		result.TotalClaims, result.SupportedClaims, result.UnsupportedClaims)
	fmt.Fprintf(w, "  Avg sim:     %.4f\n", result.AverageSimilarity)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  %s\n", result.Summary)
	fmt.Fprintf(w, "\n")

	if len(result.FlaggedClaims) > 0 {
		fmt.Fprintf(w, "  Flagged claims:\n")
		for i, fc := range result.FlaggedClaims {
			fmt.Fprintf(w, "    %d. %s\n", i+1, fc.Claim)
			fmt.Fprintf(w, "       similarity: %.2f", fc.Confidence)
			if fc.Source != "" {
				fmt.Fprintf(w, "  source: %s", fc.Source)
			}
			fmt.Fprintf(w, "\n")
		}
		fmt.Fprintf(w, "\n")
	}

	if len(result.Explanations) > 0 {
		fmt.Fprintf(w, "  Explanations:\n")
		for _, ex := range result.Explanations {
			marker := "✓"
			if ex.Hallucinated {
				marker = "✗"
			}
			fmt.Fprintf(w, "    %s [%s] %s\n", marker, ex.Severity, ex.Claim)
			fmt.Fprintf(w, "      %s\n", ex.Explanation)
		}
		fmt.Fprintf(w, "\n")
	}

	if result.HighlightedText != "" && result.UnsupportedClaims > 0 {
		fmt.Fprintf(w, "  Highlighted text:\n")
		fmt.Fprintf(w, "  %s\n", result.HighlightedText)
		fmt.Fprintf(w, "\n")
	}

	if result.LLM != nil && result.LLM.Enabled {
		fmt.Fprintf(w, "  Summary (%s/%s):\n", result.LLM.Provider, result.LLM.Model)
		fmt.Fprintf(w, "  %s\n", result.LLM.Text)
		fmt.Fprintf(w, "\n")
	}

	return nil
}

func verdict(hallucinated bool) string {
	if hallucinated {
		return "LIKELY HALLUCINATED"
	}
	return "APPEARS SUPPORTED"
}
