// Package highlight marks unsupported claims inside the original text.
package highlight

import (
	"sort"
	"strings"

	"github.com/chumarjamil/hallucination-guard/internal/model"
)

// Markers wrapped around flagged spans. Terminal-agnostic so the output can
// pass through pipes and JSON untouched.
const (
	FlagOpen  = "⚠["
	FlagClose = "]⚠"
)

// Plain returns text with every unsupported claim's span wrapped in markers.
// Spans are applied right to left so earlier offsets stay valid.
func Plain(text string, records []model.VerificationRecord) string {
	spans := flaggedSpans(text, records)
	if len(spans) == 0 {
		return text
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i][0] > spans[j][0]
	})

	var b strings.Builder
	result := text
	for _, span := range spans {
		b.Reset()
		b.WriteString(result[:span[0]])
		b.WriteString(FlagOpen)
		b.WriteString(result[span[0]:span[1]])
		b.WriteString(FlagClose)
		b.WriteString(result[span[1]:])
		result = b.String()
	}
	return result
}

// flaggedSpans collects valid spans of unsupported claims
func flaggedSpans(text string, records []model.VerificationRecord) [][2]int {
	var spans [][2]int
	for _, rec := range records {
		if rec.Supported || !rec.Claim.HasSpan() {
			continue
		}
		span := rec.Claim.Span
		if span[0] < 0 || span[1] > len(text) {
			continue
		}
		spans = append(spans, span)
	}
	return spans
}
