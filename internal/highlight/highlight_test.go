package highlight

import (
	"strings"
	"testing"

	"github.com/chumarjamil/hallucination-guard/internal/model"
)

func unsupportedAt(text, claim string) model.VerificationRecord {
	start := strings.Index(text, claim)
	return model.NewVerificationRecord(
		model.Claim{Text: claim, Span: [2]int{start, start + len(claim)}},
		0.1, "contradicting evidence", "Wikipedia: Test", 0.45)
}

func TestPlain_WrapsUnsupportedClaim(t *testing.T) {
	text := "The sky is blue. The moon is made of cheese."
	rec := unsupportedAt(text, "The moon is made of cheese.")

	got := Plain(text, []model.VerificationRecord{rec})

	want := "The sky is blue. ⚠[The moon is made of cheese.]⚠"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPlain_MultipleSpansKeepOffsets(t *testing.T) {
	text := "First bad claim here. A fine middle sentence. Second bad claim there."
	records := []model.VerificationRecord{
		unsupportedAt(text, "First bad claim here."),
		unsupportedAt(text, "Second bad claim there."),
	}

	got := Plain(text, records)

	if strings.Count(got, FlagOpen) != 2 || strings.Count(got, FlagClose) != 2 {
		t.Fatalf("expected both claims wrapped, got %q", got)
	}
	if !strings.Contains(got, "⚠[First bad claim here.]⚠") {
		t.Errorf("first span mangled: %q", got)
	}
	if !strings.Contains(got, "⚠[Second bad claim there.]⚠") {
		t.Errorf("second span mangled: %q", got)
	}
}

func TestPlain_SupportedClaimsUntouched(t *testing.T) {
	text := "Everything here is true."
	rec := model.NewVerificationRecord(
		model.Claim{Text: text, Span: [2]int{0, len(text)}},
		0.9, "evidence", "Wikipedia: Truth", 0.45)

	if got := Plain(text, []model.VerificationRecord{rec}); got != text {
		t.Errorf("supported claim should not be marked, got %q", got)
	}
}

func TestPlain_IgnoresMissingAndInvalidSpans(t *testing.T) {
	text := "Short text."
	records := []model.VerificationRecord{
		model.NewUnverifiedRecord(model.Claim{Text: "spanless claim"}),
		model.NewUnverifiedRecord(model.Claim{Text: "bad span", Span: [2]int{5, 999}}),
	}

	if got := Plain(text, records); got != text {
		t.Errorf("invalid spans should leave text untouched, got %q", got)
	}
}

func TestPlain_NoRecords(t *testing.T) {
	if got := Plain("unchanged", nil); got != "unchanged" {
		t.Errorf("got %q", got)
	}
}
