package extract

import (
	"strings"
	"testing"
)

func TestVisibleText_SkipsScriptsAndStyles(t *testing.T) {
	page := `
	<html>
	<head><style>body { color: red; }</style></head>
	<body>
		<script>var tracking = true;</script>
		<p>The Eiffel Tower was completed in 1889.</p>
	</body>
	</html>`

	text, err := VisibleText(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(text, "Eiffel Tower") {
		t.Errorf("expected paragraph text, got %q", text)
	}
	if strings.Contains(text, "tracking") || strings.Contains(text, "color") {
		t.Errorf("script/style content leaked into %q", text)
	}
}

func TestVisibleText_FeedsExtractor(t *testing.T) {
	page := `<html><body><p>Rome was founded in 753 BC according to legend.</p></body></html>`

	text, err := VisibleText(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := NewClaimExtractor().Extract(text)
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim from page text, got %d", len(claims))
	}
}
