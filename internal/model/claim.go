package model

// Claim represents a factual assertion extracted from the input text
type Claim struct {
	Text      string `json:"text"`                // The claim text itself
	Span      [2]int `json:"span,omitempty"`      // [start, end) byte offsets in the source text
	Subject   string `json:"subject,omitempty"`   // Best-guess subject phrase
	Heuristic string `json:"heuristic,omitempty"` // Which extraction rule matched (e.g., "keyword:founded")
}

// HasSpan reports whether the claim carries a usable source location
func (c Claim) HasSpan() bool {
	return c.Span[1] > c.Span[0]
}
