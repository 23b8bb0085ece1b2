package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/chumarjamil/hallucination-guard/internal/cache"
	"github.com/chumarjamil/hallucination-guard/internal/model"
	"github.com/chumarjamil/hallucination-guard/internal/util"
	"github.com/chumarjamil/hallucination-guard/internal/worker"
)

// Passage is a retrieved evidence snippet
type Passage struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// EvidenceSource retrieves a reference passage for a query. A nil passage
// with a nil error means no evidence exists for the query.
type EvidenceSource interface {
	Search(ctx context.Context, query string) (*Passage, error)
}

// WikipediaSource fetches page summaries from the Wikipedia REST API
type WikipediaSource struct {
	httpClient *http.Client
	limiter    *worker.Limiter
	robots     *util.RobotsChecker
	cache      cache.Cache
	language   string
	userAgent  string
	maxChars   int
	maxBytes   int64
}

// NewWikipediaSource creates a Wikipedia evidence source. The cache may be
// nil to disable caching.
func NewWikipediaSource(cfg model.WikiConfig, proxy model.ProxyConfig, evidenceCache cache.Cache) *WikipediaSource {
	return &WikipediaSource{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(proxy.HTTP, proxy.HTTPS, proxy.No),
			},
		},
		limiter:   worker.NewLimiter(cfg.RatePerSec, cfg.Burst),
		robots:    util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		cache:     evidenceCache,
		language:  cfg.Language,
		userAgent: cfg.UserAgent,
		maxChars:  cfg.MaxChars,
		maxBytes:  cfg.MaxBodyBytes,
	}
}

// wikiSummary is the subset of the REST summary response we consume
type wikiSummary struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	Type    string `json:"type"`
}

// Search returns the summary passage for the page best matching query, or
// nil when no page exists
func (w *WikipediaSource) Search(ctx context.Context, query string) (*Passage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	key := cache.Key(w.language + ":" + query)
	if w.cache != nil {
		if data, found := w.cache.Get(key); found {
			var p Passage
			if err := json.Unmarshal(data, &p); err == nil {
				if p.Text == "" {
					return nil, nil // cached miss
				}
				return &p, nil
			}
		}
	}

	endpoint := fmt.Sprintf("https://%s.wikipedia.org/api/rest_v1/page/summary/%s",
		w.language, url.PathEscape(strings.ReplaceAll(query, " ", "_")))

	allowed, crawlDelay, err := w.robots.CanFetch(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return nil, nil
	}
	if err := w.limiter.WaitWithDelay(ctx, endpoint, crawlDelay); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", w.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch summary: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		w.store(key, Passage{}) // remember the miss
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, w.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var summary wikiSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}

	// Disambiguation pages describe many subjects at once and make
	// unreliable evidence.
	if summary.Extract == "" || summary.Type == "disambiguation" {
		w.store(key, Passage{})
		return nil, nil
	}

	extract := summary.Extract
	if w.maxChars > 0 && len(extract) > w.maxChars {
		extract = truncate(extract, w.maxChars)
	}

	passage := Passage{
		Text:  extract,
		Label: summary.Title,
	}
	w.store(key, passage)
	return &passage, nil
}

func (w *WikipediaSource) store(key string, p Passage) {
	if w.cache == nil {
		return
	}
	if data, err := json.Marshal(p); err == nil {
		_ = w.cache.Set(key, data, 0)
	}
}
