// Package api exposes the detection pipeline over HTTP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/chumarjamil/hallucination-guard/internal/model"
	"github.com/chumarjamil/hallucination-guard/internal/worker"
)

// Server serves the detection API
type Server struct {
	detector worker.TextDetector
	cfg      model.ServerConfig
	version  string
	batch    *worker.BatchProcessor

	started time.Time
	metrics *metrics
	clients *clientLimiters
}

// NewServer creates an API server around a detector
func NewServer(detector worker.TextDetector, cfg model.ServerConfig, batchWorkers int, version string) *Server {
	return &Server{
		detector: detector,
		cfg:      cfg,
		version:  version,
		batch:    worker.NewBatchProcessor(detector, batchWorkers),
		started:  time.Now(),
		metrics:  &metrics{},
		clients:  newClientLimiters(cfg.RateLimit),
	}
}

// Router builds the chi routing tree
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(s.countRequests)

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAPIKey)
		r.Use(s.rateLimit)
		r.Post("/detect", s.handleDetect)
		r.Post("/detect/batch", s.handleDetectBatch)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("API server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Ready   bool   `json:"ready"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: s.version,
		Ready:   true,
	})
}

type metricsResponse struct {
	TotalRequests              int64   `json:"total_requests"`
	TotalDetections            int64   `json:"total_detections"`
	TotalBatchDetections       int64   `json:"total_batch_detections"`
	AvgLatencyMS               float64 `json:"avg_latency_ms"`
	TotalClaimsAnalysed        int64   `json:"total_claims_analysed"`
	TotalHallucinationsFlagged int64   `json:"total_hallucinations_detected"`
	UptimeSeconds              float64 `json:"uptime_seconds"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	snap := s.metrics.snapshot()
	snap.UptimeSeconds = time.Since(s.started).Seconds()
	writeJSON(w, http.StatusOK, snap)
}

type detectRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text must not be empty")
		return
	}

	start := time.Now()
	result, err := s.detector.Detect(r.Context(), req.Text)
	if err != nil {
		slog.Error("detection failed", "error", err)
		writeError(w, http.StatusInternalServerError, "detection failed")
		return
	}
	s.metrics.recordDetection(time.Since(start), result)

	writeJSON(w, http.StatusOK, result)
}

type batchRequest struct {
	Texts []string `json:"texts"`
}

type batchResponse struct {
	Results          []*model.DetectionResult `json:"results"`
	Total            int                      `json:"total"`
	ProcessingTimeMS float64                  `json:"processing_time_ms"`
}

func (s *Server) handleDetectBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "texts must not be empty")
		return
	}

	start := time.Now()
	outcomes := s.batch.ProcessTexts(r.Context(), req.Texts)
	elapsed := time.Since(start)

	results := make([]*model.DetectionResult, 0, len(outcomes))
	for _, out := range outcomes {
		if out.Err != nil {
			slog.Warn("batch item failed", "index", out.Index, "error", out.Err)
			continue
		}
		s.metrics.recordDetection(elapsed/time.Duration(len(outcomes)), out.Result)
		results = append(results, out.Result)
	}
	s.metrics.recordBatch()

	writeJSON(w, http.StatusOK, batchResponse{
		Results:          results,
		Total:            len(results),
		ProcessingTimeMS: float64(elapsed.Milliseconds()),
	})
}

// --- middleware ---

func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.APIKey != "" && r.Header.Get("X-API-Key") != s.cfg.APIKey {
			writeError(w, http.StatusUnauthorized, "invalid or missing API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.clients != nil && !s.clients.allow(clientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	})
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.metrics.recordRequest()
		next.ServeHTTP(w, r)
	})
}

// --- per-client rate limiting ---

type clientLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	perMin   int
}

// newClientLimiters returns nil when rate limiting is disabled
func newClientLimiters(requestsPerMinute int) *clientLimiters {
	if requestsPerMinute <= 0 {
		return nil
	}
	return &clientLimiters{
		limiters: make(map[string]*rate.Limiter),
		perMin:   requestsPerMinute,
	}
}

func (c *clientLimiters) allow(ip string) bool {
	c.mu.Lock()
	lim, ok := c.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(float64(c.perMin)/60.0), c.perMin)
		c.limiters[ip] = lim
	}
	c.mu.Unlock()
	return lim.Allow()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// --- metrics ---

type metrics struct {
	mu                  sync.Mutex
	requests            int64
	detections          int64
	batches             int64
	claimsAnalysed      int64
	hallucinationsFound int64
	latencySum          time.Duration
}

func (m *metrics) recordRequest() {
	m.mu.Lock()
	m.requests++
	m.mu.Unlock()
}

func (m *metrics) recordDetection(latency time.Duration, result *model.DetectionResult) {
	m.mu.Lock()
	m.detections++
	m.latencySum += latency
	m.claimsAnalysed += int64(result.TotalClaims)
	if result.Hallucinated {
		m.hallucinationsFound++
	}
	m.mu.Unlock()
}

func (m *metrics) recordBatch() {
	m.mu.Lock()
	m.batches++
	m.mu.Unlock()
}

func (m *metrics) snapshot() metricsResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	var avgMS float64
	if m.detections > 0 {
		avgMS = float64(m.latencySum.Milliseconds()) / float64(m.detections)
	}
	return metricsResponse{
		TotalRequests:              m.requests,
		TotalDetections:            m.detections,
		TotalBatchDetections:       m.batches,
		AvgLatencyMS:               avgMS,
		TotalClaimsAnalysed:        m.claimsAnalysed,
		TotalHallucinationsFlagged: m.hallucinationsFound,
	}
}

// --- JSON helpers ---

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
