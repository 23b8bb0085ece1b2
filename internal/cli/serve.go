package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chumarjamil/hallucination-guard/internal/api"
	"github.com/chumarjamil/hallucination-guard/internal/guard"
)

var (
	serveHost      string
	servePort      int
	serveAPIKey    string
	serveRateLimit int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the detection REST API server",
	Long: `Serve starts an HTTP server exposing the detection pipeline:

  GET  /health        readiness and version
  GET  /metrics       request and detection counters
  POST /detect        analyze a single text
  POST /detect/batch  analyze multiple texts in parallel

When an API key is configured, /detect and /detect/batch require the
X-API-Key header. Requests are rate limited per client IP.

Example:
  hallucination-guard serve
  hallucination-guard serve --port 9000 --api-key secret --rate-limit 120`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "0.0.0.0", "interface to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 8000, "port to listen on")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "require this X-API-Key header on detection endpoints")
	serveCmd.Flags().IntVar(&serveRateLimit, "rate-limit", 60, "max requests per minute per client IP (0 disables)")
	serveCmd.Flags().Float64Var(&supportThreshold, "support-threshold", 0.45, "min similarity for a claim to count as supported")
	serveCmd.Flags().Float64Var(&confidenceThreshold, "confidence-threshold", 0.5, "min risk for the hallucinated verdict")
	serveCmd.Flags().StringVar(&wikiLanguage, "language", "en", "Wikipedia language edition")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable evidence cache (force fresh lookups)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	cfg.Detection.SupportThreshold = supportThreshold
	cfg.Detection.ConfidenceThreshold = confidenceThreshold
	cfg.Wiki.Language = wikiLanguage
	cfg.Cache.Enabled = !noCache
	cfg.Server.Host = serveHost
	cfg.Server.Port = servePort
	cfg.Server.RateLimit = serveRateLimit
	if serveAPIKey != "" {
		cfg.Server.APIKey = serveAPIKey
	}
	if cfg.Server.APIKey == "" {
		cfg.Server.APIKey = os.Getenv("HALLUCINATION_GUARD_API_KEY")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	detector := guard.NewDetector(cfg)
	server := api.NewServer(detector, cfg.Server, cfg.Concurrency.BatchWorkers, Version)

	fmt.Fprintf(os.Stderr, "Hallucination Guard API v%s\n", Version)
	fmt.Fprintf(os.Stderr, "Listening on %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	if cfg.Server.APIKey != "" {
		fmt.Fprintf(os.Stderr, "API key authentication enabled\n")
	}

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
