package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chumarjamil/hallucination-guard/internal/guard"
	"github.com/chumarjamil/hallucination-guard/internal/model"
)

var (
	supportThreshold    float64
	confidenceThreshold float64
	wikiLanguage        string
	checkTimeout        time.Duration
	noCache             bool
	outputJSON          bool
	llmEnabled          bool
	llmProvider         string
	llmModel            string
	httpProxy           string
	httpsProxy          string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <text>",
	Short: "Check a piece of text for hallucinated claims",
	Long: `Check analyzes a single text to:
- Extract factual claims using keyword and named-entity heuristics
- Verify each claim against Wikipedia evidence
- Score the overall hallucination risk
- Explain and highlight unsupported claims

Example:
  hallucination-guard check "The Eiffel Tower is located in Berlin."
  hallucination-guard check "..." --json
  hallucination-guard check "..." --support-threshold 0.6 --llm openai`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	registerDetectionFlags(checkCmd)
}

// registerDetectionFlags adds the flags shared by check, file, and url
func registerDetectionFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&supportThreshold, "support-threshold", 0.45, "min similarity for a claim to count as supported")
	cmd.Flags().Float64Var(&confidenceThreshold, "confidence-threshold", 0.5, "min risk for the hallucinated verdict")
	cmd.Flags().StringVar(&wikiLanguage, "language", "en", "Wikipedia language edition")
	cmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall detection timeout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable evidence cache (force fresh lookups)")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "emit the full result as JSON")
	cmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	cmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	cmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	cmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// detectionConfig builds configuration from defaults, config file, and flags
func detectionConfig() (*model.Config, error) {
	cfg := loadConfig()
	cfg.Detection.SupportThreshold = supportThreshold
	cfg.Detection.ConfidenceThreshold = confidenceThreshold
	cfg.Wiki.Language = wikiLanguage
	cfg.Cache.Enabled = !noCache
	cfg.Proxy.HTTP = httpProxy
	cfg.Proxy.HTTPS = httpsProxy

	// Configure LLM if enabled
	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		// Get API key from environment
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			baseURL := os.Getenv("OLLAMA_BASE_URL")
			if baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	} else {
		cfg.LLM.Provider = ""
	}

	return cfg, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	text := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg, err := detectionConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Support threshold:    %.2f\n", cfg.Detection.SupportThreshold)
		fmt.Fprintf(os.Stderr, "Confidence threshold: %.2f\n", cfg.Detection.ConfidenceThreshold)
		fmt.Fprintf(os.Stderr, "Cache:                %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	detector := guard.NewDetector(cfg)
	result, err := detector.Detect(ctx, text)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	return renderResult(os.Stdout, result, outputJSON)
}
