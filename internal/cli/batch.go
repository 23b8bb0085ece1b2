package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/chumarjamil/hallucination-guard/internal/guard"
	"github.com/chumarjamil/hallucination-guard/internal/worker"
)

var (
	batchConcurrency int
	batchOutputDir   string
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Check multiple texts from a file in parallel",
	Long: `Batch processes multiple texts concurrently:
- Read texts from a JSON file (an array of strings or of {"text": ...} objects)
- Run detection in parallel with a configurable worker count
- Write one JSON result per text into the output directory

Example:
  hallucination-guard batch answers.json
  hallucination-guard batch answers.json --concurrency 10 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "./hguard-reports", "output directory for results")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&supportThreshold, "support-threshold", 0.45, "min similarity for a claim to count as supported")
	batchCmd.Flags().Float64Var(&confidenceThreshold, "confidence-threshold", 0.5, "min risk for the hallucinated verdict")
	batchCmd.Flags().StringVar(&wikiLanguage, "language", "en", "Wikipedia language edition")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable evidence cache (force fresh lookups)")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Hallucination Guard Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", batchConcurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", batchOutputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	cfg, err := detectionConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.BatchWorkers = batchConcurrency

	if llmEnabled {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", llmProvider, llmModel)
	}

	// Create output directory
	if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	detector := guard.NewDetector(cfg)
	processor := worker.NewBatchProcessor(detector, batchConcurrency)

	fmt.Fprintf(os.Stderr, "⚙️  Reading texts from file...\n")
	outcomes, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Processed %d texts\n", len(outcomes))
	fmt.Fprintf(os.Stderr, "\n")

	successCount := 0
	failureCount := 0

	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ text %d: %v\n", outcome.Index+1, outcome.Err)
			continue
		}

		successCount++

		outPath := filepath.Join(batchOutputDir, fmt.Sprintf("result-%03d.json", outcome.Index+1))
		if err := writeResultJSON(outPath, outcome); err != nil {
			fmt.Fprintf(os.Stderr, "✗ text %d: failed to write result: %v\n", outcome.Index+1, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ text %d (risk: %.2f, %s)\n",
			outcome.Index+1, outcome.Result.Risk, riskLabel(outcome.Result.Risk))
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d texts\n", len(outcomes))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", batchOutputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

func writeResultJSON(path string, outcome *worker.DetectOutcome) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close result file: %w", closeErr)
		}
	}()

	payload := struct {
		Text   string `json:"text"`
		Result any    `json:"result"`
	}{
		Text:   outcome.Text,
		Result: outcome.Result,
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
