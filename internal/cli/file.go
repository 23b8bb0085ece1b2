package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chumarjamil/hallucination-guard/internal/extract"
	"github.com/chumarjamil/hallucination-guard/internal/guard"
)

// fileCmd represents the file command
var fileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Check the contents of a text or HTML file",
	Long: `File reads a document from disk and runs hallucination detection on it.

Plain text files are analyzed as-is. HTML files (.html, .htm) are first
reduced to their visible text, dropping scripts, styles, and markup.

Example:
  hallucination-guard file answer.txt
  hallucination-guard file generated-page.html --json`,
	Args: cobra.ExactArgs(1),
	RunE: runFile,
}

func init() {
	rootCmd.AddCommand(fileCmd)
	registerDetectionFlags(fileCmd)
}

func runFile(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	text := string(data)
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".html" || ext == ".htm" {
		text, err = extract.VisibleText(text)
		if err != nil {
			return fmt.Errorf("extract visible text: %w", err)
		}
	}

	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("file %s contains no text to analyze", path)
	}

	cfg, err := detectionConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s (%d bytes)\n\n", path, len(data))
	}

	detector := guard.NewDetector(cfg)
	result, err := detector.Detect(ctx, text)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	return renderResult(os.Stdout, result, outputJSON)
}
