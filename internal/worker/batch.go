package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/chumarjamil/hallucination-guard/internal/model"
)

// TextDetector runs the full detection pipeline on one text
type TextDetector interface {
	Detect(ctx context.Context, text string) (*model.DetectionResult, error)
}

// DetectJob analyses a single text
type DetectJob struct {
	Index    int
	Text     string
	Detector TextDetector
}

// Execute runs the detection and wraps the outcome
func (j *DetectJob) Execute(ctx context.Context) Result {
	result, err := j.Detector.Detect(ctx, j.Text)
	return &DetectOutcome{
		Index:  j.Index,
		Text:   j.Text,
		Result: result,
		Err:    err,
	}
}

// DetectOutcome is the result of one batch detection
type DetectOutcome struct {
	Index  int
	Text   string
	Result *model.DetectionResult
	Err    error
}

// GetError returns the detection error, if any
func (o *DetectOutcome) GetError() error {
	return o.Err
}

// BatchProcessor analyses multiple texts concurrently
type BatchProcessor struct {
	detector    TextDetector
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(detector TextDetector, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		detector:    detector,
		concurrency: concurrency,
	}
}

// ProcessTexts runs detection over all texts and returns outcomes in input
// order. Cancelling ctx stops in-flight detections.
func (b *BatchProcessor) ProcessTexts(ctx context.Context, texts []string) []*DetectOutcome {
	if len(texts) == 0 {
		return []*DetectOutcome{}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	// Submit concurrently with the Wait drain below: the pool's channel
	// buffers are smaller than a typical batch.
	go func() {
		for i, text := range texts {
			pool.Submit(&DetectJob{
				Index:    i,
				Text:     text,
				Detector: b.detector,
			})
		}
		pool.Close()
	}()

	results := pool.Wait()

	outcomes := make([]*DetectOutcome, 0, len(results))
	for _, result := range results {
		outcomes = append(outcomes, result.(*DetectOutcome))
	}
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].Index < outcomes[j].Index
	})

	return outcomes
}

// ProcessFile reads texts from a JSON file and runs detection over them
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*DetectOutcome, error) {
	texts, err := ReadTextsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texts: %w", err)
	}
	return b.ProcessTexts(ctx, texts), nil
}

// ReadTextsFromFile loads texts from a JSON file holding an array of strings
// or of objects with a "text" key
func ReadTextsFromFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("file must contain a JSON array: %w", err)
	}

	var texts []string
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			if strings.TrimSpace(s) != "" {
				texts = append(texts, s)
			}
			continue
		}
		var obj struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(item, &obj); err == nil && strings.TrimSpace(obj.Text) != "" {
			texts = append(texts, obj.Text)
		}
	}

	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts found in %s", path)
	}

	return texts, nil
}
