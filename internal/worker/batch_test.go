package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chumarjamil/hallucination-guard/internal/model"
)

type fakeDetector struct {
	failOn string
}

func (f *fakeDetector) Detect(_ context.Context, text string) (*model.DetectionResult, error) {
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return nil, errors.New("detection refused")
	}
	return &model.DetectionResult{
		Summary:     "analyzed: " + text,
		TotalClaims: 1,
	}, nil
}

func TestProcessTextsPreservesOrder(t *testing.T) {
	// Well beyond the pool's channel buffers: every text must still come
	// back, in order, without the submit side wedging.
	texts := make([]string, 100)
	for i := range texts {
		texts[i] = fmt.Sprintf("Fact number %d is stated here.", i)
	}

	bp := NewBatchProcessor(&fakeDetector{}, 4)
	outcomes := bp.ProcessTexts(context.Background(), texts)

	if len(outcomes) != len(texts) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(texts))
	}
	for i, out := range outcomes {
		if out.Index != i {
			t.Fatalf("outcome %d has index %d", i, out.Index)
		}
		if out.Text != texts[i] {
			t.Errorf("outcome %d carries text %q, want %q", i, out.Text, texts[i])
		}
		if out.Err != nil {
			t.Errorf("outcome %d: unexpected error %v", i, out.Err)
		}
	}
}

func TestProcessTextsCollectsErrors(t *testing.T) {
	bp := NewBatchProcessor(&fakeDetector{failOn: "bad"}, 2)
	outcomes := bp.ProcessTexts(context.Background(), []string{"good one", "bad one", "good two"})

	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outcomes))
	}
	if outcomes[0].Err != nil || outcomes[2].Err != nil {
		t.Error("good texts should not carry errors")
	}
	if outcomes[1].Err == nil {
		t.Error("failing text should carry an error")
	}
	if outcomes[1].Result != nil {
		t.Error("failing text should have no result")
	}
}

type blockingDetector struct{}

func (blockingDetector) Detect(ctx context.Context, _ string) (*model.DetectionResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(10 * time.Second):
		return &model.DetectionResult{}, nil
	}
}

func TestProcessTextsHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	bp := NewBatchProcessor(blockingDetector{}, 2)

	done := make(chan struct{})
	go func() {
		bp.ProcessTexts(ctx, []string{"one slow text", "another slow text", "a third slow text"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cancelling the context did not stop batch processing")
	}
}

func TestProcessTextsEmptyInput(t *testing.T) {
	bp := NewBatchProcessor(&fakeDetector{}, 2)
	outcomes := bp.ProcessTexts(context.Background(), nil)
	if len(outcomes) != 0 {
		t.Errorf("got %d outcomes for empty input", len(outcomes))
	}
}

func TestReadTextsFromFileStringArray(t *testing.T) {
	path := writeTempFile(t, `["First claim text.", "", "Second claim text."]`)

	texts, err := ReadTextsFromFile(path)
	if err != nil {
		t.Fatalf("ReadTextsFromFile: %v", err)
	}
	if len(texts) != 2 {
		t.Fatalf("got %d texts, want 2 (empty strings dropped)", len(texts))
	}
	if texts[0] != "First claim text." || texts[1] != "Second claim text." {
		t.Errorf("texts = %v", texts)
	}
}

func TestReadTextsFromFileObjectArray(t *testing.T) {
	path := writeTempFile(t, `[{"text": "Object claim one."}, {"text": "Object claim two."}, {"other": "skipped"}]`)

	texts, err := ReadTextsFromFile(path)
	if err != nil {
		t.Fatalf("ReadTextsFromFile: %v", err)
	}
	if len(texts) != 2 {
		t.Fatalf("got %d texts, want 2", len(texts))
	}
}

func TestReadTextsFromFileRejectsNonArray(t *testing.T) {
	path := writeTempFile(t, `{"text": "not an array"}`)
	if _, err := ReadTextsFromFile(path); err == nil {
		t.Error("expected error for non-array JSON")
	}
}

func TestReadTextsFromFileRejectsEmpty(t *testing.T) {
	path := writeTempFile(t, `[]`)
	if _, err := ReadTextsFromFile(path); err == nil {
		t.Error("expected error for array with no usable texts")
	}
}

func TestProcessFile(t *testing.T) {
	path := writeTempFile(t, `["Alpha statement here.", "Beta statement here."]`)

	bp := NewBatchProcessor(&fakeDetector{}, 2)
	outcomes, err := bp.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
}

func TestProcessFileMissing(t *testing.T) {
	bp := NewBatchProcessor(&fakeDetector{}, 2)
	if _, err := bp.ProcessFile(context.Background(), "/nonexistent/texts.json"); err == nil {
		t.Error("expected error for missing file")
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "texts.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
