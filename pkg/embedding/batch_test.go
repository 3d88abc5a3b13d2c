package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// scriptedProvider fails every call for texts containing "fail" and counts
// attempts per text.
type scriptedProvider struct {
	attempts map[string]int
}

func newScriptedProvider() *scriptedProvider {
	return &scriptedProvider{attempts: map[string]int{}}
}

func (p *scriptedProvider) Generate(ctx context.Context, text string, taskType string) (*Response, error) {
	p.attempts[text]++
	if strings.Contains(text, "fail") {
		return nil, errors.New("provider unavailable")
	}
	// Deterministic per-text vector so alignment is checkable.
	return &Response{Embedding: ResponseEmbedding{
		Values: []float32{float32(len(text)), 1, 2},
	}}, nil
}

func TestEmbedBatchPreservesOrder(t *testing.T) {
	provider := newScriptedProvider()
	b := NewBatchEmbedder(provider, 2, 3)

	texts := []string{"a", "bb", "ccc", "dddd", "eeeee"}
	vectors, err := b.EmbedBatch(context.Background(), texts, TaskTypeDocument)
	if err != nil {
		t.Fatalf("EmbedBatch returned error: %v", err)
	}

	if len(vectors) != len(texts) {
		t.Fatalf("len(vectors) = %d, want %d", len(vectors), len(texts))
	}
	for i, text := range texts {
		if vectors[i][0] != float32(len(text)) {
			t.Errorf("vectors[%d] belongs to a different text", i)
		}
	}
}

func TestEmbedBatchZeroVectorOnPartialFailure(t *testing.T) {
	provider := newScriptedProvider()
	b := NewBatchEmbedder(provider, 100, 3)

	texts := []string{"first", "this one will fail", "third"}
	vectors, err := b.EmbedBatch(context.Background(), texts, TaskTypeDocument)
	if err != nil {
		t.Fatalf("partial failure must not return an error, got: %v", err)
	}

	if len(vectors) != 3 {
		t.Fatalf("len(vectors) = %d, want 3", len(vectors))
	}
	for _, v := range vectors[1] {
		if v != 0 {
			t.Fatalf("failed item should get a zero vector, got %v", vectors[1])
		}
	}
	if vectors[0][0] == 0 || vectors[2][0] == 0 {
		t.Error("successful items were zeroed out")
	}

	// Each failing item is retried once before substitution.
	if got := provider.attempts["this one will fail"]; got != 2 {
		t.Errorf("attempts for failing item = %d, want 2", got)
	}
}

func TestEmbedBatchAllFailed(t *testing.T) {
	provider := newScriptedProvider()
	b := NewBatchEmbedder(provider, 100, 3)

	_, err := b.EmbedBatch(context.Background(), []string{"fail one", "fail two"}, TaskTypeDocument)

	var embErr *EmbeddingError
	if !errors.As(err, &embErr) {
		t.Fatalf("err = %v, want *EmbeddingError", err)
	}
	if embErr.Failed != 2 {
		t.Errorf("Failed = %d, want 2", embErr.Failed)
	}
}

func TestEmbedBatchEmptyInput(t *testing.T) {
	b := NewBatchEmbedder(newScriptedProvider(), 10, 3)
	vectors, err := b.EmbedBatch(context.Background(), nil, TaskTypeDocument)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors) != 0 {
		t.Errorf("len(vectors) = %d, want 0", len(vectors))
	}
}

func TestEmbedBatchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewBatchEmbedder(newScriptedProvider(), 10, 3)
	if _, err := b.EmbedBatch(ctx, []string{"x"}, TaskTypeDocument); err == nil {
		t.Error("cancelled context should surface an error")
	}
}

func TestEmbedBatchManySubBatches(t *testing.T) {
	provider := newScriptedProvider()
	b := NewBatchEmbedder(provider, 10, 3)

	texts := make([]string, 25)
	for i := range texts {
		texts[i] = fmt.Sprintf("text-%02d", i)
	}
	vectors, err := b.EmbedBatch(context.Background(), texts, TaskTypeDocument)
	if err != nil {
		t.Fatalf("EmbedBatch returned error: %v", err)
	}
	if len(vectors) != 25 {
		t.Fatalf("len(vectors) = %d, want 25", len(vectors))
	}
}
