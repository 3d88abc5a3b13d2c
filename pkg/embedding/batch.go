package embedding

import (
	"context"
	"fmt"
)

// EmbeddingError signals that batch embedding produced no usable vectors:
// every item failed after retries.
type EmbeddingError struct {
	Failed int
	Err    error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed for all %d texts: %v", e.Failed, e.Err)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Err
}

const (
	defaultBatchSize = 100
	itemAttempts     = 2
)

// BatchEmbedder turns a single-text Provider into an order-preserving batch
// call. Output always has exactly one vector per input text: an item whose
// provider calls all fail gets a zero vector rather than being dropped, so
// callers can keep correlating by index.
type BatchEmbedder struct {
	provider   Provider
	batchSize  int
	dimensions int
}

func NewBatchEmbedder(provider Provider, batchSize int, dimensions int) *BatchEmbedder {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &BatchEmbedder{
		provider:   provider,
		batchSize:  batchSize,
		dimensions: dimensions,
	}
}

func (b *BatchEmbedder) EmbedBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vectors := make([][]float32, len(texts))
	failed := 0
	var lastErr error

	for start := 0; start < len(texts); start += b.batchSize {
		end := start + b.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			vec, err := b.embedOne(ctx, texts[i], taskType)
			if err != nil {
				lastErr = err
				failed++
				vectors[i] = make([]float32, b.dimensions)
				continue
			}
			vectors[i] = vec
		}
	}

	if failed == len(texts) {
		return nil, &EmbeddingError{Failed: failed, Err: lastErr}
	}
	return vectors, nil
}

func (b *BatchEmbedder) embedOne(ctx context.Context, text string, taskType string) ([]float32, error) {
	var lastErr error
	for attempt := 0; attempt < itemAttempts; attempt++ {
		res, err := b.provider.Generate(ctx, text, taskType)
		if err != nil {
			lastErr = err
			continue
		}
		return res.Embedding.Values, nil
	}
	return nil, lastErr
}
