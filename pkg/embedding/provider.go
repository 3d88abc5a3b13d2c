package embedding

import "context"

// Provider generates a single text embedding. Task type hints the provider
// about retrieval-document vs retrieval-query usage where supported.
type Provider interface {
	Generate(ctx context.Context, text string, taskType string) (*Response, error)
}

const (
	TaskTypeDocument = "RETRIEVAL_DOCUMENT"
	TaskTypeQuery    = "RETRIEVAL_QUERY"
)

type ResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type Response struct {
	Embedding ResponseEmbedding `json:"embedding"`
}
