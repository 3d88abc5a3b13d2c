package contract

import (
	"context"

	"case-knowledge-be/internal/entity"
	"case-knowledge-be/internal/repository/specification"

	"github.com/google/uuid"
)

// SearchFilter scopes a retrieval query before ranking. Nil fields are
// unrestricted.
type SearchFilter struct {
	ProjectId  *uuid.UUID
	CaseFileId *uuid.UUID
	FileType   *string
}

// RankedChunk is a chunk with its 1-based rank in one retrieval list.
type RankedChunk struct {
	Chunk *entity.DocumentChunk
	Rank  int
}

type DocumentChunkRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// DeleteByCaseFileId hard-deletes every chunk of a file (full replace,
	// not merge).
	DeleteByCaseFileId(ctx context.Context, caseFileId uuid.UUID) error

	// CreateBulk inserts chunks and backfills db-generated ids into the
	// passed entities. Order is preserved.
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error

	// FullTextSearch ranks chunks by Postgres full-text relevance against
	// the query string. Results carry 1-based ranks.
	FullTextSearch(ctx context.Context, query string, filter SearchFilter, limit int) ([]RankedChunk, error)

	// SearchSimilar ranks chunks by cosine distance to the query embedding.
	SearchSimilar(ctx context.Context, embedding []float32, filter SearchFilter, limit int) ([]RankedChunk, error)
}
