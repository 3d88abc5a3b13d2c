package contract

import (
	"context"
	"time"

	"case-knowledge-be/internal/entity"
	"case-knowledge-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ProcessingResult carries the terminal state of one ingestion run.
type ProcessingResult struct {
	Status        string
	Error         *string
	ChunkCount    int
	Summary       *string
	ExtractedText *string
	ProcessedAt   time.Time
}

type CaseFileRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CaseFile, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CaseFile, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// MarkProcessing flips the file into the processing state and clears any
	// previous error.
	MarkProcessing(ctx context.Context, id uuid.UUID) error

	// SetProcessingResult writes the terminal fields of a run. ExtractedText
	// is truncated to the storage cap before the update.
	SetProcessingResult(ctx context.Context, id uuid.UUID, result ProcessingResult) error
}
