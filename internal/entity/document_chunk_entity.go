package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is one retrievable span of a case file's extracted text.
// Parent chunks are coarse context units; child chunks nest inside a parent
// and are the precise retrieval targets.
type DocumentChunk struct {
	Id             uuid.UUID
	CaseFileId     uuid.UUID
	ProjectId      uuid.UUID
	Content        string
	ChunkType      string // parent | child
	ChunkIndex     int
	ParentChunkId  *uuid.UUID
	PageNumber     *int
	SectionHeading *string
	CharStart      int
	CharEnd        int
	TimestampStart *float64
	TimestampEnd   *float64
	SourceFileName string
	SourceFileType string
	Embedding      []float32
	CreatedAt      time.Time
}
