package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSource is a citation from an assistant answer back to a stored chunk.
// SourceIndex is the 1-based position in the answer's reference list, the
// same number the model cites as [n].
type ChatSource struct {
	SourceIndex    int       `json:"source_index"`
	ChunkId        uuid.UUID `json:"chunk_id"`
	FileId         uuid.UUID `json:"file_id"`
	FileName       string    `json:"file_name"`
	FileType       string    `json:"file_type"`
	PageNumber     *int      `json:"page_number,omitempty"`
	SectionHeading *string   `json:"section_heading,omitempty"`
	Preview        string    `json:"preview"`
	TimestampStart *float64  `json:"timestamp_start,omitempty"`
}

// ChatMessage is immutable once created. Assistant messages carry the model
// actually used, the estimated complexity and their citations.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Content       string
	Model         *string
	Complexity    *string
	Sources       []ChatSource
	CreatedAt     time.Time
}
