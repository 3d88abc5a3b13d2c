package entity

import (
	"time"

	"github.com/google/uuid"
)

// CaseFile is an uploaded document belonging to a project. Rows are created
// by the surrounding app on upload; this subsystem only mutates the
// processing fields.
type CaseFile struct {
	Id               uuid.UUID
	ProjectId        uuid.UUID
	Name             string
	StoragePath      string
	ContentType      string
	ProcessingStatus string
	ProcessingError  *string
	ChunkCount       int
	AiSummary        *string
	ExtractedText    *string
	ProcessedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}
