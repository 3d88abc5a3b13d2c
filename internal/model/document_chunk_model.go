package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type DocumentChunk struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaseFileId     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_document_chunks_file_position,priority:1"`
	ProjectId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Content        string     `gorm:"type:text;not null"`
	ChunkType      string     `gorm:"type:text;not null"` // parent | child
	ChunkIndex     int        `gorm:"not null;uniqueIndex:idx_document_chunks_file_position,priority:2"`
	ParentChunkId  *uuid.UUID `gorm:"type:uuid;index"`
	PageNumber     *int
	SectionHeading *string `gorm:"type:text"`
	CharStart      int     `gorm:"not null"`
	CharEnd        int     `gorm:"not null"`
	TimestampStart *float64
	TimestampEnd   *float64
	SourceFileName string          `gorm:"type:text"`
	SourceFileType string          `gorm:"type:text;index"`
	Embedding      pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 dimensions
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
