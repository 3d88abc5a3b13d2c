package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByCaseFile filters chunks belonging to one file
type ByCaseFile struct {
	CaseFileId uuid.UUID
}

func (s ByCaseFile) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("case_file_id = ?", s.CaseFileId)
}

// ByProject scopes rows to one project
type ByProject struct {
	ProjectId uuid.UUID
}

func (s ByProject) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_id = ?", s.ProjectId)
}

// ByChunkType filters parent or child chunks
type ByChunkType struct {
	ChunkType string
}

func (s ByChunkType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chunk_type = ?", s.ChunkType)
}
