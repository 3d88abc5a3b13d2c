package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaseFile struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectId        uuid.UUID `gorm:"type:uuid;not null;index"`
	Name             string    `gorm:"type:text;not null"`
	StoragePath      string    `gorm:"type:text;not null"`
	ContentType      string    `gorm:"type:text"`
	ProcessingStatus string    `gorm:"type:text;default:'pending';index"`
	ProcessingError  *string   `gorm:"type:text"`
	ChunkCount       int       `gorm:"default:0"`
	AiSummary        *string   `gorm:"type:text"`
	ExtractedText    *string   `gorm:"type:text"` // capped to 50k chars on write
	ProcessedAt      *time.Time
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (CaseFile) TableName() string {
	return "case_files"
}
