package mapper

import (
	"time"

	"case-knowledge-be/internal/entity"
	"case-knowledge-be/internal/model"

	"gorm.io/gorm"
)

type CaseFileMapper struct{}

func NewCaseFileMapper() *CaseFileMapper {
	return &CaseFileMapper{}
}

func (m *CaseFileMapper) ToEntity(e *model.CaseFile) *entity.CaseFile {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.CaseFile{
		Id:               e.Id,
		ProjectId:        e.ProjectId,
		Name:             e.Name,
		StoragePath:      e.StoragePath,
		ContentType:      e.ContentType,
		ProcessingStatus: e.ProcessingStatus,
		ProcessingError:  e.ProcessingError,
		ChunkCount:       e.ChunkCount,
		AiSummary:        e.AiSummary,
		ExtractedText:    e.ExtractedText,
		ProcessedAt:      e.ProcessedAt,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
		IsDeleted:        e.DeletedAt.Valid,
	}
}

func (m *CaseFileMapper) ToModel(e *entity.CaseFile) *model.CaseFile {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.CaseFile{
		Id:               e.Id,
		ProjectId:        e.ProjectId,
		Name:             e.Name,
		StoragePath:      e.StoragePath,
		ContentType:      e.ContentType,
		ProcessingStatus: e.ProcessingStatus,
		ProcessingError:  e.ProcessingError,
		ChunkCount:       e.ChunkCount,
		AiSummary:        e.AiSummary,
		ExtractedText:    e.ExtractedText,
		ProcessedAt:      e.ProcessedAt,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
	}
}
