package mapper

import (
	"case-knowledge-be/internal/entity"
	"case-knowledge-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToEntity(e *model.DocumentChunk) *entity.DocumentChunk {
	if e == nil {
		return nil
	}

	return &entity.DocumentChunk{
		Id:             e.Id,
		CaseFileId:     e.CaseFileId,
		ProjectId:      e.ProjectId,
		Content:        e.Content,
		ChunkType:      e.ChunkType,
		ChunkIndex:     e.ChunkIndex,
		ParentChunkId:  e.ParentChunkId,
		PageNumber:     e.PageNumber,
		SectionHeading: e.SectionHeading,
		CharStart:      e.CharStart,
		CharEnd:        e.CharEnd,
		TimestampStart: e.TimestampStart,
		TimestampEnd:   e.TimestampEnd,
		SourceFileName: e.SourceFileName,
		SourceFileType: e.SourceFileType,
		Embedding:      e.Embedding.Slice(),
		CreatedAt:      e.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToModel(e *entity.DocumentChunk) *model.DocumentChunk {
	if e == nil {
		return nil
	}

	return &model.DocumentChunk{
		Id:             e.Id,
		CaseFileId:     e.CaseFileId,
		ProjectId:      e.ProjectId,
		Content:        e.Content,
		ChunkType:      e.ChunkType,
		ChunkIndex:     e.ChunkIndex,
		ParentChunkId:  e.ParentChunkId,
		PageNumber:     e.PageNumber,
		SectionHeading: e.SectionHeading,
		CharStart:      e.CharStart,
		CharEnd:        e.CharEnd,
		TimestampStart: e.TimestampStart,
		TimestampEnd:   e.TimestampEnd,
		SourceFileName: e.SourceFileName,
		SourceFileType: e.SourceFileType,
		Embedding:      pgvector.NewVector(e.Embedding),
		CreatedAt:      e.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToEntities(chunks []*model.DocumentChunk) []*entity.DocumentChunk {
	entities := make([]*entity.DocumentChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *DocumentChunkMapper) ToModels(chunks []*entity.DocumentChunk) []*model.DocumentChunk {
	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}
