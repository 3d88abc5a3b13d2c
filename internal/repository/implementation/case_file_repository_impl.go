package implementation

import (
	"context"
	"errors"

	"case-knowledge-be/internal/constant"
	"case-knowledge-be/internal/entity"
	"case-knowledge-be/internal/mapper"
	"case-knowledge-be/internal/model"
	"case-knowledge-be/internal/repository/contract"
	"case-knowledge-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaseFileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CaseFileMapper
}

func NewCaseFileRepository(db *gorm.DB) contract.CaseFileRepository {
	return &CaseFileRepositoryImpl{
		db:     db,
		mapper: mapper.NewCaseFileMapper(),
	}
}

func (r *CaseFileRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CaseFileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CaseFile, error) {
	var m model.CaseFile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CaseFileRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CaseFile, error) {
	var models []*model.CaseFile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.CaseFile, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *CaseFileRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.CaseFile{}).Count(&count).Error
	return count, err
}

func (r *CaseFileRepositoryImpl) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.CaseFile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"processing_status": constant.ProcessingStatusProcessing,
			"processing_error":  nil,
		}).Error
}

func (r *CaseFileRepositoryImpl) SetProcessingResult(ctx context.Context, id uuid.UUID, result contract.ProcessingResult) error {
	extracted := result.ExtractedText
	if extracted != nil {
		if runes := []rune(*extracted); len(runes) > constant.ExtractedTextCap {
			capped := string(runes[:constant.ExtractedTextCap])
			extracted = &capped
		}
	}

	updates := map[string]interface{}{
		"processing_status": result.Status,
		"processing_error":  result.Error,
		"chunk_count":       result.ChunkCount,
		"processed_at":      result.ProcessedAt,
	}
	if result.Summary != nil {
		updates["ai_summary"] = result.Summary
	}
	if extracted != nil {
		updates["extracted_text"] = extracted
	}

	return r.db.WithContext(ctx).
		Model(&model.CaseFile{}).
		Where("id = ?", id).
		Updates(updates).Error
}
