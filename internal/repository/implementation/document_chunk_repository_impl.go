package implementation

import (
	"context"
	"errors"

	"case-knowledge-be/internal/entity"
	"case-knowledge-be/internal/mapper"
	"case-knowledge-be/internal/model"
	"case-knowledge-be/internal/repository/contract"
	"case-knowledge-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentChunkMapper
}

func NewDocumentChunkRepository(db *gorm.DB) contract.DocumentChunkRepository {
	return &DocumentChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentChunkMapper(),
	}
}

func (r *DocumentChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentChunkRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error) {
	var m model.DocumentChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	var models []*model.DocumentChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.DocumentChunk{}).Count(&count).Error
	return count, err
}

func (r *DocumentChunkRepositoryImpl) DeleteByCaseFileId(ctx context.Context, caseFileId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("case_file_id = ?", caseFileId).
		Delete(&model.DocumentChunk{}).Error
}

func (r *DocumentChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	models := r.mapper.ToModels(chunks)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	// Backfill db-generated ids into the caller's entities.
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DocumentChunkRepositoryImpl) applyFilter(db *gorm.DB, filter contract.SearchFilter) *gorm.DB {
	if filter.ProjectId != nil {
		db = db.Where("project_id = ?", *filter.ProjectId)
	}
	if filter.CaseFileId != nil {
		db = db.Where("case_file_id = ?", *filter.CaseFileId)
	}
	if filter.FileType != nil {
		db = db.Where("source_file_type = ?", *filter.FileType)
	}
	return db
}

// FullTextSearch ranks by ts_rank over an english tsvector of the content.
// websearch_to_tsquery tolerates free-form user queries (quoted phrases,
// OR, minus) without raising syntax errors.
func (r *DocumentChunkRepositoryImpl) FullTextSearch(ctx context.Context, query string, filter contract.SearchFilter, limit int) ([]contract.RankedChunk, error) {
	if limit <= 0 {
		limit = 10
	}
	var models []*model.DocumentChunk

	q := r.db.WithContext(ctx).
		Where("to_tsvector('english', content) @@ websearch_to_tsquery('english', ?)", query)
	q = r.applyFilter(q, filter)

	err := q.
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "ts_rank(to_tsvector('english', content), websearch_to_tsquery('english', ?)) DESC, chunk_index ASC",
			Vars: []interface{}{query},
		}}).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, &contract.RetrievalError{Op: "full-text search", Err: err}
	}

	return r.ranked(models), nil
}

// SearchSimilar ranks by pgvector cosine distance (embedding <=> query).
func (r *DocumentChunkRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, filter contract.SearchFilter, limit int) ([]contract.RankedChunk, error) {
	if limit <= 0 {
		limit = 10
	}
	var models []*model.DocumentChunk

	q := r.applyFilter(r.db.WithContext(ctx), filter)

	err := q.
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "embedding <=> ?",
			Vars: []interface{}{pgvector.NewVector(embedding)},
		}}).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, &contract.RetrievalError{Op: "vector search", Err: err}
	}

	return r.ranked(models), nil
}

func (r *DocumentChunkRepositoryImpl) ranked(models []*model.DocumentChunk) []contract.RankedChunk {
	ranked := make([]contract.RankedChunk, len(models))
	for i, m := range models {
		ranked[i] = contract.RankedChunk{
			Chunk: r.mapper.ToEntity(m),
			Rank:  i + 1,
		}
	}
	return ranked
}
