package service

import (
	"context"
	"time"

	"case-knowledge-be/internal/dto"
	"case-knowledge-be/internal/pkg/logger"
	"case-knowledge-be/internal/repository/contract"
	"case-knowledge-be/internal/repository/unitofwork"
	"case-knowledge-be/pkg/embedding"
	"case-knowledge-be/pkg/retrieval"

	gocache "github.com/patrickmn/go-cache"
)

type ISearchService interface {
	Hybrid(ctx context.Context, req *dto.HybridSearchRequest) (*dto.HybridSearchResponse, error)
}

type searchService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	queryCache        *gocache.Cache
	logger            logger.ILogger
}

func NewSearchService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	log logger.ILogger,
) ISearchService {
	return &searchService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		queryCache:        gocache.New(5*time.Minute, 10*time.Minute),
		logger:            log,
	}
}

// Hybrid runs full-text and semantic retrieval in parallel rank lists and
// fuses them with reciprocal rank fusion. When the query embedding cannot be
// produced the search degrades to full-text only instead of failing.
func (c *searchService) Hybrid(ctx context.Context, req *dto.HybridSearchRequest) (*dto.HybridSearchResponse, error) {
	params := retrieval.Params{
		MatchCount:     req.MatchCount,
		FullTextWeight: req.FullTextWeight,
		SemanticWeight: req.SemanticWeight,
		RRFK:           req.RRFK,
	}

	filter := contract.SearchFilter{
		ProjectId:  &req.ProjectId,
		CaseFileId: req.FileId,
		FileType:   req.FileType,
	}

	// Both lists are fetched deeper than matchCount so fusion has genuine
	// rank overlap to work with.
	fetchLimit := fetchDepth(params)

	chunkRepo := c.uowFactory.NewUnitOfWork(ctx).DocumentChunkRepository()

	ftList, err := chunkRepo.FullTextSearch(ctx, req.Query, filter, fetchLimit)
	if err != nil {
		return nil, err
	}

	var semList []contract.RankedChunk
	if vector, embErr := c.queryEmbedding(ctx, req.Query); embErr != nil {
		c.logger.Warn("search", "query embedding failed, full-text only", map[string]interface{}{
			"error": embErr.Error(),
		})
	} else {
		semList, err = chunkRepo.SearchSimilar(ctx, vector, filter, fetchLimit)
		if err != nil {
			return nil, err
		}
	}

	matches := retrieval.Fuse(ftList, semList, params)

	results := make([]dto.HybridSearchResult, len(matches))
	for i, m := range matches {
		results[i] = dto.HybridSearchResult{
			Id:             m.Chunk.Id,
			CaseFileId:     m.Chunk.CaseFileId,
			Content:        m.Chunk.Content,
			ChunkType:      m.Chunk.ChunkType,
			ChunkIndex:     m.Chunk.ChunkIndex,
			PageNumber:     m.Chunk.PageNumber,
			SectionHeading: m.Chunk.SectionHeading,
			TimestampStart: m.Chunk.TimestampStart,
			SourceFileName: m.Chunk.SourceFileName,
			SourceFileType: m.Chunk.SourceFileType,
			RrfScore:       m.Score,
		}
	}

	return &dto.HybridSearchResponse{
		Query:   req.Query,
		Results: results,
	}, nil
}

// queryEmbedding serves repeated queries from a short-lived cache so typing
// variants of the same question do not re-bill the embedding API.
func (c *searchService) queryEmbedding(ctx context.Context, query string) ([]float32, error) {
	if cached, found := c.queryCache.Get(query); found {
		return cached.([]float32), nil
	}

	res, err := c.embeddingProvider.Generate(ctx, query, embedding.TaskTypeQuery)
	if err != nil {
		return nil, err
	}

	c.queryCache.Set(query, res.Embedding.Values, gocache.DefaultExpiration)
	return res.Embedding.Values, nil
}

func fetchDepth(p retrieval.Params) int {
	count := p.MatchCount
	if count <= 0 {
		count = retrieval.DefaultMatchCount
	}
	depth := count * 3
	if depth < 30 {
		depth = 30
	}
	return depth
}
