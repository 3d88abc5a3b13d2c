package integration

import (
	"context"
	"testing"

	"case-knowledge-be/internal/constant"
	"case-knowledge-be/internal/entity"
	"case-knowledge-be/internal/repository/contract"
	"case-knowledge-be/internal/repository/specification"
	"case-knowledge-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitVector(dim int) []float32 {
	v := make([]float32, 768)
	v[dim] = 1
	return v
}

func TestFullTextSearchRanksByRelevance(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	factory := unitofwork.NewRepositoryFactory(db)

	projectId := uuid.New()
	file := seedCaseFile(t, db, projectId)
	repo := factory.NewUnitOfWork(ctx).DocumentChunkRepository()

	chunks := []*entity.DocumentChunk{
		testChunk(file.Id, projectId, 0, constant.ChunkTypeChild, "the severance agreement includes a non-compete clause"),
		testChunk(file.Id, projectId, 1, constant.ChunkTypeChild, "lunch will be served in the main conference room"),
	}
	chunks[0].Embedding = unitVector(0)
	chunks[1].Embedding = unitVector(1)
	require.NoError(t, repo.CreateBulk(ctx, chunks))

	results, err := repo.FullTextSearch(ctx, "severance agreement", contract.SearchFilter{ProjectId: &projectId}, 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, chunks[0].Id, results[0].Chunk.Id)
	assert.Equal(t, 1, results[0].Rank)
	for _, r := range results {
		assert.NotEqual(t, chunks[1].Id, r.Chunk.Id, "unrelated chunk must not match")
	}
}

func TestSearchSimilarOrdersByCosineDistance(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	factory := unitofwork.NewRepositoryFactory(db)

	projectId := uuid.New()
	file := seedCaseFile(t, db, projectId)
	repo := factory.NewUnitOfWork(ctx).DocumentChunkRepository()

	chunks := []*entity.DocumentChunk{
		testChunk(file.Id, projectId, 0, constant.ChunkTypeChild, "near"),
		testChunk(file.Id, projectId, 1, constant.ChunkTypeChild, "far"),
	}
	chunks[0].Embedding = unitVector(0)
	chunks[1].Embedding = unitVector(5)
	require.NoError(t, repo.CreateBulk(ctx, chunks))

	results, err := repo.SearchSimilar(ctx, unitVector(0), contract.SearchFilter{ProjectId: &projectId}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, chunks[0].Id, results[0].Chunk.Id)
	assert.Equal(t, chunks[1].Id, results[1].Chunk.Id)
	assert.Equal(t, 1, results[0].Rank)
	assert.Equal(t, 2, results[1].Rank)
}

func TestSearchFilterScopesByFile(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	factory := unitofwork.NewRepositoryFactory(db)

	projectId := uuid.New()
	fileA := seedCaseFile(t, db, projectId)
	fileB := seedCaseFile(t, db, projectId)
	repo := factory.NewUnitOfWork(ctx).DocumentChunkRepository()

	a := testChunk(fileA.Id, projectId, 0, constant.ChunkTypeChild, "quarterly revenue projections")
	b := testChunk(fileB.Id, projectId, 0, constant.ChunkTypeChild, "quarterly revenue projections")
	a.Embedding = unitVector(0)
	b.Embedding = unitVector(0)
	require.NoError(t, repo.CreateBulk(ctx, []*entity.DocumentChunk{a, b}))

	results, err := repo.FullTextSearch(ctx, "revenue", contract.SearchFilter{
		ProjectId:  &projectId,
		CaseFileId: &fileA.Id,
	}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, a.Id, results[0].Chunk.Id)

	byType, err := repo.FindAll(ctx,
		specification.ByProject{ProjectId: projectId},
		specification.Filter("source_file_type", "text/plain"),
	)
	require.NoError(t, err)
	assert.Len(t, byType, 2)
}
