package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"case-knowledge-be/internal/constant"
	"case-knowledge-be/internal/entity"
	"case-knowledge-be/internal/pkg/logger"
	"case-knowledge-be/internal/repository/contract"
	"case-knowledge-be/internal/repository/specification"
	"case-knowledge-be/internal/repository/unitofwork"
	"case-knowledge-be/pkg/chunker"
	"case-knowledge-be/pkg/embedding"
	"case-knowledge-be/pkg/events"
	"case-knowledge-be/pkg/extract"
	pktNats "case-knowledge-be/pkg/nats"
	"case-knowledge-be/pkg/storage"
	"case-knowledge-be/pkg/summarizer"
	"case-knowledge-be/pkg/transcribe"

	"github.com/google/uuid"
)

// ProcessOutcome is the result of one ingestion run. A failed run still
// yields an outcome; the error return is reserved for bookkeeping writes
// that could not even record the failure.
type ProcessOutcome struct {
	Status        string
	ChunksCreated int
	Summary       *string
	Error         *string
}

// IIngestionService runs the full processing pipeline for one case file:
// download, extract, summarize, chunk, embed, replace stored chunks.
type IIngestionService interface {
	ProcessFile(ctx context.Context, fileId, projectId uuid.UUID) (*ProcessOutcome, error)
}

type ingestionService struct {
	uowFactory     unitofwork.RepositoryFactory
	blobStore      storage.BlobStore
	extractor      *extract.Extractor
	summarizer     *summarizer.Summarizer
	batchEmbedder  *embedding.BatchEmbedder
	eventPublisher *pktNats.Publisher
	chunkerConfig  chunker.Config
	logger         logger.ILogger
}

func NewIngestionService(
	uowFactory unitofwork.RepositoryFactory,
	blobStore storage.BlobStore,
	extractor *extract.Extractor,
	smr *summarizer.Summarizer,
	batchEmbedder *embedding.BatchEmbedder,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IIngestionService {
	return &ingestionService{
		uowFactory:     uowFactory,
		blobStore:      blobStore,
		extractor:      extractor,
		summarizer:     smr,
		batchEmbedder:  batchEmbedder,
		eventPublisher: eventPublisher,
		chunkerConfig:  chunker.DefaultConfig(),
		logger:         log,
	}
}

func (c *ingestionService) ProcessFile(ctx context.Context, fileId, projectId uuid.UUID) (*ProcessOutcome, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	fileRepo := uow.CaseFileRepository()

	file, err := fileRepo.FindOne(ctx, specification.ByID{ID: fileId})
	if err != nil {
		return nil, err
	}
	if file == nil {
		c.logger.Warn("ingestion", "file no longer exists, skipping", map[string]interface{}{
			"file_id": fileId,
		})
		return nil, nil
	}

	if err := fileRepo.MarkProcessing(ctx, fileId); err != nil {
		return nil, err
	}
	c.publishEvent(ctx, events.NewFileProcessingStarted(fileId, projectId))

	blob, err := c.blobStore.Download(ctx, file.StoragePath)
	if err != nil {
		return c.markFailed(ctx, file, projectId, fmt.Sprintf("download failed: %v", err))
	}

	result, err := c.extractor.Extract(ctx, blob, file.ContentType, file.Name)
	if err != nil {
		return c.markFailed(ctx, file, projectId, fmt.Sprintf("extraction failed: %v", err))
	}
	text := result.Text

	// A file with no extractable text is a completed outcome, not a failure.
	if strings.TrimSpace(text) == "" {
		summary := constant.EmptyTextSummary
		res := contract.ProcessingResult{
			Status:        constant.ProcessingStatusCompleted,
			ChunkCount:    0,
			Summary:       &summary,
			ExtractedText: &text,
			ProcessedAt:   time.Now(),
		}
		if err := fileRepo.SetProcessingResult(ctx, fileId, res); err != nil {
			return nil, err
		}
		c.publishEvent(ctx, events.NewFileProcessingCompleted(fileId, projectId, 0))
		return &ProcessOutcome{
			Status:  constant.ProcessingStatusCompleted,
			Summary: &summary,
		}, nil
	}

	summary, err := c.summarizer.Summarize(ctx, file.Name, text)
	if err != nil {
		// Summary is auxiliary; the chunks are what retrieval needs.
		c.logger.Warn("ingestion", "summary generation failed", map[string]interface{}{
			"file_id": fileId,
			"error":   err.Error(),
		})
		summary = ""
	}

	var spans []chunker.Span
	if len(result.Segments) > 0 {
		spans = chunker.ChunkTranscript(toChunkerSegments(result.Segments), c.chunkerConfig)
	} else {
		spans = chunker.Chunk(text, c.chunkerConfig)
	}

	texts := make([]string, len(spans))
	for i, s := range spans {
		texts[i] = s.Content
	}
	vectors, err := c.batchEmbedder.EmbedBatch(ctx, texts, embedding.TaskTypeDocument)
	if err != nil {
		return c.markFailed(ctx, file, projectId, fmt.Sprintf("embedding failed: %v", err))
	}

	chunkCount, err := c.replaceChunks(ctx, file, spans, vectors)
	if err != nil {
		return c.markFailed(ctx, file, projectId, fmt.Sprintf("chunk persistence failed: %v", err))
	}

	res := contract.ProcessingResult{
		Status:        constant.ProcessingStatusCompleted,
		ChunkCount:    chunkCount,
		Summary:       &summary,
		ExtractedText: &text,
		ProcessedAt:   time.Now(),
	}
	if err := fileRepo.SetProcessingResult(ctx, fileId, res); err != nil {
		return nil, err
	}

	c.logger.Info("ingestion", "file processed", map[string]interface{}{
		"file_id":     fileId,
		"chunk_count": chunkCount,
	})
	c.publishEvent(ctx, events.NewFileProcessingCompleted(fileId, projectId, chunkCount))
	return &ProcessOutcome{
		Status:        constant.ProcessingStatusCompleted,
		ChunksCreated: chunkCount,
		Summary:       &summary,
	}, nil
}

// replaceChunks swaps the file's stored chunks for the new set. The delete
// and the parent inserts commit atomically; children are inserted after the
// commit and their failure is non-fatal, the parents alone still serve
// retrieval.
func (c *ingestionService) replaceChunks(ctx context.Context, file *entity.CaseFile, spans []chunker.Span, vectors [][]float32) (int, error) {
	var parents []*entity.DocumentChunk
	parentSlot := make(map[int]int) // span slice index -> parents index

	for i, s := range spans {
		if s.ChunkType != chunker.TypeParent {
			continue
		}
		parentSlot[i] = len(parents)
		parents = append(parents, c.spanToEntity(file, s, vectors[i]))
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	chunkRepo := uow.DocumentChunkRepository()
	if err := chunkRepo.DeleteByCaseFileId(ctx, file.Id); err != nil {
		return 0, err
	}
	if err := chunkRepo.CreateBulk(ctx, parents); err != nil {
		return 0, &contract.PersistenceError{Op: "insert parent chunks", Err: err}
	}
	if err := uow.Commit(); err != nil {
		return 0, err
	}

	var children []*entity.DocumentChunk
	for i, s := range spans {
		if s.ChunkType != chunker.TypeChild {
			continue
		}
		child := c.spanToEntity(file, s, vectors[i])
		if s.ParentIndex != nil {
			if slot, ok := parentSlot[*s.ParentIndex]; ok {
				id := parents[slot].Id
				child.ParentChunkId = &id
			}
		}
		children = append(children, child)
	}

	chunkCount := len(parents)
	freshRepo := c.uowFactory.NewUnitOfWork(ctx).DocumentChunkRepository()
	if err := freshRepo.CreateBulk(ctx, children); err != nil {
		c.logger.Warn("ingestion", "child chunk insert failed, keeping parents only", map[string]interface{}{
			"file_id": file.Id,
			"error":   err.Error(),
		})
	} else {
		chunkCount += len(children)
	}

	return chunkCount, nil
}

func (c *ingestionService) spanToEntity(file *entity.CaseFile, s chunker.Span, vector []float32) *entity.DocumentChunk {
	return &entity.DocumentChunk{
		CaseFileId:     file.Id,
		ProjectId:      file.ProjectId,
		Content:        s.Content,
		ChunkType:      s.ChunkType,
		ChunkIndex:     s.ChunkIndex,
		PageNumber:     s.PageNumber,
		SectionHeading: s.SectionHeading,
		CharStart:      s.CharStart,
		CharEnd:        s.CharEnd,
		TimestampStart: s.TimestampStart,
		TimestampEnd:   s.TimestampEnd,
		SourceFileName: file.Name,
		SourceFileType: file.ContentType,
		Embedding:      vector,
	}
}

// markFailed records a failed run. The outcome carries the reason; a non-nil
// error means even the failure bookkeeping could not be written.
func (c *ingestionService) markFailed(ctx context.Context, file *entity.CaseFile, projectId uuid.UUID, reason string) (*ProcessOutcome, error) {
	c.logger.Error("ingestion", "file processing failed", map[string]interface{}{
		"file_id": file.Id,
		"reason":  reason,
	})

	res := contract.ProcessingResult{
		Status:      constant.ProcessingStatusFailed,
		Error:       &reason,
		ProcessedAt: time.Now(),
	}
	fileRepo := c.uowFactory.NewUnitOfWork(ctx).CaseFileRepository()
	if err := fileRepo.SetProcessingResult(ctx, file.Id, res); err != nil {
		return nil, err
	}

	c.publishEvent(ctx, events.NewFileProcessingFailed(file.Id, projectId, reason))
	return &ProcessOutcome{
		Status: constant.ProcessingStatusFailed,
		Error:  &reason,
	}, nil
}

// publishEvent sends a lifecycle notification; the bus is auxiliary so
// failures are logged and swallowed.
func (c *ingestionService) publishEvent(ctx context.Context, evt events.Event) {
	if c.eventPublisher == nil {
		return
	}
	if err := c.eventPublisher.Publish(ctx, evt); err != nil {
		c.logger.Warn("ingestion", "failed to publish lifecycle event", map[string]interface{}{
			"event": evt.EventType(),
			"error": err.Error(),
		})
	}
}

func toChunkerSegments(segments []transcribe.Segment) []chunker.Segment {
	out := make([]chunker.Segment, len(segments))
	for i, s := range segments {
		out[i] = chunker.Segment{Text: s.Text, Start: s.Start, End: s.End}
	}
	return out
}
