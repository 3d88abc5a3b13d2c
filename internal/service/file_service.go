package service

import (
	"context"
	"encoding/json"

	"case-knowledge-be/internal/dto"
	"case-knowledge-be/internal/repository/specification"
	"case-knowledge-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IFileService is the HTTP-facing surface for processing. Process enqueues
// an ingestion run; Status reads the current projection.
type IFileService interface {
	Process(ctx context.Context, req *dto.ProcessFileRequest) (*dto.ProcessFileResponse, error)
	Status(ctx context.Context, id uuid.UUID) (*dto.FileStatusResponse, error)
}

type fileService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewFileService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) IFileService {
	return &fileService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (c *fileService) Process(ctx context.Context, req *dto.ProcessFileRequest) (*dto.ProcessFileResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	file, err := uow.CaseFileRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.ByProject{ProjectId: req.ProjectId},
	)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, nil // Not found (or wrong project)
	}

	msgJson, err := json.Marshal(dto.ProcessFileMessage{
		FileId:    file.Id,
		ProjectId: req.ProjectId,
	})
	if err != nil {
		return nil, err
	}
	if err := c.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	return &dto.ProcessFileResponse{
		Id:     file.Id,
		Status: file.ProcessingStatus,
	}, nil
}

func (c *fileService) Status(ctx context.Context, id uuid.UUID) (*dto.FileStatusResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	file, err := uow.CaseFileRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, nil
	}

	summary := ""
	if file.AiSummary != nil {
		summary = *file.AiSummary
	}

	return &dto.FileStatusResponse{
		Id:              file.Id,
		Name:            file.Name,
		Status:          file.ProcessingStatus,
		ProcessingError: file.ProcessingError,
		ChunkCount:      file.ChunkCount,
		AiSummary:       summary,
		ProcessedAt:     file.ProcessedAt,
	}, nil
}
