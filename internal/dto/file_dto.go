package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProcessFileRequest struct {
	Id        uuid.UUID
	ProjectId uuid.UUID `json:"project_id" validate:"required"`
}

type ProcessFileResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type FileStatusResponse struct {
	Id              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	ProcessingError *string    `json:"processing_error,omitempty"`
	ChunkCount      int        `json:"chunk_count"`
	AiSummary       string     `json:"ai_summary"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
}
