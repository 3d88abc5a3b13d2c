package dto

import (
	"time"

	"github.com/google/uuid"

	"case-knowledge-be/internal/entity"
)

type CreateSessionRequest struct {
	ProjectId uuid.UUID `json:"project_id" validate:"required"`
	Title     string    `json:"title"`
}

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type SendMessageRequest struct {
	ChatSessionId uuid.UUID
	Content       string  `json:"content" validate:"required"`
	FileContext   *string `json:"file_context,omitempty"`
	Effort        string  `json:"effort" validate:"omitempty,oneof=quick standard thorough deep"`
}

type ChatMessageDTO struct {
	Id         uuid.UUID           `json:"id"`
	Role       string              `json:"role"`
	Content    string              `json:"content"`
	Model      *string             `json:"model,omitempty"`
	Complexity *string             `json:"complexity,omitempty"`
	Sources    []entity.ChatSource `json:"sources,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

type SendMessageResponse struct {
	ChatSessionId uuid.UUID       `json:"chat_session_id"`
	Sent          *ChatMessageDTO `json:"sent"`
	Reply         *ChatMessageDTO `json:"reply"`
}

type ChatHistoryResponse struct {
	ChatSessionId uuid.UUID        `json:"chat_session_id"`
	Messages      []ChatMessageDTO `json:"messages"`
}

type ChunkPreviewResponse struct {
	Id             uuid.UUID `json:"id"`
	CaseFileId     uuid.UUID `json:"case_file_id"`
	Content        string    `json:"content"`
	ChunkType      string    `json:"chunk_type"`
	PageNumber     *int      `json:"page_number,omitempty"`
	SectionHeading *string   `json:"section_heading,omitempty"`
	TimestampStart *float64  `json:"timestamp_start,omitempty"`
	SourceFileName string    `json:"source_file_name"`
	SourceFileType string    `json:"source_file_type"`
}
