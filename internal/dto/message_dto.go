package dto

import "github.com/google/uuid"

// ProcessFileMessage is the internal queue payload for one ingestion run.
type ProcessFileMessage struct {
	FileId    uuid.UUID `json:"file_id"`
	ProjectId uuid.UUID `json:"project_id"`
}
