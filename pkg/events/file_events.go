package events

import (
	"time"

	"github.com/google/uuid"
)

// Processing lifecycle event codes for case files. Downstream consumers
// (notifications, audit trails) subscribe to these on the event bus.
const (
	FileProcessingStarted   = "FILE_PROCESSING_STARTED"
	FileProcessingCompleted = "FILE_PROCESSING_COMPLETED"
	FileProcessingFailed    = "FILE_PROCESSING_FAILED"
)

func NewFileProcessingStarted(fileId, projectId uuid.UUID) Event {
	return BaseEvent{
		Type: FileProcessingStarted,
		Data: map[string]interface{}{
			"file_id":    fileId.String(),
			"project_id": projectId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewFileProcessingCompleted(fileId, projectId uuid.UUID, chunkCount int) Event {
	return BaseEvent{
		Type: FileProcessingCompleted,
		Data: map[string]interface{}{
			"file_id":     fileId.String(),
			"project_id":  projectId.String(),
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now(),
	}
}

func NewFileProcessingFailed(fileId, projectId uuid.UUID, reason string) Event {
	return BaseEvent{
		Type: FileProcessingFailed,
		Data: map[string]interface{}{
			"file_id":    fileId.String(),
			"project_id": projectId.String(),
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}
