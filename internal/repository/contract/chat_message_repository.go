package contract

import (
	"context"

	"case-knowledge-be/internal/entity"
	"case-knowledge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// DeleteBySessionId clears a whole conversation.
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
}
