package contract

import (
	"context"

	"github.com/google/uuid"
)

// ConversationGuard is the per-session busy flag. A send is rejected while a
// previous one for the same session is still in flight; overlapping calls
// are refused, not queued.
type ConversationGuard interface {
	// TryAcquire returns false when the session is already busy.
	TryAcquire(ctx context.Context, sessionId uuid.UUID) (bool, error)
	Release(ctx context.Context, sessionId uuid.UUID) error
}
