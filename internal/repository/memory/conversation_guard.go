package memory

import (
	"context"
	"sync"

	"case-knowledge-be/internal/repository/contract"

	"github.com/google/uuid"
)

// ConversationGuard is an in-process busy flag for single-instance
// deployments and tests.
type ConversationGuard struct {
	mu   sync.Mutex
	busy map[uuid.UUID]bool
}

func NewConversationGuard() contract.ConversationGuard {
	return &ConversationGuard{
		busy: make(map[uuid.UUID]bool),
	}
}

func (g *ConversationGuard) TryAcquire(ctx context.Context, sessionId uuid.UUID) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy[sessionId] {
		return false, nil
	}
	g.busy[sessionId] = true
	return true, nil
}

func (g *ConversationGuard) Release(ctx context.Context, sessionId uuid.UUID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.busy, sessionId)
	return nil
}
